package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/events"
	"github.com/dmitrijs2005/recipebox/internal/server/httpapi"
	"github.com/dmitrijs2005/recipebox/internal/server/images"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
	"github.com/dmitrijs2005/recipebox/internal/server/textgen"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUploader struct{}

func (stubUploader) PresignUpload(context.Context) (images.Upload, error) {
	return images.Upload{Key: "recipes/k", UploadURL: "http://signed", ImageURL: "http://s3/b/recipes/k"}, nil
}

// newAPI starts the real HTTP API over seeded in-memory repositories.
func newAPI(t *testing.T) *HTTPClient {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager(0, true)
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	us := services.NewUserService(m, cfg, logging.Discard())
	rs := services.NewRecipeService(m, textgen.Disabled{}, events.Nop{}, logging.Discard())
	srv := httptest.NewServer(httpapi.NewHTTPServer(":0", logging.Discard(), us, rs, stubUploader{}).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestHTTPClient_PingAndMeta(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	m, err := c.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Categories, m.Categories)
	assert.Equal(t, query.BucketOptions, m.PrepTimes)
}

func TestHTTPClient_AuthFlow(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	u, token, err := c.Register(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, []string{}, u.SavedRecipeIDs)
	require.NotEmpty(t, token)

	_, _, err = c.Register(ctx, "Ana again", "ANA@example.com")
	assert.ErrorIs(t, err, common.ErrorConflict)

	_, _, err = c.Login(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	u2, token2, err := c.Login(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)
	require.NotEmpty(t, token2)

	me, err := c.Me(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	_, err = c.Me(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)

	name := "Ana B"
	me, err = c.UpdateProfile(ctx, token, models.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", me.Name)
	assert.Equal(t, "ana@example.com", me.Email)

	me, err = c.SaveRecipe(ctx, token, "recipe-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe-2"}, me.SavedRecipeIDs)

	me, err = c.SaveRecipe(ctx, token, "recipe-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe-2"}, me.SavedRecipeIDs)

	_, err = c.SaveRecipe(ctx, token, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	saved, err := c.SavedRecipes(ctx, token)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Caprese Salad", saved[0].Title)

	me, err = c.UnsaveRecipe(ctx, token, "recipe-2")
	require.NoError(t, err)
	assert.Empty(t, me.SavedRecipeIDs)
}

func TestHTTPClient_RecipeFlow(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	list, err := c.ListRecipes(ctx, query.Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = c.ListRecipes(ctx, query.Filter{Category: "dessert"}, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chocolate Lava Cake", list[0].Title)

	list, err = c.ListRecipes(ctx, query.Filter{}, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, token, err := c.Register(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	_, other, err := c.Login(ctx, "kenji@example.com")
	require.NoError(t, err)

	_, err = c.CreateRecipe(ctx, token, models.RecipeInput{Title: "Soup", Category: "Soup"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.NotContains(t, err.Error(), "validation error: validation error")

	created, err := c.CreateRecipe(ctx, token, models.RecipeInput{
		Title:       "Tomato Soup",
		Ingredients: []string{"tomatoes", "", "salt"},
		Steps:       []string{"simmer"},
		Category:    "soup",
		PrepTime:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomatoes", "salt"}, created.Ingredients)
	assert.Equal(t, "Soup", created.Category)

	got, err := c.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	title := "Roasted Tomato Soup"
	_, err = c.UpdateRecipe(ctx, other, created.ID, models.RecipePatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	updated, err := c.UpdateRecipe(ctx, token, created.ID, models.RecipePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	mine, err := c.MyRecipes(ctx, token)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, c.DeleteRecipe(ctx, token, created.ID))
	_, err = c.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	desc, err := c.Describe(ctx, "Toast", []string{"bread"})
	require.NoError(t, err)
	assert.Equal(t, textgen.DisabledMessage, desc)

	up, err := c.PresignImage(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "http://signed", up.UploadURL)

	_, err = c.PresignImage(ctx, "")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{"bad request", http.StatusBadRequest, `{"error":"validation error: title is required"}`, common.ErrorValidation, "validation error: title is required"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"unauthenticated"}`, common.ErrorUnauthenticated, "unauthenticated"},
		{"forbidden", http.StatusForbidden, `{"error":"nope"}`, common.ErrorForbidden, "forbidden: nope"},
		{"not found", http.StatusNotFound, `not json`, common.ErrorNotFound, "not found"},
		{"conflict", http.StatusConflict, `{}`, common.ErrorConflict, "already exists"},
		{"gateway timeout", http.StatusGatewayTimeout, `{"error":"internal error"}`, common.ErrorUnavailable, "server unavailable: internal error"},
		{"internal", http.StatusInternalServerError, `{"error":"internal error"}`, common.ErrorInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).GetRecipe(context.Background(), "x")
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestHTTPClient_SendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"u1","name":"A","email":"a@x.io"}`))
	}))
	defer srv.Close()

	u, err := New(srv.URL, time.Second).Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", got)
	assert.Equal(t, []string{}, u.SavedRecipeIDs)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Ping(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnavailable)
}
