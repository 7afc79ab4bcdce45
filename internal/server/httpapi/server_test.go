package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/events"
	"github.com/dmitrijs2005/recipebox/internal/server/images"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
	"github.com/dmitrijs2005/recipebox/internal/server/textgen"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUploader struct{ err error }

func (f fakeUploader) PresignUpload(context.Context) (images.Upload, error) {
	if f.err != nil {
		return images.Upload{}, f.err
	}
	return images.Upload{Key: "recipes/k", UploadURL: "http://signed", ImageURL: "http://s3/b/recipes/k"}, nil
}

func newTestServer(t *testing.T, seed bool) *HTTPServer {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager(0, seed)
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	us := services.NewUserService(m, cfg, logging.Discard())
	rs := services.NewRecipeService(m, textgen.Disabled{}, events.Nop{}, logging.Discard())
	return NewHTTPServer(":0", logging.Discard(), us, rs, fakeUploader{})
}

func do(t *testing.T, s *HTTPServer, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func register(t *testing.T, s *HTTPServer, name, email string) services.Session {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/v1/auth/register", "", map[string]string{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[services.Session](t, rec)
}

func TestPingAndMeta(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/v1/meta", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meta := decode[struct {
		Categories []string `json:"categories"`
		PrepTimes  []struct {
			Value string `json:"value"`
		} `json:"prepTimes"`
	}](t, rec)
	assert.Equal(t, models.Categories, meta.Categories)
	assert.Equal(t, "60+", meta.PrepTimes[len(meta.PrepTimes)-1].Value)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, false)

	sess := register(t, s, "Ann", "ann@example.com")
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, []string{}, sess.User.SavedRecipeIDs)
	assert.Contains(t, do(t, s, http.MethodGet, "/v1/users/me", sess.Token, nil).Body.String(), `"savedRecipeIds":[]`)

	rec := do(t, s, http.MethodPost, "/v1/auth/register", "", map[string]string{"name": "Ann", "email": "ann@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "ann@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sess.User, decode[services.Session](t, rec).User)

	rec = do(t, s, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, false)

	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/v1/users/me", ""},
		{http.MethodGet, "/v1/users/me", "garbage"},
		{http.MethodPost, "/v1/recipes", ""},
		{http.MethodPut, "/v1/users/me/saved/r1", ""},
		{http.MethodPost, "/v1/images", ""},
	} {
		rec := do(t, s, tc.method, tc.path, tc.token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestRecipeLifecycle(t *testing.T) {
	s := newTestServer(t, false)
	ann := register(t, s, "Ann", "ann@example.com")
	bob := register(t, s, "Bob", "bob@example.com")

	rec := do(t, s, http.MethodPost, "/v1/recipes", ann.Token, models.RecipeInput{
		Title: "Pancakes", Ingredients: []string{"flour", ""}, Steps: []string{"fry"}, Category: "breakfast", PrepTime: 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Recipe](t, rec)
	assert.Equal(t, "Breakfast", created.Category)
	assert.Equal(t, ann.User.ID, created.Author.ID)

	rec = do(t, s, http.MethodGet, "/v1/recipes/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[models.Recipe](t, rec))

	rec = do(t, s, http.MethodPatch, "/v1/recipes/"+created.ID, bob.Token, map[string]any{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodPatch, "/v1/recipes/"+created.ID, ann.Token, map[string]any{"prepTime": 20})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, decode[models.Recipe](t, rec).PrepTime)

	rec = do(t, s, http.MethodPost, "/v1/recipes", ann.Token, models.RecipeInput{Title: "Nope", Category: "Brunch"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, "/v1/recipes/"+created.ID, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodDelete, "/v1/recipes/"+created.ID, ann.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/v1/recipes/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRecipesFilters(t *testing.T) {
	s := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]models.Recipe](t, rec)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "newest first")
	}

	rec = do(t, s, http.MethodGet, "/v1/recipes?category=dessert", "", nil)
	for _, r := range decode[[]models.Recipe](t, rec) {
		assert.Equal(t, "Dessert", r.Category)
	}

	rec = do(t, s, http.MethodGet, "/v1/recipes?prepTime=30%2B", "", nil)
	for _, r := range decode[[]models.Recipe](t, rec) {
		assert.GreaterOrEqual(t, r.PrepTime, 30)
	}

	rec = do(t, s, http.MethodGet, "/v1/recipes?limit=1", "", nil)
	assert.Len(t, decode[[]models.Recipe](t, rec), 1)

	rec = do(t, s, http.MethodGet, "/v1/recipes?limit=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/recipes?query=zzzz-nothing", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSaveAndDashboard(t *testing.T) {
	s := newTestServer(t, false)
	ann := register(t, s, "Ann", "ann@example.com")

	rec := do(t, s, http.MethodPost, "/v1/recipes", ann.Token, models.RecipeInput{
		Title: "Soup", Ingredients: []string{"water"}, Steps: []string{"boil"}, Category: "Soup", PrepTime: 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	r := decode[models.Recipe](t, rec)

	for range 2 {
		rec = do(t, s, http.MethodPut, "/v1/users/me/saved/"+r.ID, ann.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, []string{r.ID}, decode[models.User](t, rec).SavedRecipeIDs)

	rec = do(t, s, http.MethodPut, "/v1/users/me/saved/missing", ann.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/users/me/saved", ann.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Recipe](t, rec), 1)

	rec = do(t, s, http.MethodGet, "/v1/users/me/recipes", ann.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Recipe](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/v1/users/me/saved/"+r.ID, ann.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[models.User](t, rec).SavedRecipeIDs)

	rec = do(t, s, http.MethodPatch, "/v1/users/me", ann.Token, map[string]string{"name": "Annie"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Annie", decode[models.User](t, rec).Name)
}

func TestDescribeAndImages(t *testing.T) {
	s := newTestServer(t, false)
	ann := register(t, s, "Ann", "ann@example.com")

	rec := do(t, s, http.MethodPost, "/v1/recipes/describe", "", map[string]any{"title": "Tart", "ingredients": []string{"lemon"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"description":%q}`, textgen.DisabledMessage), rec.Body.String())

	rec = do(t, s, http.MethodPost, "/v1/recipes/describe", "", map[string]any{"title": "Tart"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/images", ann.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "recipes/k", decode[images.Upload](t, rec).Key)
}

func TestInternalErrorsAreNotEchoed(t *testing.T) {
	s := newTestServer(t, false)
	s.uploads = fakeUploader{err: errors.New("secret s3 detail")}
	s.engine = s.routes()
	ann := register(t, s, "Ann", "ann@example.com")

	rec := do(t, s, http.MethodPost, "/v1/images", ann.Token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", common.ErrorValidation), http.StatusBadRequest},
		{common.ErrorUnauthenticated, http.StatusUnauthorized},
		{common.ErrorForbidden, http.StatusForbidden},
		{fmt.Errorf("recipe r: %w", common.ErrorNotFound), http.StatusNotFound},
		{common.ErrorConflict, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
