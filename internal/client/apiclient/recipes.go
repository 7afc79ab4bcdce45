package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

func (c *HTTPClient) recipes(ctx context.Context, path, token string) ([]models.Recipe, error) {
	list := make([]models.Recipe, 0)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) recipe(ctx context.Context, method, path, token string, in any) (models.Recipe, error) {
	var r models.Recipe
	if err := c.do(ctx, method, path, token, in, &r); err != nil {
		return models.Recipe{}, err
	}
	return r, nil
}

// ListRecipes returns recipes matching f, newest first. A positive limit
// caps the result.
func (c *HTTPClient) ListRecipes(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error) {
	v := f.Values()
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/recipes"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	return c.recipes(ctx, path, "")
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	return c.recipe(ctx, http.MethodGet, "/v1/recipes/"+url.PathEscape(id), "", nil)
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, token string, in models.RecipeInput) (models.Recipe, error) {
	return c.recipe(ctx, http.MethodPost, "/v1/recipes", token, in)
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, token, id string, patch models.RecipePatch) (models.Recipe, error) {
	return c.recipe(ctx, http.MethodPatch, "/v1/recipes/"+url.PathEscape(id), token, patch)
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/recipes/"+url.PathEscape(id), token, nil, nil)
}

func (c *HTTPClient) MyRecipes(ctx context.Context, token string) ([]models.Recipe, error) {
	return c.recipes(ctx, "/v1/users/me/recipes", token)
}

func (c *HTTPClient) SavedRecipes(ctx context.Context, token string) ([]models.Recipe, error) {
	return c.recipes(ctx, "/v1/users/me/saved", token)
}

func (c *HTTPClient) Describe(ctx context.Context, title string, ingredients []string) (string, error) {
	in := map[string]any{"title": title, "ingredients": ingredients}
	var out struct {
		Description string `json:"description"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/recipes/describe", "", in, &out); err != nil {
		return "", err
	}
	return out.Description, nil
}

func (c *HTTPClient) PresignImage(ctx context.Context, token string) (Upload, error) {
	var up Upload
	err := c.do(ctx, http.MethodPost, "/v1/images", token, nil, &up)
	return up, err
}
