package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/recipebox/internal/models"
)

type session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email string) (models.User, string, error) {
	var s session
	in := map[string]string{"name": name, "email": email}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", in, &s); err != nil {
		return models.User{}, "", err
	}
	return s.User, s.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string) (models.User, string, error) {
	var s session
	in := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", in, &s); err != nil {
		return models.User{}, "", err
	}
	return s.User, s.Token, nil
}

func (c *HTTPClient) user(ctx context.Context, method, path, token string, in any) (models.User, error) {
	var u models.User
	if err := c.do(ctx, method, path, token, in, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (models.User, error) {
	return c.user(ctx, http.MethodGet, "/v1/users/me", token, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (models.User, error) {
	return c.user(ctx, http.MethodPatch, "/v1/users/me", token, patch)
}

func (c *HTTPClient) SaveRecipe(ctx context.Context, token, recipeID string) (models.User, error) {
	return c.user(ctx, http.MethodPut, "/v1/users/me/saved/"+url.PathEscape(recipeID), token, nil)
}

func (c *HTTPClient) UnsaveRecipe(ctx context.Context, token, recipeID string) (models.User, error) {
	return c.user(ctx, http.MethodDelete, "/v1/users/me/saved/"+url.PathEscape(recipeID), token, nil)
}
