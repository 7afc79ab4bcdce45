// Package apiclient is the CLI's JSON-over-HTTP client for the RecipeBox API.
//
// Non-2xx responses are mapped back to the sentinel errors of
// internal/common, so callers match them with errors.Is exactly as the
// server's services do. Transport failures wrap common.ErrorUnavailable.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

// Meta lists the choices offered by the recipe form and filters.
type Meta struct {
	Categories []string             `json:"categories"`
	PrepTimes  []query.BucketOption `json:"prepTimes"`
}

// Upload is a presigned image upload.
type Upload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadURL"`
	ImageURL  string `json:"imageURL"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// sentinelFor maps an HTTP status back to the error the server started from.
func sentinelFor(code int) error {
	switch code {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthenticated
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return common.ErrorUnavailable
	default:
		return common.ErrorInternal
	}
}

func mapError(resp *http.Response) error {
	sentinel := sentinelFor(resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return sentinel
	}

	msg := strings.TrimPrefix(body.Error, sentinel.Error()+": ")
	if msg == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil). An empty token sends no Authorization header.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", "", nil, nil)
}

func (c *HTTPClient) Meta(ctx context.Context) (Meta, error) {
	var m Meta
	err := c.do(ctx, http.MethodGet, "/v1/meta", "", nil, &m)
	return m, err
}
