// Package recipes stores recipe records. Every implementation returns
// copies, orders listings newest first and reports missing records with
// common.ErrorNotFound.
package recipes

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

// ErrAbandoned is joined with the context error when a mutation was
// committed but the caller stopped waiting for the simulated latency. The
// result returned alongside it is the committed record.
var ErrAbandoned = errors.New("mutation committed before the caller stopped waiting")

type Repository interface {
	List(ctx context.Context, filter query.Filter) ([]models.Recipe, error)
	GetByID(ctx context.Context, id string) (models.Recipe, error)
	// Create assigns ID and CreatedAt; any values already set are overwritten.
	Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	Update(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error)
	Delete(ctx context.Context, id string) error
}
