// Package repomanager builds the repositories the services depend on, either
// over the volatile in-memory mock store or over PostgreSQL.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Recipes() recipes.Repository
	Close() error
}
