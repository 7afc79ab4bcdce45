package repomanager

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/seed"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/users"
)

// InMemoryRepositoryManager owns the mock store for the lifetime of the
// process. Its contents are lost on restart.
type InMemoryRepositoryManager struct {
	users   *users.InMemoryRepository
	recipes *recipes.InMemoryRepository
}

// NewInMemoryRepositoryManager creates empty collections, or collections
// holding the mock data when withSeed is set.
func NewInMemoryRepositoryManager(latency time.Duration, withSeed bool) *InMemoryRepositoryManager {
	m := &InMemoryRepositoryManager{}
	if withSeed {
		m.users = users.NewInMemoryRepository(latency, seed.Users()...)
		m.recipes = recipes.NewInMemoryRepository(latency, seed.Recipes()...)
	} else {
		m.users = users.NewInMemoryRepository(latency)
		m.recipes = recipes.NewInMemoryRepository(latency)
	}
	return m
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Recipes() recipes.Repository { return m.recipes }

func (m *InMemoryRepositoryManager) Close() error { return nil }
