package recipes

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/latency"
)

// InMemoryRepository is the volatile mock store. New recipes go to the
// front of the collection. Mutations are committed before the simulated
// latency elapses, so a caller that gives up waiting still changes state.
type InMemoryRepository struct {
	mu      sync.RWMutex
	recipes []models.Recipe
	latency time.Duration
	now     func() time.Time
	newID   func() string
}

func NewInMemoryRepository(delay time.Duration, seed ...models.Recipe) *InMemoryRepository {
	r := &InMemoryRepository{
		latency: delay,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, s := range seed {
		r.recipes = append(r.recipes, s.Clone())
	}
	return r
}

func (r *InMemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.recipes, func(rec models.Recipe) bool { return rec.ID == id })
}

func (r *InMemoryRepository) List(ctx context.Context, filter query.Filter) ([]models.Recipe, error) {
	r.mu.RLock()
	matched := query.Apply(r.recipes, filter)
	r.mu.RUnlock()

	for i := range matched {
		matched[i] = matched[i].Clone()
	}

	if err := latency.Wait(ctx, r.latency); err != nil {
		return nil, err
	}
	return matched, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (models.Recipe, error) {
	r.mu.RLock()
	i := r.indexOf(id)
	var found models.Recipe
	if i >= 0 {
		found = r.recipes[i].Clone()
	}
	r.mu.RUnlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		return models.Recipe{}, err
	}
	if i < 0 {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
	}
	return found, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	stored := recipe.Clone()
	stored.ID = r.newID()
	stored.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.recipes = slices.Insert(r.recipes, 0, stored)
	r.mu.Unlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		return stored.Clone(), fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	return stored.Clone(), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	r.mu.Lock()
	i := r.indexOf(id)
	var updated models.Recipe
	if i >= 0 {
		updated = patch.Apply(r.recipes[i])
		r.recipes[i] = updated
	}
	r.mu.Unlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		if i < 0 {
			return models.Recipe{}, err
		}
		return updated.Clone(), fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	if i < 0 {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
	}
	return updated.Clone(), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	i := r.indexOf(id)
	if i >= 0 {
		r.recipes = slices.Delete(r.recipes, i, i+1)
	}
	r.mu.Unlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		if i < 0 {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAbandoned, err)
	}
	if i < 0 {
		return fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
