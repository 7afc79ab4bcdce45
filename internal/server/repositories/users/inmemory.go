package users

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/latency"
)

// InMemoryRepository is the volatile identity collection used by the mock
// store. Like the recipe store it commits before the simulated latency.
type InMemoryRepository struct {
	mu      sync.RWMutex
	users   []models.User
	latency time.Duration
	newID   func() string
}

func NewInMemoryRepository(delay time.Duration, seed ...models.User) *InMemoryRepository {
	r := &InMemoryRepository{latency: delay, newID: uuid.NewString}
	for _, u := range seed {
		r.users = append(r.users, u.Clone())
	}
	return r
}

func (r *InMemoryRepository) indexByID(id string) int {
	return slices.IndexFunc(r.users, func(u models.User) bool { return u.ID == id })
}

func (r *InMemoryRepository) indexByEmail(email string) int {
	return slices.IndexFunc(r.users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *InMemoryRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	stored := u.Clone()
	stored.ID = r.newID()
	stored.SavedRecipeIDs = []string{}

	r.mu.Lock()
	taken := r.indexByEmail(stored.Email) >= 0
	if !taken {
		r.users = append(r.users, stored)
	}
	r.mu.Unlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, fmt.Errorf("email %s: %w", stored.Email, common.ErrorConflict)
	}
	return stored.Clone(), nil
}

// find looks a user up with idx under the read lock, then waits.
func (r *InMemoryRepository) find(ctx context.Context, key string, idx func(string) int) (models.User, error) {
	r.mu.RLock()
	i := idx(key)
	var found models.User
	if i >= 0 {
		found = r.users[i].Clone()
	}
	r.mu.RUnlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		return models.User{}, err
	}
	if i < 0 {
		return models.User{}, fmt.Errorf("user %s: %w", key, common.ErrorNotFound)
	}
	return found, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.find(ctx, id, r.indexByID)
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.find(ctx, email, r.indexByEmail)
}

// mutate applies fn to the stored user under the write lock, then waits.
func (r *InMemoryRepository) mutate(ctx context.Context, id string, fn func(models.User) models.User) (models.User, error) {
	r.mu.Lock()
	i := r.indexByID(id)
	var updated models.User
	if i >= 0 {
		updated = fn(r.users[i])
		r.users[i] = updated
	}
	r.mu.Unlock()

	if err := latency.Wait(ctx, r.latency); err != nil {
		return models.User{}, err
	}
	if i < 0 {
		return models.User{}, fmt.Errorf("user %s: %w", id, common.ErrorNotFound)
	}
	return updated.Clone(), nil
}

func (r *InMemoryRepository) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.User, error) {
	return r.mutate(ctx, id, patch.Apply)
}

func (r *InMemoryRepository) AddSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	return r.mutate(ctx, userID, func(u models.User) models.User { return u.WithSaved(recipeID) })
}

func (r *InMemoryRepository) RemoveSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	return r.mutate(ctx, userID, func(u models.User) models.User { return u.WithoutSaved(recipeID) })
}
