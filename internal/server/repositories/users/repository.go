// Package users holds the identity collection. Emails are unique across the
// collection; the service layer normalises them before they get here.
package users

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/models"
)

type Repository interface {
	// Create assigns a fresh id and stores u with an empty saved set.
	// It fails with common.ErrorConflict when the email is taken.
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.User, error)
	// AddSavedRecipe and RemoveSavedRecipe are idempotent.
	AddSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error)
	RemoveSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error)
}
