package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/models"
)

const userColumns = `id, name, email, profile_photo, saved_recipe_ids`

type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString}
}

func scanUser(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var (
		u     models.User
		saved []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePhoto, &saved); err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal(saved, &u.SavedRecipeIDs); err != nil {
		return models.User{}, fmt.Errorf("decode saved recipe ids: %w", err)
	}
	if u.SavedRecipeIDs == nil {
		u.SavedRecipeIDs = []string{}
	}
	return u, nil
}

func (r *PostgresRepository) one(ctx context.Context, key, stmt string, args ...any) (models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", key, common.ErrorNotFound)
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	stored := u.Clone()
	stored.ID = r.newID()
	stored.SavedRecipeIDs = []string{}

	stmt :=
		`INSERT INTO users (id, name, email, profile_photo, saved_recipe_ids)
		 VALUES ($1, $2, $3, $4, '[]'::jsonb)`

	_, err := r.db.ExecContext(ctx, stmt, stored.ID, stored.Name, stored.Email, stored.ProfilePhoto)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return models.User{}, fmt.Errorf("email %s: %w", stored.Email, common.ErrorConflict)
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.one(ctx, id, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.one(ctx, email, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.User, error) {
	var name, photo any
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.ProfilePhoto != nil {
		photo = *patch.ProfilePhoto
	}

	stmt :=
		`UPDATE users SET
		   name = COALESCE($2, name),
		   profile_photo = COALESCE($3, profile_photo)
		 WHERE id = $1
		 RETURNING ` + userColumns

	return r.one(ctx, id, stmt, id, name, photo)
}

func (r *PostgresRepository) AddSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	stmt :=
		`UPDATE users SET saved_recipe_ids = CASE
		   WHEN saved_recipe_ids @> to_jsonb(ARRAY[$2::text]) THEN saved_recipe_ids
		   ELSE saved_recipe_ids || to_jsonb(ARRAY[$2::text])
		 END
		 WHERE id = $1
		 RETURNING ` + userColumns

	return r.one(ctx, userID, stmt, userID, recipeID)
}

func (r *PostgresRepository) RemoveSavedRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	stmt :=
		`UPDATE users SET saved_recipe_ids = saved_recipe_ids - $2::text
		 WHERE id = $1
		 RETURNING ` + userColumns

	return r.one(ctx, userID, stmt, userID, recipeID)
}
