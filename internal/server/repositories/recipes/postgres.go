package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

const recipeColumns = `id, title, description, ingredients, steps, category, prep_time, image_url, author, created_at`

// PostgresRepository keeps recipes in the recipes table. List ships the
// filter to SQL with the same semantics as query.Match. Equal timestamps are
// ordered by insert sequence, newest first, like the in-memory store.
type PostgresRepository struct {
	db    dbx.DBTX
	now   func() time.Time
	newID func() string
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now, newID: uuid.NewString}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var (
		r                          models.Recipe
		ingredients, steps, author []byte
	)
	err := row.Scan(&r.ID, &r.Title, &r.Description, &ingredients, &steps,
		&r.Category, &r.PrepTime, &r.ImageURL, &author, &r.CreatedAt)
	if err != nil {
		return models.Recipe{}, err
	}
	if err := json.Unmarshal(ingredients, &r.Ingredients); err != nil {
		return models.Recipe{}, fmt.Errorf("decode ingredients: %w", err)
	}
	if err := json.Unmarshal(steps, &r.Steps); err != nil {
		return models.Recipe{}, fmt.Errorf("decode steps: %w", err)
	}
	if err := json.Unmarshal(author, &r.Author); err != nil {
		return models.Recipe{}, fmt.Errorf("decode author: %w", err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

// escapeLike neutralises LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildListQuery renders the filter into a WHERE clause.
func buildListQuery(f query.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		where = append(where, "lower(category) = lower("+next(f.Category)+")")
	}
	if b, ok := query.ParseBucket(f.PrepTime); ok {
		where = append(where, "prep_time >= "+next(b.Min))
		if !b.Open {
			where = append(where, "prep_time <= "+next(b.Max))
		}
	}
	if f.Query != "" {
		p := next("%" + escapeLike(strings.ToLower(f.Query)) + "%")
		where = append(where, "(lower(title) LIKE "+p+
			" OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(ingredients) AS i WHERE lower(i) LIKE "+p+"))")
	}

	q := "SELECT " + recipeColumns + " FROM recipes"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, seq DESC"
	return q, args
}

func (r *PostgresRepository) List(ctx context.Context, filter query.Filter) ([]models.Recipe, error) {
	q, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]models.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe rows: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+recipeColumns+" FROM recipes WHERE id = $1", id)
	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
		}
		return models.Recipe{}, fmt.Errorf("error performing sql request: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	stored := recipe.Clone()
	stored.ID = r.newID()
	// TIMESTAMPTZ keeps microseconds; match it so GetByID returns the same value.
	stored.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	ingredients, err := json.Marshal(stored.Ingredients)
	if err != nil {
		return models.Recipe{}, err
	}
	steps, err := json.Marshal(stored.Steps)
	if err != nil {
		return models.Recipe{}, err
	}
	author, err := json.Marshal(stored.Author)
	if err != nil {
		return models.Recipe{}, err
	}

	stmt :=
		`INSERT INTO recipes (id, title, description, ingredients, steps, category, prep_time, image_url, author, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.ExecContext(ctx, stmt, stored.ID, stored.Title, stored.Description,
		string(ingredients), string(steps), stored.Category, stored.PrepTime, stored.ImageURL,
		string(author), stored.CreatedAt)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("error performing sql request: %w", err)
	}
	return stored, nil
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableJSON(p *[]string) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(*p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	ingredients, err := nullableJSON(patch.Ingredients)
	if err != nil {
		return models.Recipe{}, err
	}
	steps, err := nullableJSON(patch.Steps)
	if err != nil {
		return models.Recipe{}, err
	}

	stmt :=
		`UPDATE recipes SET
		   title = COALESCE($2, title),
		   description = COALESCE($3, description),
		   ingredients = COALESCE($4::jsonb, ingredients),
		   steps = COALESCE($5::jsonb, steps),
		   category = COALESCE($6, category),
		   prep_time = COALESCE($7, prep_time),
		   image_url = COALESCE($8, image_url)
		 WHERE id = $1
		 RETURNING ` + recipeColumns

	row := r.db.QueryRowContext(ctx, stmt, id,
		nullable(patch.Title), nullable(patch.Description), ingredients, steps,
		nullable(patch.Category), nullable(patch.PrepTime), nullable(patch.ImageURL))

	rec, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
		}
		return models.Recipe{}, fmt.Errorf("error performing sql request: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("recipe %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
