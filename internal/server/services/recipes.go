package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
	"github.com/dmitrijs2005/recipebox/internal/server/events"
	"github.com/dmitrijs2005/recipebox/internal/server/images"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/users"
	"github.com/dmitrijs2005/recipebox/internal/server/textgen"
)

// RecipeService enforces ownership and form rules on top of the recipe
// repository and publishes lifecycle events.
type RecipeService struct {
	recipes   recipes.Repository
	users     users.Repository
	generator textgen.Generator
	publisher events.Publisher
	log       logging.Logger
	now       func() time.Time
}

func NewRecipeService(m repomanager.RepositoryManager, g textgen.Generator, p events.Publisher, log logging.Logger) *RecipeService {
	return &RecipeService{
		recipes:   m.Recipes(),
		users:     m.Users(),
		generator: g,
		publisher: p,
		log:       log.With("module", "recipes"),
		now:       time.Now,
	}
}

func validation(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}

func canonicalCategory(s string) (string, error) {
	c, ok := models.CanonicalCategory(s)
	if !ok {
		return "", validation(fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}

func nonEmptyLines(name string, lines []string) ([]string, error) {
	out := models.CompactLines(lines)
	if len(out) == 0 {
		return nil, validation(name + " must not be empty")
	}
	return out, nil
}

// normalizeInput trims the form and fills the placeholder image.
func normalizeInput(in models.RecipeInput) (models.Recipe, error) {
	r := models.Recipe{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		PrepTime:    in.PrepTime,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if r.Title == "" {
		return models.Recipe{}, validation("title is required")
	}
	if r.PrepTime < 0 {
		return models.Recipe{}, validation("prepTime must not be negative")
	}

	var err error
	if r.Category, err = canonicalCategory(in.Category); err != nil {
		return models.Recipe{}, err
	}
	if r.Ingredients, err = nonEmptyLines("ingredients", in.Ingredients); err != nil {
		return models.Recipe{}, err
	}
	if r.Steps, err = nonEmptyLines("steps", in.Steps); err != nil {
		return models.Recipe{}, err
	}
	if r.ImageURL == "" {
		r.ImageURL = images.PlaceholderURL(r.Title)
	}
	return r, nil
}

// normalizePatch applies the same rules as normalizeInput to the fields
// present in p. current is the stored recipe, used for the placeholder.
func normalizePatch(p models.RecipePatch, current models.Recipe) (models.RecipePatch, error) {
	out := models.RecipePatch{}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return out, validation("title is required")
		}
		out.Title = &t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		out.Description = &d
	}
	if p.Ingredients != nil {
		lines, err := nonEmptyLines("ingredients", *p.Ingredients)
		if err != nil {
			return out, err
		}
		out.Ingredients = &lines
	}
	if p.Steps != nil {
		lines, err := nonEmptyLines("steps", *p.Steps)
		if err != nil {
			return out, err
		}
		out.Steps = &lines
	}
	if p.Category != nil {
		c, err := canonicalCategory(*p.Category)
		if err != nil {
			return out, err
		}
		out.Category = &c
	}
	if p.PrepTime != nil {
		if *p.PrepTime < 0 {
			return out, validation("prepTime must not be negative")
		}
		n := *p.PrepTime
		out.PrepTime = &n
	}
	if p.ImageURL != nil {
		u := strings.TrimSpace(*p.ImageURL)
		if u == "" {
			title := current.Title
			if out.Title != nil {
				title = *out.Title
			}
			u = images.PlaceholderURL(title)
		}
		out.ImageURL = &u
	}
	return out, nil
}

// List returns matching recipes newest first. A positive limit truncates.
func (s *RecipeService) List(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error) {
	list, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *RecipeService) Get(ctx context.Context, id string) (models.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("error getting recipe: %w", err)
	}
	return r, nil
}

// Create stores the form with the caller as author.
func (s *RecipeService) Create(ctx context.Context, authorID string, in models.RecipeInput) (models.Recipe, error) {
	r, err := normalizeInput(in)
	if err != nil {
		return models.Recipe{}, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Recipe{}, common.ErrorUnauthenticated
		}
		return models.Recipe{}, fmt.Errorf("error getting author: %w", err)
	}
	r.Author = models.AuthorFrom(author)

	created, err := s.recipes.Create(ctx, r)
	if err != nil {
		if errors.Is(err, recipes.ErrAbandoned) {
			s.publish(context.WithoutCancel(ctx), events.RecipeCreated, authorID, created.ID, &created)
		}
		return models.Recipe{}, fmt.Errorf("error creating recipe: %w", err)
	}

	s.publish(ctx, events.RecipeCreated, authorID, created.ID, &created)
	return created, nil
}

// owned loads the recipe and checks that actorID wrote it.
func (s *RecipeService) owned(ctx context.Context, actorID, id string) (models.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("error getting recipe: %w", err)
	}
	if r.Author.ID != actorID {
		return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, common.ErrorForbidden)
	}
	return r, nil
}

func (s *RecipeService) Update(ctx context.Context, actorID, id string, patch models.RecipePatch) (models.Recipe, error) {
	current, err := s.owned(ctx, actorID, id)
	if err != nil {
		return models.Recipe{}, err
	}

	patch, err = normalizePatch(patch, current)
	if err != nil {
		return models.Recipe{}, err
	}

	updated, err := s.recipes.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, recipes.ErrAbandoned) {
			s.publish(context.WithoutCancel(ctx), events.RecipeUpdated, actorID, id, &updated)
		}
		return models.Recipe{}, fmt.Errorf("error updating recipe: %w", err)
	}

	s.publish(ctx, events.RecipeUpdated, actorID, id, &updated)
	return updated, nil
}

func (s *RecipeService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, recipes.ErrAbandoned) {
			s.publish(context.WithoutCancel(ctx), events.RecipeDeleted, actorID, id, nil)
		}
		return fmt.Errorf("error deleting recipe: %w", err)
	}

	s.publish(ctx, events.RecipeDeleted, actorID, id, nil)
	return nil
}

// ByAuthor lists the recipes written by authorID, newest first.
func (s *RecipeService) ByAuthor(ctx context.Context, authorID string) ([]models.Recipe, error) {
	all, err := s.recipes.List(ctx, query.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	out := make([]models.Recipe, 0)
	for _, r := range all {
		if r.Author.ID == authorID {
			out = append(out, r)
		}
	}
	return out, nil
}

// SavedFor resolves the user's saved ids in saved order. Ids whose recipe
// no longer exists are skipped and left in the saved set.
func (s *RecipeService) SavedFor(ctx context.Context, userID string) ([]models.Recipe, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if len(u.SavedRecipeIDs) == 0 {
		return []models.Recipe{}, nil
	}

	all, err := s.recipes.List(ctx, query.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	byID := make(map[string]models.Recipe, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	out := make([]models.Recipe, 0, len(u.SavedRecipeIDs))
	for _, id := range u.SavedRecipeIDs {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Describe asks the generator for a short description of the dish.
func (s *RecipeService) Describe(ctx context.Context, title string, ingredients []string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validation("title is required")
	}
	lines, err := nonEmptyLines("ingredients", ingredients)
	if err != nil {
		return "", err
	}
	return s.generator.Generate(ctx, textgen.DescriptionPrompt(title, lines)), nil
}

func (s *RecipeService) publish(ctx context.Context, kind, actorID, recipeID string, r *models.Recipe) {
	ev := events.RecipeEvent{
		Type:       kind,
		RecipeID:   recipeID,
		ActorID:    actorID,
		Recipe:     r,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, kind, ev); err != nil {
		s.log.Warn(ctx, "error publishing event", "type", kind, "recipe_id", recipeID, "error", err)
	}
}
