// Package events publishes recipe lifecycle notifications. Publishing is
// best effort: the services log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/models"
)

const (
	RecipeCreated = "recipe.created"
	RecipeUpdated = "recipe.updated"
	RecipeDeleted = "recipe.deleted"
)

// RecipeEvent is the message body. Recipe is omitted for deletions.
type RecipeEvent struct {
	Type       string         `json:"type"`
	RecipeID   string         `json:"recipeId"`
	ActorID    string         `json:"actorId"`
	Recipe     *models.Recipe `json:"recipe,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, v any) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
