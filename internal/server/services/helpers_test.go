package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/events"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
)

type fakeGenerator struct {
	prompt string
	out    string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) string {
	g.prompt = prompt
	return g.out
}

type recordingPublisher struct {
	mu      sync.Mutex
	keys    []string
	evs     []events.RecipeEvent
	ctxErrs []error
	err     error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	if ev, ok := v.(events.RecipeEvent); ok {
		p.evs = append(p.evs, ev)
	}
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	users   *UserService
	recipes *RecipeService
	gen     *fakeGenerator
	pub     *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager(0, false)
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}

	f := &fixture{gen: &fakeGenerator{out: "Tasty."}, pub: &recordingPublisher{}}
	f.users = NewUserService(m, cfg, logging.Discard())
	f.recipes = NewRecipeService(m, f.gen, f.pub, logging.Discard())
	return f
}

func (f *fixture) register(t *testing.T, name, email string) models.User {
	t.Helper()
	s, err := f.users.Register(context.Background(), name, email)
	require.NoError(t, err)
	return s.User
}

func validInput(title string) models.RecipeInput {
	return models.RecipeInput{
		Title:       title,
		Description: "desc",
		Ingredients: []string{"flour", "milk"},
		Steps:       []string{"mix", "cook"},
		Category:    "Breakfast",
		PrepTime:    20,
	}
}

func ptr[T any](v T) *T { return &v }
