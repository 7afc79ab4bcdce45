package repomanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipebox/internal/query"
)

func TestInMemoryManager_Seeded(t *testing.T) {
	m := NewInMemoryRepositoryManager(0, true)
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx))

	all, err := m.Recipes().List(ctx, query.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	u, err := m.Users().GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.NoError(t, m.Close())
}

func TestInMemoryManager_Empty(t *testing.T) {
	m := NewInMemoryRepositoryManager(0, false)

	all, err := m.Recipes().List(context.Background(), query.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
