package memory

import (
	"context"
	"testing"

	"niv-scholar-be/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	s := NewStorage()

	val, ok, err := s.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	require.NoError(t, s.Set(ctx, "k", "[1]"))
	require.NoError(t, s.Set(ctx, "k", "[1,2]"))

	val, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,2]", val)
}

func TestPrefixIsolatesClients(t *testing.T) {
	ctx := context.Background()
	base := NewStorage()
	a := storage.WithPrefix(base, "client-a")
	b := storage.WithPrefix(base, "client-b")

	require.NoError(t, a.Set(ctx, "niv-scholar-insights", "[]"))

	_, ok, err := b.Get(ctx, "niv-scholar-insights")
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := base.Get(ctx, "client-a:niv-scholar-insights")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}
