package timezone

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
)

func TestRepository_SetGetRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timezones.json")
	ctx := context.Background()

	repo := NewRepository(path, retry.Strategy{Attempts: 1})
	require.NoError(t, repo.LoadAll())

	_, ok, err := repo.GetZone(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetZone(ctx, "alice", "Europe/Moscow"))

	restarted := NewRepository(path, retry.Strategy{Attempts: 1})
	require.NoError(t, restarted.LoadAll())

	zone, ok, err := restarted.GetZone(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Europe/Moscow", zone)
}

func TestRepository_LoadAll_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timezones.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o644))

	repo := NewRepository(path, retry.Strategy{Attempts: 1})
	err := repo.LoadAll()
	assert.ErrorIs(t, err, ErrPersistence)

	_, ok, err := repo.GetZone(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_SetZone_PersistFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewRepository(filepath.Join(blocker, "tz.json"), retry.Strategy{Attempts: 1})
	ctx := context.Background()

	assert.ErrorIs(t, repo.SetZone(ctx, "alice", "UTC"), ErrPersistence)

	zone, ok, err := repo.GetZone(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "UTC", zone)
}
