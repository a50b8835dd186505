package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

func setupRedisStore(t *testing.T) (*RedisSnapshotStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSnapshotStore(client), mr
}

func TestRedisSnapshotStore_SaveAndLoad(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "owner-1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	_, err = store.Save(ctx, "owner-1", sampleProjects())
	require.NoError(t, err)
	assert.True(t, mr.Exists("ct:state:owner-1"))

	s, err := store.Load(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, sampleProjects(), s.Projects)
	assert.Equal(t, "owner-1", s.OwnerID)
}

func TestRedisSnapshotStore_PublishesOnSave(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	sub := store.Subscribe(ctx, "owner-1")
	defer sub.Close()
	_, err := sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	saved, err := store.Save(ctx, "owner-1", sampleProjects())
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "ct:events:owner-1", msg.Channel)
		got, err := time.Parse(time.RFC3339Nano, msg.Payload)
		require.NoError(t, err)
		assert.True(t, got.Equal(saved.SavedAt))
	case <-time.After(2 * time.Second):
		t.Fatal("no save notification received")
	}
}

func TestRedisSnapshotStore_LoadCorrupt(t *testing.T) {
	store, mr := setupRedisStore(t)
	require.NoError(t, mr.Set("ct:state:owner-1", "{broken"))

	_, err := store.Load(context.Background(), "owner-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisSnapshotStore_WatchSaves(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	var _ SaveWatcher = store
	saves, err := store.WatchSaves(ctx, "owner-1")
	require.NoError(t, err)

	saved, err := store.Save(context.Background(), "owner-1", sampleProjects())
	require.NoError(t, err)

	select {
	case at := <-saves:
		assert.True(t, at.Equal(saved.SavedAt))
	case <-time.After(2 * time.Second):
		t.Fatal("no save notification received")
	}

	cancel()
	select {
	case _, ok := <-saves:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
