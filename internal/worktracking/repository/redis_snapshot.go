package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

const (
	stateKeyPrefix     = "ct:state:"  // ct:state:{owner_id} -> snapshot JSON
	stateChannelPrefix = "ct:events:" // ct:events:{owner_id} pub/sub, payload = saved_at
)

// RedisSnapshotStore keeps the latest snapshot of each owner under one key
// and announces saves on a per-owner channel.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (r *RedisSnapshotStore) Name() string { return "redis" }

func (r *RedisSnapshotStore) Save(ctx context.Context, ownerID string, projects []domain.Project) (*Snapshot, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	s := newSnapshot(ownerID, projects)
	b, err := encodeSnapshot(s)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.stateKey(ownerID), b, 0)
	pipe.Publish(ctx, r.stateChannel(ownerID), s.SavedAt.Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return s, nil
}

func (r *RedisSnapshotStore) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	b, err := r.client.Get(ctx, r.stateKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decodeSnapshot(b)
}

// Subscribe returns a subscription to the owner's save notifications.
func (r *RedisSnapshotStore) Subscribe(ctx context.Context, ownerID string) *redis.PubSub {
	return r.client.Subscribe(ctx, r.stateChannel(ownerID))
}

// WatchSaves streams the SavedAt of every save of ownerID, from any
// process sharing this Redis, until ctx is done.
func (r *RedisSnapshotStore) WatchSaves(ctx context.Context, ownerID string) (<-chan time.Time, error) {
	sub := r.Subscribe(ctx, ownerID)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan time.Time)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				at, err := time.Parse(time.RFC3339Nano, m.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- at:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *RedisSnapshotStore) stateKey(ownerID string) string {
	return fmt.Sprintf("%s%s", stateKeyPrefix, ownerID)
}

func (r *RedisSnapshotStore) stateChannel(ownerID string) string {
	return fmt.Sprintf("%s%s", stateChannelPrefix, ownerID)
}
