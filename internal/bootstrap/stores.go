package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/constructtrack/constructtrack-backend/config"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/repository"
)

// OpenRedis connects and pings; it returns nil, nil when Redis is not
// configured.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// StoreDeps are the already-open connections a snapshot store may need.
type StoreDeps struct {
	SQL   *sql.DB
	Redis *redis.Client
}

// NewSnapshotStore picks the snapshot backend named by cfg.Storage.Backend.
func NewSnapshotStore(ctx context.Context, cfg *config.Config, deps StoreDeps) (repository.SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		return repository.NewMemorySnapshotStore(), nil

	case config.BackendPostgres:
		if deps.SQL == nil {
			return nil, fmt.Errorf("postgres snapshot store needs a database connection")
		}
		st := repository.NewPostgresSnapshotStore(deps.SQL)
		if err := st.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return st, nil

	case config.BackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis snapshot store needs a redis connection")
		}
		return repository.NewRedisSnapshotStore(deps.Redis), nil

	case config.BackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		log.Printf("[storage] s3 bucket=%s prefix=%s region=%s", cfg.Storage.S3Bucket, cfg.Storage.S3Prefix, awsCfg.Region)
		return repository.NewS3SnapshotStore(s3.NewFromConfig(awsCfg), cfg.Storage.S3Bucket, cfg.Storage.S3Prefix), nil
	}
	return nil, fmt.Errorf("unknown state backend %q", cfg.Storage.Backend)
}
