package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tunes the pgx pool shared by the users table and the health
// check. Zero fields take the defaults below.
type PoolOptions struct {
	DSN            string
	AppName        string
	MaxConns       int32
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

const (
	defaultMaxConns       = 4
	defaultConnectTimeout = 5 * time.Second
	defaultPingTimeout    = 2 * time.Second
)

var errEmptyDSN = errors.New("postgres DSN is empty")

func (o PoolOptions) poolConfig() (*pgxpool.Config, error) {
	if o.DSN == "" {
		return nil, errEmptyDSN
	}
	pc, err := pgxpool.ParseConfig(o.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres DSN: %w", err)
	}
	pc.MaxConns = o.MaxConns
	if pc.MaxConns <= 0 {
		pc.MaxConns = defaultMaxConns
	}
	if o.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = o.AppName
	}
	return pc, nil
}

// OpenPool builds the pgx pool and pings it once so a bad DSN fails start-up.
func OpenPool(ctx context.Context, opt PoolOptions) (*pgxpool.Pool, error) {
	pc, err := opt.poolConfig()
	if err != nil {
		return nil, err
	}
	connectTO, pingTO := opt.ConnectTimeout, opt.PingTimeout
	if connectTO == 0 {
		connectTO = defaultConnectTimeout
	}
	if pingTO == 0 {
		pingTO = defaultPingTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, connectTO)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(cctx, pc)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, pingTO)
	defer pcancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}
