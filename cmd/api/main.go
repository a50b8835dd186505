package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/constructtrack/constructtrack-backend/config"
	"github.com/constructtrack/constructtrack-backend/internal/auth"
	"github.com/constructtrack/constructtrack-backend/internal/bootstrap"
	"github.com/constructtrack/constructtrack-backend/internal/generation"
	"github.com/constructtrack/constructtrack-backend/internal/storage/postgres"
	"github.com/constructtrack/constructtrack-backend/internal/users"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/service"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)
	service.SetLogLevel(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		pool  *pgxpool.Pool
		sqlDB *sql.DB
	)
	if cfg.Database.Enabled() {
		pool, err = bootstrap.OpenPool(ctx, bootstrap.PoolOptions{
			DSN:     postgres.DSN(cfg.Database),
			AppName: "constructtrack-api",
		})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()

		if cfg.Storage.Backend == config.BackendPostgres {
			sqlDB, err = postgres.NewConnection(ctx, cfg.Database)
			if err != nil {
				log.Fatalf("db: %v", err)
			}
			defer sqlDB.Close()
		}
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	snapshots, err := bootstrap.NewSnapshotStore(ctx, cfg, bootstrap.StoreDeps{SQL: sqlDB, Redis: rdb})
	if err != nil {
		log.Fatalf("state backend: %v", err)
	}

	var opts []service.Option
	if cfg.Storage.SeedDemo {
		opts = append(opts, service.WithSeed(store.DemoProjects))
	}
	workspace := service.NewWorkspaceService(snapshots, opts...)

	autosave, err := service.NewAutosaver(workspace, cfg.Storage.AutosaveSchedule)
	if err != nil {
		log.Fatalf("autosave schedule %q: %v", cfg.Storage.AutosaveSchedule, err)
	}
	autosave.Start()

	deps := bootstrap.RouterDeps{
		ServiceName: "constructtrack-backend",
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		CORSOrigins: cfg.Server.CORSOrigins,
		DB:          pool,
		Redis:       rdb,
		Workspace:   workspace,
		Generator: generation.NewClient(generation.Options{
			BaseURL: cfg.Generator.URL,
			APIKey:  cfg.Generator.APIKey,
			RPS:     cfg.Generator.RPS,
			Timeout: cfg.Generator.Timeout,
		}),
	}
	if pool != nil {
		userRepo := users.NewRepo(pool)
		if err := userRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("users: %v", err)
		}
		deps.Users = userRepo
	}
	if cfg.Firebase.Enabled() {
		fb, err := auth.InitializeFirebase(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		deps.Verifier = fb
	} else {
		log.Println("[auth] FIREBASE_CREDENTIALS_PATH not set, trusting X-User-Id")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s backend=%s env=%s", cfg.Server.Port, snapshots.Name(), cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	autosave.Stop()
}
