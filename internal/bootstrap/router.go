package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/constructtrack/constructtrack-backend/internal/api/http"
	"github.com/constructtrack/constructtrack-backend/internal/api/http/middleware"
	"github.com/constructtrack/constructtrack-backend/internal/auth"
	wthttp "github.com/constructtrack/constructtrack-backend/internal/worktracking/http"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Environment string
	CORSOrigins []string

	DB    *pgxpool.Pool
	Redis *redis.Client

	Workspace *service.WorkspaceService
	Generator wthttp.Generator
	Verifier  auth.TokenVerifier
	Users     auth.UserEnsurer
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if dep.Environment != "production" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-User-Email", "X-User-Name", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthOpts := []httpapi.HealthOption{httpapi.WithBackend(dep.Workspace.Backend())}
	if dep.DB != nil {
		healthOpts = append(healthOpts, httpapi.WithDB(dep.DB))
	}
	if dep.Redis != nil {
		healthOpts = append(healthOpts, httpapi.WithRedis(dep.Redis))
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, healthOpts...).RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(auth.Gate(dep.Verifier, dep.Users))
	api.GET("/me", auth.Session)

	wthttp.NewHandler(dep.Workspace, dep.Generator).Register(api)

	return r
}
