package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/haneulkids/daily-learning-backend/internal/handlers"
	"github.com/haneulkids/daily-learning-backend/internal/middleware"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type RouterConfig struct {
	ServiceName     string
	AllowedOrigins  []string
	AuthMiddleware  *middleware.AuthMiddleware
	Healthcheck     *handlers.HealthcheckHandler
	Version         *handlers.VersionHandler
	AuthHandler     *handlers.AuthHandler
	DailySetHandler *handlers.DailySetHandler
	ReportHandler   *handlers.ReportHandler
	CronHandler     *handlers.CronHandler
	GenerateHandler *handlers.GenerateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Cron-Secret"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.Healthcheck.Healthcheck)

	api := router.Group("/api")
	{
		api.GET("/version", cfg.Version.Version)
		api.POST("/auth/signup", cfg.AuthHandler.Signup)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)

		// The set lookup works anonymously; a token adds the caller's
		// learning record to the response.
		api.GET("/daily-set", cfg.AuthMiddleware.OptionalAuth(), cfg.DailySetHandler.GetDailySet)

		// The scheduler authenticates with X-Cron-Secret instead of a
		// bearer token, so the gate lives in the handler.
		api.POST("/cron/daily-assign", cfg.AuthMiddleware.OptionalAuth(), cfg.CronHandler.AssignDailySets)
	}

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.POST("/daily-set/submit", cfg.DailySetHandler.Submit)
		protected.GET("/reports", cfg.ReportHandler.GetReport)
		protected.POST("/generate",
			cfg.AuthMiddleware.RequireRole(types.RoleTeacher, types.RoleAdmin),
			cfg.GenerateHandler.GenerateSet,
		)
	}

	return router
}

// SplitOrigins parses the comma-separated ALLOWED_ORIGINS value.
func SplitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
