package app

import (
	"github.com/gin-gonic/gin"

	"github.com/haneulkids/daily-learning-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:     "daily-learning",
		AllowedOrigins:  server.SplitOrigins(cfg.AllowedOrigins),
		AuthMiddleware:  m.Auth,
		Healthcheck:     h.Healthcheck,
		Version:         h.Version,
		AuthHandler:     h.Auth,
		DailySetHandler: h.DailySet,
		ReportHandler:   h.Report,
		CronHandler:     h.Cron,
		GenerateHandler: h.Generate,
	})
}
