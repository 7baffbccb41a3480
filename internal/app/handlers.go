package app

import (
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/handlers"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Version     *handlers.VersionHandler
	Auth        *handlers.AuthHandler
	DailySet    *handlers.DailySetHandler
	Report      *handlers.ReportHandler
	Cron        *handlers.CronHandler
	Generate    *handlers.GenerateHandler
}

func wireHandlers(db *gorm.DB, cfg Config, s Services) Handlers {
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(db),
		Version:     handlers.NewVersionHandler(),
		Auth:        handlers.NewAuthHandler(s.Auth),
		DailySet:    handlers.NewDailySetHandler(s.Selector, s.Submission),
		Report:      handlers.NewReportHandler(s.Reports),
		Cron:        handlers.NewCronHandler(s.Assignments, cfg.CronSecret),
		Generate:    handlers.NewGenerateHandler(s.Generation),
	}
}
