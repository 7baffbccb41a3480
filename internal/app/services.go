package app

import (
	"os"

	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/services"
)

type Services struct {
	Clock       services.Clock
	SetCache    services.SetCache
	Auth        services.AuthService
	Selector    services.SelectorService
	Progression services.ProgressionService
	Badges      services.BadgeService
	Submission  services.SubmissionService
	Reports     services.ReportService
	Assignments services.AssignmentService
	Generation  services.GenerationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	clock := services.NewClock(cfg.Timezone)

	cache := services.NewNoopSetCache()
	if cfg.RedisAddr != "" {
		redisCache, err := services.NewRedisSetCache(log, cfg.RedisAddr, cfg.SetCacheTTL)
		if err != nil {
			log.Warn("redis unavailable, running without set cache", "error", err)
		} else {
			cache = redisCache
		}
	}

	progression := services.NewProgressionService(db, log, clock, r.Profile, r.Record)
	badges := services.NewBadgeService(db, log, clock, r.Badge, r.Record, r.Response)

	var generation services.GenerationService
	if os.Getenv("GENAI_API_KEY") != "" {
		client, err := services.NewTextGenClient(log)
		if err != nil {
			return Services{}, err
		}
		generation = services.NewGenerationService(db, log, client, r.Profile, r.DailySet, r.Question)
	} else {
		log.Warn("GENAI_API_KEY not set, content generation disabled")
		generation = services.NewGenerationService(db, log, nil, r.Profile, r.DailySet, r.Question)
	}

	return Services{
		Clock:       clock,
		SetCache:    cache,
		Auth:        services.NewAuthService(db, log, clock, r.Profile, r.AuthToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Selector:    services.NewSelectorService(db, log, clock, cache, r.DailySet, r.Question, r.Record),
		Progression: progression,
		Badges:      badges,
		Submission:  services.NewSubmissionService(db, log, clock, r.DailySet, r.Record, r.Response, progression, badges),
		Reports:     services.NewReportService(db, log, clock, r.Profile, r.Class, r.Record, r.Response, r.Badge),
		Assignments: services.NewAssignmentService(db, log, clock, r.Class, r.DailySet, r.Assignment),
		Generation:  generation,
	}, nil
}
