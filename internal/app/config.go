package app

import (
	"time"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/utils"
)

type Config struct {
	Port            string
	AllowedOrigins  string
	Timezone        string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CronSecret      string
	RedisAddr       string
	SetCacheTTL     time.Duration
	Environment     string
}

func LoadConfig(log *logger.Logger) Config {
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400*14, log)
	setCacheTTLSeconds := utils.GetEnvAsInt("SET_CACHE_TTL", 3600, log)
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		AllowedOrigins:  utils.GetEnv("ALLOWED_ORIGINS", "", log),
		Timezone:        utils.GetEnv("APP_TIMEZONE", "Asia/Seoul", log),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		CronSecret:      utils.GetEnv("CRON_SECRET", "", log),
		RedisAddr:       utils.GetEnv("REDIS_ADDR", "", log),
		SetCacheTTL:     time.Duration(setCacheTTLSeconds) * time.Second,
		Environment:     utils.GetEnv("APP_ENV", "development", log),
	}
}
