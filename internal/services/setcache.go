package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
)

// SetCache memoizes the resolved daily-set id per (grade, semester, day).
// Selection is deterministic, so a short TTL only has to cover publication
// changes.
type SetCache interface {
	Get(ctx context.Context, grade, semester, day int) (uuid.UUID, bool)
	Put(ctx context.Context, grade, semester, day int, setID uuid.UUID)
}

type noopSetCache struct{}

// NewNoopSetCache is used when no redis address is configured.
func NewNoopSetCache() SetCache { return noopSetCache{} }

func (noopSetCache) Get(context.Context, int, int, int) (uuid.UUID, bool) {
	return uuid.Nil, false
}
func (noopSetCache) Put(context.Context, int, int, int, uuid.UUID) {}

type redisSetCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSetCache connects to redis and verifies the connection. Cache
// failures after construction are soft: a miss is returned and the caller
// falls through to the database.
func NewRedisSetCache(log *logger.Logger, addr string, ttl time.Duration) (SetCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisSetCache{
		log: log.With("service", "RedisSetCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(grade, semester, day int) string {
	return fmt.Sprintf("dailyset:%d:%d:%d", grade, semester, day)
}

func (c *redisSetCache) Get(ctx context.Context, grade, semester, day int) (uuid.UUID, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(grade, semester, day)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("cache get failed", "error", err)
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *redisSetCache) Put(ctx context.Context, grade, semester, day int, setID uuid.UUID) {
	if err := c.rdb.Set(ctx, cacheKey(grade, semester, day), setID.String(), c.ttl).Err(); err != nil {
		c.log.Debug("cache put failed", "error", err)
	}
}
