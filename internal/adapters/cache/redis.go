package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"zone37/internal/domain"
)

const keyPrefix = "zone37:game:"

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = 5 * time.Minute

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisGameCache struct {
	rdb    redisClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewGameCache returns a Redis-backed GameCache. A nil client yields a no-op cache, so the
// service keeps working when Redis is unavailable at startup.
func NewGameCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) domain.GameCache {
	if rdb == nil {
		return NoopGameCache{}
	}
	return newRedisGameCache(rdb, ttl, logger)
}

func newRedisGameCache(rdb redisClient, ttl time.Duration, logger *slog.Logger) *redisGameCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisGameCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns a cached game by ID or slug. Errors are logged and reported as a miss.
func (c *redisGameCache) Get(ctx context.Context, key string) (*domain.Game, bool) {
	bs, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "game cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	var g domain.Game
	if err := json.Unmarshal(bs, &g); err != nil {
		c.logger.WarnContext(ctx, "game cache entry corrupt", "key", key, "err", err)
		return nil, false
	}
	return &g, true
}

// Set stores the game under both its ID and its slug.
func (c *redisGameCache) Set(ctx context.Context, g *domain.Game) {
	bs, err := json.Marshal(g)
	if err != nil {
		c.logger.WarnContext(ctx, "game cache encode failed", "game_id", g.ID, "err", err)
		return
	}
	for _, key := range keysFor(g) {
		if err := c.rdb.Set(ctx, key, bs, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "game cache set failed", "key", key, "err", err)
		}
	}
}

func (c *redisGameCache) Invalidate(ctx context.Context, g *domain.Game) {
	if err := c.rdb.Del(ctx, keysFor(g)...).Err(); err != nil {
		c.logger.WarnContext(ctx, "game cache invalidate failed", "game_id", g.ID, "err", err)
	}
}

func keysFor(g *domain.Game) []string {
	keys := []string{keyPrefix + g.ID}
	if g.Slug != "" {
		keys = append(keys, keyPrefix+g.Slug)
	}
	return keys
}

// NoopGameCache never stores anything.
type NoopGameCache struct{}

func (NoopGameCache) Get(context.Context, string) (*domain.Game, bool) { return nil, false }
func (NoopGameCache) Set(context.Context, *domain.Game)                {}
func (NoopGameCache) Invalidate(context.Context, *domain.Game)         {}
