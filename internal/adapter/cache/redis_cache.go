package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"cv-renderer/internal/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cvrender:template:"

// RedisCache shares resolved template definitions between instances.
// Read and write failures degrade to cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.TemplateDefinition, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("template cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var def model.TemplateDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		c.logger.Warn("dropping corrupt template cache entry", "key", key, "error", err)
		_ = c.client.Del(ctx, keyPrefix+key).Err()
		return nil, false
	}
	return &def, true
}

func (c *RedisCache) Set(ctx context.Context, key string, def *model.TemplateDefinition) {
	if def == nil {
		return
	}
	raw, err := json.Marshal(def)
	if err != nil {
		c.logger.Warn("template cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("template cache write failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, keyPrefix+key).Err()
}
