package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisKeyPrefix namespaces the forecast windows stored in Redis.
const RedisKeyPrefix = "weatherbot:forecast:"

// RedisCache is Cache backed by a shared Redis instance, so several bot
// processes reuse one another's forecasts. Redis being unavailable degrades
// to calling the upstream provider directly.
type RedisCache struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func NewRedisCache(next Provider, client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCache {
	return &RedisCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Forecast(ctx context.Context, lat, lon float64) (Window, error) {
	if c.ttl <= 0 {
		return c.next.Forecast(ctx, lat, lon)
	}

	key := RedisKeyPrefix + cacheKey(lat, lon)
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var w Window
		if err := json.Unmarshal(data, &w); err == nil {
			return w, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cached forecast")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
	}

	w, err := c.next.Forecast(ctx, lat, lon)
	if err != nil {
		return Window{}, err
	}

	if data, err := json.Marshal(w); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
		}
	}
	return w, nil
}
