// cache_redis.go — общий уровень кэша в Redis (go-redis/v9).
// Ошибки Redis логируются и считаются промахом: страницы продолжают
// отдаваться через in-memory кэш и API.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix — пространство ключей сайта в Redis.
const redisKeyPrefix = "embassy:news:"

// RedisCache — уровень кэша в Redis.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache создаёт клиент Redis.
// addr — host:port, db — номер базы (0-15).
func NewRedisCache(addr, password string, db int, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisCacheFromClient(client, logger)
}

// NewRedisCacheFromClient оборачивает существующий клиент Redis.
func NewRedisCacheFromClient(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger.With(slog.String("component", "redis_cache")),
	}
}

// Get читает значение и оставшийся TTL одним pipeline-запросом.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, time.Duration, bool) {
	fullKey := redisKeyPrefix + key

	pipe := c.client.Pipeline()
	getCmd := pipe.Get(ctx, fullKey)
	ttlCmd := pipe.PTTL(ctx, fullKey)
	_, err := pipe.Exec(ctx)

	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Ошибка чтения из Redis",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		cacheMissesTotal.WithLabelValues("redis").Inc()
		return nil, 0, false
	}

	value, err := getCmd.Bytes()
	if err != nil {
		cacheMissesTotal.WithLabelValues("redis").Inc()
		return nil, 0, false
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		// Ключ без срока жизни или истёк между командами
		cacheMissesTotal.WithLabelValues("redis").Inc()
		return nil, 0, false
	}

	cacheHitsTotal.WithLabelValues("redis").Inc()
	return value, ttl, true
}

// Set сохраняет значение с TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn("Ошибка записи в Redis",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// CheckReady проверяет доступность Redis (PING).
// Реализует handlers.ReadinessChecker. Redis — необязательный уровень,
// поэтому недоступность даёт "degraded".
func (c *RedisCache) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return "degraded", fmt.Sprintf("Redis недоступен: %v", err)
	}
	return "ok", ""
}

// Close закрывает соединения с Redis.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
