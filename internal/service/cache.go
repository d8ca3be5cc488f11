// Пакет service — бизнес-логика сайта посольства.
// Кэш ответов API новостей: in-memory LRU с TTL (hashicorp/golang-lru/v2/expirable)
// и опциональный общий уровень в Redis для нескольких экземпляров.
package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша (лейбл tier: memory, redis).
var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ew_cache_hits_total",
		Help: "Общее количество попаданий в кэш ответов API новостей.",
	}, []string{"tier"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ew_cache_misses_total",
		Help: "Общее количество промахов кэша ответов API новостей.",
	}, []string{"tier"})
)

// Cache — хранилище сериализованных ответов с временем жизни.
type Cache interface {
	// Get возвращает значение и оставшееся время жизни.
	Get(ctx context.Context, key string) (value []byte, ttl time.Duration, ok bool)
	// Set сохраняет значение на ttl. Ошибки хранилища не возвращаются.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// memoryEntry — запись in-memory кэша со своим сроком истечения.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache — LRU-кэш с TTL.
// Каждый экземпляр сайта имеет собственный in-memory кэш.
type MemoryCache struct {
	cache *expirable.LRU[string, memoryEntry]
	now   func() time.Time
}

// NewMemoryCache создаёт LRU-кэш.
// maxSize — максимальное количество записей.
// maxTTL — верхняя граница жизни записи; у каждой записи может быть свой TTL не больше maxTTL.
func NewMemoryCache(maxSize int, maxTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: expirable.NewLRU[string, memoryEntry](maxSize, nil, maxTTL),
		now:   time.Now,
	}
}

// Get возвращает значение из кэша и оставшийся TTL.
// Обновляет Prometheus-метрики hit/miss.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, time.Duration, bool) {
	entry, ok := c.cache.Get(key)
	if ok {
		remaining := entry.expiresAt.Sub(c.now())
		if remaining > 0 {
			cacheHitsTotal.WithLabelValues("memory").Inc()
			return entry.value, remaining, true
		}
		c.cache.Remove(key)
	}
	cacheMissesTotal.WithLabelValues("memory").Inc()
	return nil, 0, false
}

// Set добавляет или обновляет запись.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.cache.Add(key, memoryEntry{value: value, expiresAt: c.now().Add(ttl)})
}

// Len возвращает количество записей в кэше.
func (c *MemoryCache) Len() int {
	return c.cache.Len()
}

// TieredCache — последовательность уровней кэша (memory → redis).
// Попадание в нижний уровень заполняет верхние с оставшимся TTL.
type TieredCache struct {
	tiers []Cache
}

// NewTieredCache создаёт многоуровневый кэш. nil-уровни пропускаются.
func NewTieredCache(tiers ...Cache) *TieredCache {
	t := &TieredCache{}
	for _, c := range tiers {
		if c != nil {
			t.tiers = append(t.tiers, c)
		}
	}
	return t
}

// Get ищет ключ по уровням сверху вниз.
func (t *TieredCache) Get(ctx context.Context, key string) ([]byte, time.Duration, bool) {
	for i, c := range t.tiers {
		value, ttl, ok := c.Get(ctx, key)
		if !ok {
			continue
		}
		for _, upper := range t.tiers[:i] {
			upper.Set(ctx, key, value, ttl)
		}
		return value, ttl, true
	}
	return nil, 0, false
}

// Set записывает значение во все уровни.
func (t *TieredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	for _, c := range t.tiers {
		c.Set(ctx, key, value, ttl)
	}
}
