package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/bird2md-go/pkg/errors"
)

// Cache stores finished translations keyed by (target language, cleaned
// fragment). Identical fragments inside one document translate once; the
// Redis variant additionally reuses translations across invocations.
type Cache interface {
	Get(ctx context.Context, targetLang, text string) (string, bool)
	Set(ctx context.Context, targetLang, text, translated string)
}

func cacheKey(targetLang, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("bird2md:tr:%s:%s", targetLang, hex.EncodeToString(sum[:]))
}

// MemoryCache is the default per-process cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, targetLang, text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(targetLang, text)]
	return v, ok
}

func (c *MemoryCache) Set(_ context.Context, targetLang, text, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(targetLang, text)] = translated
}

// RedisCache persists translations with a TTL. Every Redis failure degrades
// to a cache miss; the cache must never block document generation.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisCache(cfg RedisConfig, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("translation cache connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.Duration("ttl", cfg.TTL),
	)

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, targetLang, text string) (string, bool) {
	key := cacheKey(targetLang, text)
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("translation cache get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, targetLang, text, translated string) {
	key := cacheKey(targetLang, text)
	if err := c.client.Set(ctx, key, translated, c.ttl).Err(); err != nil {
		c.logger.Warn("translation cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
