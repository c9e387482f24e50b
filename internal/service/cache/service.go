package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/pkg/errors"
)

// CacheService remembers resolved profile URLs so a repeat request for the
// same (game, platform, user) triple can navigate straight to the profile
// and skip the search fallback. It is optional: a nil *CacheService is a
// valid no-op cache.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
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

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{client: client, logger: logger}, nil
}

func resolvedURLKey(game, platform, user string) string {
	return fmt.Sprintf("resolver:url:%s:%s:%s",
		strings.ToLower(game), strings.ToLower(platform), strings.ToLower(user))
}

// GetResolvedURL returns the cached profile URL for the triple, or "" on
// miss. Redis errors degrade to a miss.
func (c *CacheService) GetResolvedURL(ctx context.Context, game, platform, user string) string {
	if c == nil {
		return ""
	}
	key := resolvedURLKey(game, platform, user)
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return value
}

// SetResolvedURL stores the final profile URL after a successful request.
func (c *CacheService) SetResolvedURL(ctx context.Context, game, platform, user, url string) {
	if c == nil || url == "" {
		return
	}
	key := resolvedURLKey(game, platform, user)
	if err := c.client.Set(ctx, key, url, constants.CacheTTL.ResolvedURL).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheService) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
