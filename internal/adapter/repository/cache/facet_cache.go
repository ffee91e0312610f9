// Package cache keeps facet option lists in Redis in front of the content
// store. Listing and count reads are never cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
	"github.com/goodmenmotors/catalog-service/internal/config"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

const keyPrefix = "catalog:facet:"

// Store is the read contract the cache decorates.
type Store interface {
	Find(ctx context.Context, q query.Query) ([]domain.Listing, error)
	Count(ctx context.Context, where []query.Clause) (int64, error)
	Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Listing, error)
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Failed to connect to Redis", zap.String("address", cfg.Address), zap.Error(err))
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

// FacetCache is a read-through cache for Distinct. Redis errors are logged
// and the read goes to the underlying store.
type FacetCache struct {
	Store
	client redis.Cmdable
	ttl    time.Duration
	logger *logger.Logger
}

func NewFacetCache(next Store, client redis.Cmdable, ttl time.Duration, log *logger.Logger) *FacetCache {
	return &FacetCache{
		Store:  next,
		client: client,
		ttl:    ttl,
		logger: log.Named("FacetCache"),
	}
}

func facetKey(field query.Field, where []query.Clause) string {
	return keyPrefix + string(field) + ":" + query.Fingerprint(where)
}

func (c *FacetCache) Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error) {
	key := facetKey(field, where)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var values []string
		if jerr := json.Unmarshal(raw, &values); jerr == nil {
			return values, nil
		}
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Redis Get failed, reading through", zap.String("key", key), zap.Error(err))
	}

	values, err := c.Store.Distinct(ctx, field, where)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(values); jerr == nil {
		if serr := c.client.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.logger.Warn("Redis Set failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return values, nil
}
