// Package redis holds the read-through cache for public content responses.
// The cache is optional: when REDIS_ADDR is unset the API serves straight
// from Postgres.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/clinicsite-backend/internal/platform/envutil"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type ContentCache interface {
	// Get unmarshals the cached value for key into dst. The bool reports
	// whether the key was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Invalidate drops every key under the given list prefix. Admin writes
	// call this so the public API never serves a stale ordering.
	Invalidate(ctx context.Context, prefix string) error
	Close() error
}

type contentCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewContentCache(log *logger.Logger) (ContentCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSec := envutil.Int("CONTENT_CACHE_TTL_SECONDS", 300)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &contentCache{
		log: log.With("service", "ContentCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

func (cc *contentCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if cc == nil || cc.rdb == nil {
		return false, fmt.Errorf("content cache not initialized")
	}
	raw, err := cc.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt entry is treated as a miss so the caller refreshes it.
		cc.log.Warn("Dropping undecodable cache entry", "key", key, "error", err.Error())
		_ = cc.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (cc *contentCache) Set(ctx context.Context, key string, value any) error {
	if cc == nil || cc.rdb == nil {
		return fmt.Errorf("content cache not initialized")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cc.rdb.Set(ctx, key, raw, cc.ttl).Err()
}

func (cc *contentCache) Invalidate(ctx context.Context, prefix string) error {
	if cc == nil || cc.rdb == nil {
		return fmt.Errorf("content cache not initialized")
	}
	var cursor uint64
	for {
		keys, next, err := cc.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := cc.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (cc *contentCache) Close() error {
	if cc == nil || cc.rdb == nil {
		return nil
	}
	return cc.rdb.Close()
}
