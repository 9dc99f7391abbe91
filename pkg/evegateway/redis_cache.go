package evegateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-timers/pkg/database"

	"github.com/redis/go-redis/v9"
)

const redisCachePrefix = "esi:cache:"

// RedisCacheManager implements CacheManager using Redis for persistence,
// so cached ESI responses survive restarts and are shared between jobs.
type RedisCacheManager struct {
	redis *database.Redis
	ctx   context.Context
}

func NewRedisCacheManager(redis *database.Redis) *RedisCacheManager {
	return &RedisCacheManager{
		redis: redis,
		ctx:   context.Background(),
	}
}

func (r *RedisCacheManager) Get(key string) ([]byte, bool, error) {
	entry, found, err := r.load(key)
	if err != nil || !found {
		return nil, false, err
	}

	if entry.Expires.Before(time.Now()) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (r *RedisCacheManager) GetForNotModified(key string) ([]byte, bool, error) {
	entry, found, err := r.load(key)
	if err != nil || !found {
		return nil, false, err
	}
	return entry.Data, true, nil
}

func (r *RedisCacheManager) Set(key string, data []byte, headers http.Header) error {
	entry := entryFromHeaders(data, headers)

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	// Keep expired entries around for a while so conditional requests can
	// still be answered from the stored ETag.
	ttl := time.Until(entry.Expires) + 24*time.Hour
	return r.redis.Set(r.ctx, redisCachePrefix+key, entryJSON, ttl)
}

func (r *RedisCacheManager) SetConditionalHeaders(req *http.Request, key string) error {
	entry, found, err := r.load(key)
	if err != nil || !found {
		return err
	}

	if entry.ETag != "" {
		req.Header.Set("If-None-Match", entry.ETag)
	}
	return nil
}

func (r *RedisCacheManager) load(key string) (CacheEntry, bool, error) {
	entryJSON, err := r.redis.Get(r.ctx, redisCachePrefix+key)
	if err != nil {
		if err == redis.Nil {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}

	var entry CacheEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return CacheEntry{}, false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return entry, true, nil
}
