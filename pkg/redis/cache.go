package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching utilities
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// DeleteByTicker removes every cached result for a ticker.
// 워치리스트 스윕 후 무효화에 사용
func (c *Cache) DeleteByTicker(ctx context.Context, ticker string) error {
	if !c.client.Enabled() {
		return nil
	}

	pattern := fmt.Sprintf("%s:cache:*:%s", c.prefix, ticker)
	rdb := c.client.Redis()

	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Count returns the number of cached entries under this prefix.
func (c *Cache) Count(ctx context.Context) (int, error) {
	if !c.client.Enabled() {
		return 0, nil
	}

	pattern := fmt.Sprintf("%s:cache:*", c.prefix)
	iter := c.client.Redis().Scan(ctx, 0, pattern, 100).Iterator()

	count := 0
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}

// Clear removes every cached entry under this prefix, returning the count.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	if !c.client.Enabled() {
		return 0, nil
	}

	pattern := fmt.Sprintf("%s:cache:*", c.prefix)
	rdb := c.client.Redis()

	deleted := 0
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

// GetOrSet retrieves from cache or calls fn to populate it
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	// Try cache first
	found, err := c.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Cache miss - call function
	value, err := fn()
	if err != nil {
		return err
	}

	// Store in cache
	if err := c.Set(ctx, key, value, ttl); err != nil {
		// Log but don't fail
		return nil
	}

	// Unmarshal into dest
	data, _ := json.Marshal(value)
	return json.Unmarshal(data, dest)
}

// Predefined TTLs
const (
	TTLShort  = 1 * time.Minute  // 헬스/상태
	TTLMedium = 15 * time.Minute // 분석 결과
	TTLLong   = 1 * time.Hour    // 섹터 비교
	TTLDaily  = 24 * time.Hour   // 품질 리포트
)

// Common cache key generators.
// Ticker goes last so DeleteByTicker can match with a single pattern.
func VerdictKey(ticker string) string {
	return fmt.Sprintf("verdict:%s", ticker)
}

func TrendKey(ticker string) string {
	return fmt.Sprintf("trend:%s", ticker)
}

func SectorKey(ticker string) string {
	return fmt.Sprintf("sector:%s", ticker)
}

func QualityKey(ticker string) string {
	return fmt.Sprintf("quality:%s", ticker)
}
