package services

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache là kho cache JSON dùng cho danh mục khách sạn và bộ lọc gần nhất
type Cache interface {
	// Get trả found=false khi không có key
	Get(ctx context.Context, key string, target interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache implement Cache trên go-redis
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Hàm lấy data từ Redis
func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Parse JSON thành object
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// Hàm lưu dữ liệu vào Redis
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Hàm xóa cache Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// MemoryCache là cache trong process, dùng khi không có Redis
type MemoryCache struct {
	mu    sync.Mutex
	now   func() time.Time
	items map[string]memoryItem
}

type memoryItem struct {
	data    []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now, items: map[string]memoryItem{}}
}

func (c *MemoryCache) Get(_ context.Context, key string, target interface{}) (bool, error) {
	c.mu.Lock()
	item, ok := c.items[key]
	if ok && !item.expires.IsZero() && !c.now().Before(item.expires) {
		delete(c.items, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(item.data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
	return nil
}
