package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage lưu session vào Redis, khoá dạng raynott:session:<profile>:<key>
type RedisStorage struct {
	rdb     *redis.Client
	profile string
}

func NewRedisStorage(rdb *redis.Client, profile string) *RedisStorage {
	if profile == "" {
		profile = "default"
	}
	return &RedisStorage{rdb: rdb, profile: profile}
}

func (r *RedisStorage) key(k string) string {
	return fmt.Sprintf("raynott:session:%s:%s", r.profile, k)
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set không đặt TTL: session chỉ bị xoá khi logout hoặc token hết hạn
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}
