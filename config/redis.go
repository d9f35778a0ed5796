package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hàm kết nối đến Redis
func ConnectRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	// Khởi tạo client Redis với các tùy chọn
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Kiểm tra kết nối
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	log.Println("Kết nối Redis thành công:", res)
	return rdb, nil
}
