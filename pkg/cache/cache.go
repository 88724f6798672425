package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shanikumar001/project-gallery-backend/config"
)

// InitRedis 建立 Redis 连接并 ping 校验
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
