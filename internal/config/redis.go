package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient is the shared Redis handle, used for comment-count caching.
var RedisClient *redis.Client

func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     C.RedisAddr,
		Password: C.RedisPassword,
		DB:       C.RedisDB,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("Connected to Redis")
}
