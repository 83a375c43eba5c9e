package database

import (
	"context"
	"time"

	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client

// InitRedis 连接 Redis 并做一次 Ping，连不上直接退出。
// 目前只用来保存登出令牌黑名单。
func InitRedis(addr, password string, db int) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Info("Redis client connected successfully")
}

// Close 在服务退出时释放 MySQL 连接池和 Redis 客户端，返回遇到的第一个错误。
func Close() error {
	var firstErr error
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			firstErr = sqlDB.Close()
		} else {
			firstErr = err
		}
	}
	if RDB != nil {
		if err := RDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
