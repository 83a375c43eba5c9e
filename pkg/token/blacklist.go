package token

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// blacklistPrefix 是登出令牌在 Redis 中的 key 前缀，写入和读取必须一致。
const blacklistPrefix = "token_blacklist:"

// Blacklist 记录已经主动登出的访问令牌。
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist 用带过期时间的 key 实现 Blacklist，令牌自然过期后 key 也随之消失。
type RedisBlacklist struct {
	rdb *redis.Client
}

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, blacklistPrefix+token, 1, ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
