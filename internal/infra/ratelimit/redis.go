package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 固定ウィンドウのカウンタ（INCR + EXPIRE）
type RedisStore struct {
	client *redis.Client
}

// DI
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// keyの回数を1増やして、今の回数と残り時間を返す
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count := incr.Val()
	remaining := ttl.Val()

	//最初の1回、またはTTLが付いていないキー
	if count == 1 || remaining < 0 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		remaining = window
	}

	return count, remaining, nil
}

// REDIS_URLから接続を作る
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
