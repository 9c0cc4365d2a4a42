package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/utils"
)

// Redis key 前缀
const (
	receiptPrefix = "receipt"
	recentKey     = "receipt:recent"
	recentLimit   = 100
)

const recordKindReceipt uint32 = 1

var ErrNotFound = errors.New("receipt not found")

// RedisStore 管理 Redis 中的交易回执
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// getKey 构造 Redis key，按交易类型区分
func getKey(kind uint8, sig types.Signature) string {
	return fmt.Sprintf("%s:%s:%s", receiptPrefix, consts.TxKindName(int(kind)), sig)
}

// Save 写入回执，并维护最近回执列表（最多 recentLimit 条）
func (s *RedisStore) Save(ctx context.Context, r *Receipt) error {
	data, err := utils.EncodeRecord(recordKindReceipt, r)
	if err != nil {
		return err
	}
	key := getKey(r.Kind, r.Signature)

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, s.ttl)
		pipe.LPush(ctx, recentKey, key)
		pipe.LTrim(ctx, recentKey, 0, recentLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save receipt %s: %w", key, err)
	}
	return nil
}

// Get 按类型与签名读取回执
func (s *RedisStore) Get(ctx context.Context, kind uint8, sig types.Signature) (*Receipt, error) {
	return s.getByKey(ctx, getKey(kind, sig))
}

func (s *RedisStore) getByKey(ctx context.Context, key string) (*Receipt, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	case err != nil:
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var r Receipt
	if _, err := utils.DecodeRecord(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Recent 按写入时间倒序返回最多 n 条回执，已过期的条目会被跳过
func (s *RedisStore) Recent(ctx context.Context, n int) ([]*Receipt, error) {
	if n <= 0 || n > recentLimit {
		n = recentLimit
	}
	keys, err := s.rdb.LRange(ctx, recentKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange error: %w", err)
	}

	out := make([]*Receipt, 0, len(keys))
	for _, key := range keys {
		r, err := s.getByKey(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
