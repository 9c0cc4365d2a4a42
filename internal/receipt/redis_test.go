package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/types"
)

// 需要本地 Redis（127.0.0.1:6379），不可用时跳过
func newTestRedis(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestGetKey(t *testing.T) {
	sig := types.Signature{1}
	assert.Equal(t, "receipt:airdrop:"+sig.String(), getKey(consts.TxKindAirdrop, sig))
	assert.Equal(t, "receipt:unknown:"+sig.String(), getKey(99, sig))
}

func TestRedisStore_SaveGet_RealRedis(t *testing.T) {
	rdb := newTestRedis(t)
	store := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()

	r := &Receipt{
		Signature: types.Signature{byte(time.Now().UnixNano())},
		Kind:      consts.TxKindTransfer,
		From:      types.Pubkey{1},
		To:        types.Pubkey{2},
		Lamports:  10_000_000,
		Fee:       5000,
		Cluster:   "devnet",
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, store.Save(ctx, r))

	got, err := store.Get(ctx, r.Kind, r.Signature)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	recent, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, r.Signature, recent[0].Signature)

	_, err = store.Get(ctx, consts.TxKindSweep, types.Signature{0xFE, 0xFE})
	assert.ErrorIs(t, err, ErrNotFound)
}
