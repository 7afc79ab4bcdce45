package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/recipebox/internal/common"
)

// RedisBackend keeps the snapshot under <prefix>:user and
// <prefix>:access_token.
type RedisBackend struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisBackend(rdb redis.UniversalClient, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

// OpenRedis connects to addr and checks the connection.
func OpenRedis(ctx context.Context, addr, password string, db int, prefix string) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisBackend(rdb, prefix), nil
}

func (b *RedisBackend) key(name string) string {
	return b.prefix + ":" + name
}

func (b *RedisBackend) Load(ctx context.Context) (*Snapshot, error) {
	vals, err := b.rdb.MGet(ctx, b.key(common.SessionUserKey), b.key(common.SessionTokenKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	raw := make([][]byte, len(vals))
	present := make([]bool, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			raw[i], present[i] = []byte(s), true
		}
	}
	return decodeSnapshot(raw[0], raw[1], present[0], present[1])
}

// Save writes both keys in a MULTI/EXEC block.
func (b *RedisBackend) Save(ctx context.Context, s Snapshot) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	_, err = b.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, b.key(common.SessionUserKey), user, 0)
		p.Set(ctx, b.key(common.SessionTokenKey), s.Token, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	if err := b.rdb.Del(ctx, b.key(common.SessionUserKey), b.key(common.SessionTokenKey)).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
