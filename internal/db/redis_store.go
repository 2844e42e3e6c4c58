package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps every collection under "<prefix>:<key>" without expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func OpenRedis(options RedisOptions) (*RedisStore, error) {
	addr := options.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: options.Password,
		DB:       options.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewRedisStore(client, options.Prefix), nil
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "stashlog"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (store *RedisStore) namespaced(key string) string {
	return store.prefix + ":" + key
}

func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(ctx, store.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (store *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return store.client.Set(ctx, store.namespaced(key), value, 0).Err()
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
