package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps each session as a hash with a sliding expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(ctx context.Context, opts RedisOptions, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Bag(id string) Bag {
	return &redisBag{store: s, key: keyPrefix + id}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisBag struct {
	store *RedisStore
	key   string
}

func (b *redisBag) Has(ctx context.Context, key string) (bool, error) {
	pipe := b.store.client.TxPipeline()
	exists := pipe.HExists(ctx, b.key, key)
	pipe.Expire(ctx, b.key, b.store.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	return exists.Val(), nil
}

func (b *redisBag) Set(ctx context.Context, key string) error {
	pipe := b.store.client.TxPipeline()
	pipe.HSet(ctx, b.key, key, 1)
	pipe.Expire(ctx, b.key, b.store.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
