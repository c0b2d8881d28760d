package ident

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zero-day-ai/obsgraph"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// Namespace prefixes every key so multiple stores can share one
	// Redis instance. Defaults to "obsgraph".
	Namespace string

	// Codec serializes values. Defaults to JSONCodec.
	Codec Codec

	// ConnectTimeout is the maximum time to wait for the initial ping.
	ConnectTimeout time.Duration
}

// RedisStore resolves identifiers through a shared Redis instance so
// separately running processes see the same bindings.
type RedisStore struct {
	client    *redis.Client
	namespace string
	codec     Codec
}

// NewRedisStore connects to Redis and verifies the connection with a
// ping before returning.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = "obsgraph"
	}
	if opts.Codec == nil {
		opts.Codec = JSONCodec{}
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		namespace: opts.Namespace,
		codec:     opts.Codec,
	}, nil
}

func (s *RedisStore) key(id string) string {
	return s.namespace + ":" + id
}

// Put binds an identifier to a value.
func (s *RedisStore) Put(ctx context.Context, id string, value any) error {
	data, err := s.codec.Encode(value)
	if err != nil {
		return obsgraph.NewStorageError("RedisStore.Put", fmt.Errorf("encode value for %s: %w", id, err))
	}
	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return obsgraph.NewStorageError("RedisStore.Put", err)
	}
	return nil
}

// Get returns the value bound to an identifier.
func (s *RedisStore) Get(ctx context.Context, id string) (any, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, obsgraph.NewCacheMissError("RedisStore.Get", id)
	}
	if err != nil {
		return nil, obsgraph.NewStorageError("RedisStore.Get", err)
	}

	v, err := s.codec.Decode(data)
	if err != nil {
		return nil, obsgraph.NewStorageError("RedisStore.Get", fmt.Errorf("decode value for %s: %w", id, err))
	}
	return v, nil
}

// Reset drops every entry in this store's namespace.
func (s *RedisStore) Reset(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.namespace+":*", 100).Result()
		if err != nil {
			return obsgraph.NewStorageError("RedisStore.Reset", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return obsgraph.NewStorageError("RedisStore.Reset", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
