package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/zeusync/jecs/internal/core/storage/interfaces"
)

var _ interfaces.Storage = (*Redis)(nil)

type RedisOptions = redis.Options

// Redis stores values as plain strings under "<namespace>:<key>".
type Redis struct {
	Namespace string
	Client    *redis.Client
}

// NewRedis connects a client with options; keys are prefixed by namespace.
func NewRedis(options RedisOptions, namespace string) *Redis {
	return &Redis{
		Namespace: namespace,
		Client:    redis.NewClient(&options),
	}
}

func (r *Redis) key(key string) string {
	if r.Namespace == "" {
		return key
	}
	return r.Namespace + ":" + key
}

func (r *Redis) Store(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.Client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Fetch(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	bz, err := r.Client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("fetch %s: %w", key, ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	return bz, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.Client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	pattern := "*"
	prefix := ""
	if r.Namespace != "" {
		prefix = r.Namespace + ":"
		pattern = prefix + "*"
	}
	keys := make([]string, 0)
	iter := r.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", pattern, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
