package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riordanpawley/laneboard/internal/domain"
)

const defaultRedisTimeout = 500 * time.Millisecond

// Redis stores preferences as plain string keys under a namespace, so several
// machines can share one user's board layout.
type Redis struct {
	client    *redis.Client
	namespace string
	timeout   time.Duration
}

// OpenRedis connects to the redis instance at url (redis://host:port/db)
func OpenRedis(url, namespace string, timeoutMs int) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts), namespace, time.Duration(timeoutMs)*time.Millisecond), nil
}

// NewRedis wraps an existing client. A non-positive timeout uses the default.
func NewRedis(client *redis.Client, namespace string, timeout time.Duration) *Redis {
	if namespace == "" {
		namespace = "laneboard"
	}
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	return &Redis{client: client, namespace: namespace, timeout: timeout}
}

func (r *Redis) key(key string) string {
	return r.namespace + ":prefs:" + key
}

func (r *Redis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.PrefsError{Op: "get", Key: key, Err: err}
	}
	return v, true, nil
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return &domain.PrefsError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *Redis) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return &domain.PrefsError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}
