package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisNamespace scopes keys when no namespace is configured.
const DefaultRedisNamespace = "default"

// Redis is a Storage kept in Redis. Keys are namespaced as
// taskpop:{namespace}:{key} so several users can share one server.
type Redis struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	if namespace == "" {
		namespace = DefaultRedisNamespace
	}
	return &Redis{client: client, namespace: namespace}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr, password string, db int, namespace string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedis(client, namespace), nil
}

func (r *Redis) namespaceKey(key string) string {
	return fmt.Sprintf("taskpop:%s:%s", r.namespace, key)
}

func (r *Redis) stripNamespace(fullKey string) string {
	return strings.TrimPrefix(fullKey, fmt.Sprintf("taskpop:%s:", r.namespace))
}

// Get implements Storage.
func (r *Redis) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := checkKeys(keys); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.namespaceKey(k)
	}
	vals, err := r.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // nil: key missing
		}
		out[r.stripNamespace(full[i])] = json.RawMessage(s)
	}
	return out, nil
}

// Set implements Storage. Items are written atomically with MSET.
func (r *Redis) Set(ctx context.Context, items map[string]json.RawMessage) error {
	keys, err := sortedKeys(items)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, r.namespaceKey(k), string(items[k]))
	}
	return r.client.MSet(ctx, pairs...).Err()
}

// Remove implements Storage.
func (r *Redis) Remove(ctx context.Context, keys ...string) error {
	if err := checkKeys(keys); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.namespaceKey(k)
	}
	return r.client.Del(ctx, full...).Err()
}

// Close implements Storage.
func (r *Redis) Close() error {
	return r.client.Close()
}
