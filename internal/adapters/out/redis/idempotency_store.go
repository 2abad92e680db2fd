// Package redis keeps idempotency keys of client requests in Redis.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 24 * time.Hour

	keyPrefix     = "idempotency:"
	pendingMarker = "\x00pending"
)

// IdempotencyStore reserves a key with SETNX. The value stays a pending
// marker until the request that reserved it completes.
type IdempotencyStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client goredis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	k := keyPrefix + strings.TrimSpace(key)

	// The key may expire between SETNX and GET; one more attempt settles it.
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return "", false, err
		}
		if ok {
			return "", true, nil
		}

		value, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		if value == pendingMarker {
			return "", false, nil
		}
		return value, false, nil
	}
	return "", false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, result string) error {
	return s.client.Set(ctx, keyPrefix+strings.TrimSpace(key), result, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+strings.TrimSpace(key)).Err()
}
