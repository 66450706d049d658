package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// IdempotencyStore remembers which entry an Idempotency-Key produced.
// Key format: idem:<user_id>:<client_key>
type IdempotencyStore struct {
	client kv
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Lookup returns the entry id recorded for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, userID, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records entryID under key. The first writer wins; a later call
// for the same key is a no-op until the record expires.
func (s *IdempotencyStore) Remember(ctx context.Context, userID, key, entryID string) error {
	if err := s.client.SetNX(ctx, s.key(userID, key), entryID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(userID, key string) string {
	return fmt.Sprintf("idem:%s:%s", userID, key)
}
