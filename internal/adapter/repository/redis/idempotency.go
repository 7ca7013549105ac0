package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingMarker is stored under a key while its first request is running.
const PendingMarker = "processing"

const defaultPrefix = "barberledger:idempotency:"

// claimAttempts bounds the SETNX/GET cycle when the key keeps expiring
// between the two commands.
const claimAttempts = 3

// ErrKeyContended is returned when a key could neither be claimed nor read.
var ErrKeyContended = errors.New("idempotency key contended")

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client redis.UniversalClient
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: defaultPrefix,
	}
}

// CheckAndSet atomically claims key. A nil response claims it with
// PendingMarker. When the key is already held the stored value is returned
// with exists set; exists never comes back without a value.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	var value interface{} = PendingMarker
	if response != nil {
		value = response
	}

	for range claimAttempts {
		set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if set {
			return false, nil, nil
		}

		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET.
			continue
		}
		if err != nil {
			return false, nil, err
		}

		return true, existing, nil
	}

	return false, nil, ErrKeyContended
}

// Update stores the final response for key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release drops key so a failed request can be retried with it.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
