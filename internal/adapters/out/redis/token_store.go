// Package redis provides the Redis-backed implementation of the review token
// store. Tokens are opaque random strings stored with a TTL; consuming a
// token removes it atomically, so each token authorizes at most one review
// submission even under concurrent use.
package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultTokenTTL is how long an issued review token stays valid when the
// caller does not configure a TTL.
const DefaultTokenTTL = 24 * time.Hour

// tokenKeyPrefix namespaces review tokens within the Redis keyspace.
const tokenKeyPrefix = "review_token:"

// RedisTokenStore implements ports.TokenStore on top of a Redis client.
type RedisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenStore creates a token store with the given client and token
// lifetime. A non-positive ttl falls back to DefaultTokenTTL.
func NewRedisTokenStore(client *redis.Client, ttl time.Duration) *RedisTokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &RedisTokenStore{
		client: client,
		ttl:    ttl,
	}
}

// Issue generates a fresh single-use token bound to the shipment.
// Issuing again for the same shipment yields a new independent token; older
// tokens stay valid until consumed or expired.
func (s *RedisTokenStore) Issue(ctx context.Context, shipmentID kernel.UUID) (string, error) {
	if err := shipmentID.Validate(); err != nil {
		return "", err
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	err = s.client.Set(ctx, tokenKeyPrefix+token, shipmentID.String(), s.ttl).Err()
	if err != nil {
		return "", err
	}

	return token, nil
}

// Consume resolves a token to its shipment and invalidates it in the same
// step. Unknown, expired, and already-consumed tokens all return
// ports.ErrTokenInvalid.
func (s *RedisTokenStore) Consume(ctx context.Context, token string) (kernel.UUID, error) {
	if token == "" {
		return kernel.UUID{}, ports.ErrTokenInvalid
	}

	value, err := s.client.GetDel(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, ports.ErrTokenInvalid
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	shipmentID, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, err
	}

	return shipmentID, nil
}

// newToken produces a 128-bit random token encoded as hex.
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
