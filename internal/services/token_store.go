package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued bearer tokens in redis so logout can revoke
// them before expiry. Keys carry the token's jti claim with the token's
// own TTL.
type TokenStore struct {
	rdb *redis.Client
}

// NewTokenStore creates a TokenStore backed by the given redis client.
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func tokenKey(jti string) string {
	return "token:" + jti
}

// Save records an issued token until it expires.
func (s *TokenStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, tokenKey(jti), "1", ttl).Err()
}

// Valid reports whether the token is still issued (not revoked, not
// expired).
func (s *TokenStore) Valid(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, tokenKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke invalidates a token immediately.
func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, tokenKey(jti)).Err()
}
