package cache

import (
	"context"
	"fmt"
	"time"

	"commerce-admin-core/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	revokedKeyPrefix  = "auth:revoked:"
	attemptsKeyPrefix = "auth:attempts:"
)

// RedisTokenStore implements TokenStore on Redis. Revocations carry the
// remaining token lifetime as TTL so the denylist cleans itself up.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new Redis token store.
func NewRedisTokenStore(client *redis.Client) ports.TokenStore {
	return &RedisTokenStore{client: client}
}

// Revoke marks a token id as unusable until ttl elapses.
func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// RecordFailedLogin bumps the attempt counter for an email. The window
// starts when the first attempt lands and expires on its own.
func (s *RedisTokenStore) RecordFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptsKeyPrefix + email
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record login attempt: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("failed to set attempt window: %w", err)
		}
	}
	return count, nil
}

// ResetFailedLogins clears the attempt counter after a successful login.
func (s *RedisTokenStore) ResetFailedLogins(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, attemptsKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
