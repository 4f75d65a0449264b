package ports

import (
	"context"
	"time"
)

// TokenStore defines the interface for revoked-token tracking and login
// throttling. The Redis implementation keys entries with TTLs so revocations
// expire together with the tokens they block.
type TokenStore interface {
	// Revoke marks a token id as unusable until ttl elapses.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RecordFailedLogin bumps the failure counter for an email and returns
	// the count within the current window.
	RecordFailedLogin(ctx context.Context, email string, window time.Duration) (int64, error)

	// ResetFailedLogins clears the failure counter after a successful login.
	ResetFailedLogins(ctx context.Context, email string) error
}
