package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"commerce-admin-core/internal/domain"
	"commerce-admin-core/internal/infrastructure/metrics"
	"commerce-admin-core/internal/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AdminClaims are the JWT claims issued to an authenticated admin.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles admin authentication: password verification, JWT
// issuance and revocation, and login throttling.
type AuthService struct {
	admins        ports.AdminRepository
	tokens        ports.TokenStore
	logger        zerolog.Logger
	secret        []byte
	tokenTTL      time.Duration
	maxAttempts   int64
	attemptWindow time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(
	admins ports.AdminRepository,
	tokens ports.TokenStore,
	logger zerolog.Logger,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		admins:        admins,
		tokens:        tokens,
		logger:        logger,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		maxAttempts:   10,
		attemptWindow: 15 * time.Minute,
	}
}

// Login verifies the credentials and returns a signed token plus the admin.
// Attempts are counted per email in a rolling window; exceeding the limit
// fails with domain.ErrTooManyAttempts before the password is checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	attempts, err := s.tokens.RecordFailedLogin(ctx, email, s.attemptWindow)
	if err != nil {
		return "", nil, fmt.Errorf("failed to record login attempt: %w", err)
	}
	if attempts > s.maxAttempts {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		s.logger.Warn().Str("email", email).Int64("attempts", attempts).Msg("Login throttled")
		return "", nil, domain.ErrTooManyAttempts
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		s.logger.Warn().Str("email", email).Msg("Login failed: wrong password")
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := s.tokens.ResetFailedLogins(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Failed to reset login attempt counter")
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", email).Str("adminId", admin.ID).Msg("Admin logged in")
	return token, admin, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}

	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info().Str("adminId", claims.Subject).Msg("Admin logged out")
	return nil
}

// Authenticate verifies a bearer token and returns its claims, rejecting
// revoked tokens.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*AdminClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	}

	return claims, nil
}

// EnsureRootAdmin creates the bootstrap admin account when it does not exist
// yet. It runs once at startup and is idempotent.
func (s *AuthService) EnsureRootAdmin(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil // bootstrap admin not configured
	}

	existing, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up root admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash root admin password: %w", err)
	}

	admin := &domain.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleRoot,
	}
	if _, err := s.admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create root admin: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Created root admin account")
	return nil
}

func (s *AuthService) issueToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.ExpiresAt == nil || claims.ID == "" {
		return nil, fmt.Errorf("%w: malformed token claims", domain.ErrUnauthorized)
	}
	return claims, nil
}
