package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"commerce-admin-core/internal/application"
	"commerce-admin-core/internal/domain"

	"github.com/rs/zerolog"
)

// RequireAdmin verifies the Bearer token on every request and stores the
// authenticated admin identity in the request context.
func RequireAdmin(authService *application.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected request with invalid token")
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := domain.WithAdminID(r.Context(), claims.Subject)
			ctx = domain.WithAdminEmail(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
