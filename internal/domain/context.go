package domain

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	adminIDKey    contextKey = "admin_id"
	adminEmailKey contextKey = "admin_email"
)

// WithAdminID stores the authenticated admin id in the context.
func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, adminIDKey, id)
}

// GetAdminIDFromContext returns the authenticated admin id, or "".
func GetAdminIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(adminIDKey).(string); ok {
		return v
	}
	return ""
}

// WithAdminEmail stores the authenticated admin email in the context.
func WithAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminEmailKey, email)
}

// GetAdminEmailFromContext returns the authenticated admin email, or "".
func GetAdminEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(adminEmailKey).(string); ok {
		return v
	}
	return ""
}
