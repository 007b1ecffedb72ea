package authctx

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
)

type ctxKey string

const (
	keyUserID ctxKey = "auth_user_id"
	keyRole   ctxKey = "auth_role"
)

// WithUser stores the authenticated user id and role for downstream services.
func WithUser(ctx context.Context, userID uint64, role model.Role) context.Context {
	ctx = context.WithValue(ctx, keyUserID, userID)
	return context.WithValue(ctx, keyRole, role)
}

// UserID returns the authenticated user id if present.
func UserID(ctx context.Context) uint64 {
	v, _ := ctx.Value(keyUserID).(uint64)
	return v
}

// Role returns the authenticated role if present.
func Role(ctx context.Context) model.Role {
	v, _ := ctx.Value(keyRole).(model.Role)
	return v
}
