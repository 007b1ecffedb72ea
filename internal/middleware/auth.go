package middleware

import (
	"net/http"
	"strings"

	"github.com/expomeet/expomeet-server/internal/authctx"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		claims, err := m.auth.ParseToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		role, err := model.ParseRole(claims.Role)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}

		ctx := authctx.WithUser(c.Request().Context(), claims.UserID, role)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireRole gates a route to the given roles. It must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := authctx.Role(c.Request().Context())
			if !role.Valid() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// UserID reads the authenticated user id stored by RequireAuth.
func UserID(c echo.Context) uint64 {
	return authctx.UserID(c.Request().Context())
}

// Role reads the authenticated role stored by RequireAuth.
func Role(c echo.Context) model.Role {
	return authctx.Role(c.Request().Context())
}
