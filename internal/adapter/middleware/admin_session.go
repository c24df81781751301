package middleware

import (
	"context"
	"errors"
	"net/http"

	"consignado-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	SessionCookie = "admin_session"
	adminCtxKey   = "admin"
)

type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.AdminDTO, error)
}

// RequireAdmin rejects requests without a valid admin_session cookie and
// stores the signed-in admin in the echo context.
func RequireAdmin(v SessionVerifier, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			admin, err := v.Verify(c.Request().Context(), ck.Value)
			if errors.Is(err, auth.ErrInvalidSession) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
			}
			if err != nil {
				log.Error("verify admin session", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
			c.Set(adminCtxKey, admin)
			return next(c)
		}
	}
}

// AdminFrom returns the admin stored by RequireAdmin.
func AdminFrom(c echo.Context) (*auth.AdminDTO, bool) {
	a, ok := c.Get(adminCtxKey).(*auth.AdminDTO)
	return a, ok && a != nil
}
