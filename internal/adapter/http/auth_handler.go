package http

import (
	"net/http"
	"time"

	"consignado-backend/internal/adapter/middleware"
	"consignado-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc           *auth.Usecase
	secureCookie bool
	log          *zap.Logger
}

func NewAuthHandler(uc *auth.Usecase, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie, log: nopIfNil(log)}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.SetCookie(h.cookie(res.Token, res.ExpiresAt))
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ck := h.cookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.NoContent(http.StatusNoContent)
}

// Me reports the signed-in admin, or null without a valid session.
func (h *AuthHandler) Me(c echo.Context) error {
	ck, err := c.Cookie(middleware.SessionCookie)
	if err != nil || ck.Value == "" {
		return c.JSON(http.StatusOK, map[string]any{"admin": nil})
	}
	admin, err := h.uc.Verify(c.Request().Context(), ck.Value)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			return c.JSON(http.StatusOK, map[string]any{"admin": nil})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"admin": admin})
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
