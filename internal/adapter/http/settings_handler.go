package http

import (
	"net/http"

	ucSettings "consignado-backend/internal/usecase/settings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	uc  *ucSettings.Usecase
	log *zap.Logger
}

func NewSettingsHandler(uc *ucSettings.Usecase, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, log: nopIfNil(log)}
}

func (h *SettingsHandler) List(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *SettingsHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SettingsHandler) Set(c echo.Context) error {
	var req ucSettings.SetInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	key := c.Param("key")
	if err := h.uc.Set(c.Request().Context(), key, req); err != nil {
		return writeError(c, h.log, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), key)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SettingsHandler) StorageStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.StorageStatus(c.Request().Context()))
}

func (h *SettingsHandler) TestStorage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.TestStorage(c.Request().Context()))
}
