package http

import (
	"errors"
	"net/http"

	factorDomain "consignado-backend/internal/domain/factor"
	"consignado-backend/internal/usecase/simulation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SimulationHandler struct {
	uc  *simulation.Usecase
	log *zap.Logger
}

func NewSimulationHandler(uc *simulation.Usecase, log *zap.Logger) *SimulationHandler {
	return &SimulationHandler{uc: uc, log: nopIfNil(log)}
}

func (h *SimulationHandler) Simulate(c echo.Context) error {
	var req simulation.Request
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.uc.Simulate(c.Request().Context(), req)
	if errors.Is(err, factorDomain.ErrInvalidFactor) {
		h.log.Error("simulation hit an invalid stored factor", zap.Int("term", req.Term), zap.Int("day", req.Day))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "factor table is inconsistent"})
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
