package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	adminDomain "consignado-backend/internal/domain/admin"
	factorDomain "consignado-backend/internal/domain/factor"
	proposalDomain "consignado-backend/internal/domain/proposal"
	"consignado-backend/internal/storage"
	"consignado-backend/internal/usecase/auth"
	ucProposal "consignado-backend/internal/usecase/proposal"
	ucSettings "consignado-backend/internal/usecase/settings"
	"consignado-backend/internal/usecase/simulation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps domain errors onto HTTP codes; 0 means unexpected.
func statusFor(err error) int {
	var pe *storage.ProviderError
	switch {
	case errors.Is(err, factorDomain.ErrNotFound),
		errors.Is(err, proposalDomain.ErrNotFound),
		errors.Is(err, adminDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, simulation.ErrInvalidInput),
		errors.Is(err, simulation.ErrInvalidMode),
		errors.Is(err, factorDomain.ErrInvalidTermDay),
		errors.Is(err, factorDomain.ErrInvalidFactor),
		errors.Is(err, factorDomain.ErrNoValidFactors),
		errors.Is(err, factorDomain.ErrEmptyIDs),
		errors.Is(err, ucProposal.ErrInvalidInput),
		errors.Is(err, proposalDomain.ErrInvalidStatus),
		errors.Is(err, proposalDomain.ErrInvalidDocumentType),
		errors.Is(err, storage.ErrInvalidPayload),
		errors.Is(err, ucSettings.ErrInvalidKey),
		errors.Is(err, ucSettings.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &pe):
		return http.StatusBadGateway
	}
	return 0
}

// writeError renders err with its mapped status. Unexpected errors are
// logged and hidden behind a generic message.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	if code == 0 {
		log.Error("request failed",
			zap.String("method", c.Request().Method), zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	msg := err.Error()
	var pe *storage.ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		msg = pe.Message
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// bindValid binds the body into dst and runs the validator. It writes the
// 400/422 response itself and reports whether the handler should go on.
func bindValid(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	return id, err == nil && id > 0
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
