package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	ucFactor "consignado-backend/internal/usecase/factor"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// maxImportBytes caps CSV uploads; a full table is a few KB.
const maxImportBytes = 2 << 20

type FactorHandler struct {
	uc  *ucFactor.Usecase
	log *zap.Logger
}

func NewFactorHandler(uc *ucFactor.Usecase, log *zap.Logger) *FactorHandler {
	return &FactorHandler{uc: uc, log: nopIfNil(log)}
}

func (h *FactorHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.List(c.Request().Context()))
}

func (h *FactorHandler) Terms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]int{"terms": h.uc.Terms(c.Request().Context())})
}

func (h *FactorHandler) Lookup(c echo.Context) error {
	term, errT := strconv.Atoi(c.QueryParam("term"))
	day, errD := strconv.Atoi(c.QueryParam("day"))
	if errT != nil || errD != nil {
		return badRequest(c, "term and day query params must be integers")
	}
	dto, err := h.uc.Lookup(c.Request().Context(), term, day)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *FactorHandler) Upsert(c echo.Context) error {
	var req ucFactor.UpsertInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Upsert(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Import accepts either a multipart "file" field or JSON {"csv_content": "..."}.
func (h *FactorHandler) Import(c echo.Context) error {
	var content string
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "missing file")
		}
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "unreadable file")
		}
		defer f.Close()
		b, err := io.ReadAll(io.LimitReader(f, maxImportBytes+1))
		if err != nil {
			return badRequest(c, "unreadable file")
		}
		content = string(b)
	} else {
		var req ucFactor.ImportInput
		if ok, err := bindValid(c, &req); !ok {
			return err
		}
		content = req.CSVContent
	}
	// an oversized file is rejected whole, never imported truncated
	if len(content) > maxImportBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "factor file exceeds 2 MiB"})
	}

	res, err := h.uc.Import(c.Request().Context(), content)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *FactorHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FactorHandler) DeleteMany(c echo.Context) error {
	var req ucFactor.DeleteManyInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.uc.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
