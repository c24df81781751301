package http

import (
	"bytes"
	"net/http"
	"time"

	domain "consignado-backend/internal/domain/proposal"
	ucProposal "consignado-backend/internal/usecase/proposal"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProposalHandler struct {
	uc  *ucProposal.Usecase
	log *zap.Logger
}

func NewProposalHandler(uc *ucProposal.Usecase, log *zap.Logger) *ProposalHandler {
	return &ProposalHandler{uc: uc, log: nopIfNil(log)}
}

func (h *ProposalHandler) Create(c echo.Context) error {
	var req ucProposal.CreateInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *ProposalHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.List(c.Request().Context()))
}

func (h *ProposalHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Stats(c.Request().Context()))
}

func (h *ProposalHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req ucProposal.UpdateStatusInput
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.uc.UpdateStatus(c.Request().Context(), id, req); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

type uploadDocumentsReq struct {
	ucProposal.UploadInput
	Documents []ucProposal.UploadInput `json:"documents"`
}

// UploadDocuments takes one document inline or several under "documents".
// A batch always answers 200 with per-document results.
func (h *ProposalHandler) UploadDocuments(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req uploadDocumentsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()

	if len(req.Documents) > 0 {
		for i := range req.Documents {
			if err := c.Validate(&req.Documents[i]); err != nil {
				return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
			}
		}
		// surface a missing proposal once instead of per document
		if _, err := h.uc.Get(ctx, id); err != nil {
			return writeError(c, h.log, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": h.uc.UploadDocuments(ctx, id, req.Documents)})
	}

	if err := c.Validate(&req.UploadInput); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.uc.UploadDocument(ctx, id, req.UploadInput)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Export downloads proposals as ?format=csv|tsv, optionally ?status=.
func (h *ProposalHandler) Export(c echo.Context) error {
	opts := ucProposal.ExportOptions{
		Format: ucProposal.ExportFormat(c.QueryParam("format")),
		Status: domain.Status(c.QueryParam("status")),
	}
	mime, ext := "text/csv; charset=utf-8", "csv"
	switch opts.Format {
	case "", ucProposal.ExportCSV:
		opts.Format = ucProposal.ExportCSV
	case ucProposal.ExportTSV:
		mime, ext = "text/tab-separated-values; charset=utf-8", "tsv"
	default:
		return badRequest(c, "format must be csv or tsv")
	}

	var buf bytes.Buffer
	if _, err := h.uc.Export(c.Request().Context(), &buf, opts); err != nil {
		return writeError(c, h.log, err)
	}
	name := "proposals_" + time.Now().UTC().Format("20060102") + "." + ext
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, mime, buf.Bytes())
}
