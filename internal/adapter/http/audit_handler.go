package http

import (
	"net/http"

	ucAudit "contract-approval/internal/usecase/audit"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct{ uc *ucAudit.Usecase }

func NewAuditHandler(uc *ucAudit.Usecase) *AuditHandler { return &AuditHandler{uc: uc} }

// ListRecent pages newest first; pass next_before back as ?before= for the next page.
func (h *AuditHandler) ListRecent(c echo.Context) error {
	var before uint64
	var limit int
	if err := echo.QueryParamsBinder(c).Uint64("before", &before).Int("limit", &limit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "before and limit must be integers"})
	}
	page, err := h.uc.ListRecent(c.Request().Context(), before, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AuditHandler) ListByTarget(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer"})
	}
	rows, err := h.uc.ListByTarget(c.Request().Context(), id, limit)
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusOK, map[string]any{"target_id": id, "entries": rows})
}

func (h *AuditHandler) Verify(c echo.Context) error {
	res, err := h.uc.Verify(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
