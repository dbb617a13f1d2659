package http

import (
	"errors"
	"net/http"

	"contract-approval/internal/domain/ledger"
	ucLedger "contract-approval/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type LedgerHandler struct{ uc *ucLedger.Usecase }

func NewLedgerHandler(uc *ucLedger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type approvalResp struct {
	TargetID   uint64              `json:"target_id"`
	IsApproved bool                `json:"is_approved"`
	Record     *ucLedger.StatusDTO `json:"record,omitempty"`
}

type hasApprovedResp struct {
	TargetID    uint64 `json:"target_id"`
	Address     string `json:"address"`
	HasApproved bool   `json:"has_approved"`
}

func (h *LedgerHandler) Approvers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Roster())
}

// Approve records the signer's approval of contract :id.
func (h *LedgerHandler) Approve(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	who, ok := caller(c)
	if !ok {
		return unsigned(c)
	}
	dto, err := h.uc.Approve(c.Request().Context(), ucLedger.ApproveInput{TargetID: id, Caller: who})
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusOK, dto)
}

// Approved is the cheap polling read; it consults the status cache first.
func (h *LedgerHandler) Approved(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	return c.JSON(http.StatusOK, approvalResp{TargetID: id, IsApproved: h.uc.IsApproved(c.Request().Context(), id)})
}

// Approval never 404s: an unknown target is simply not approved.
func (h *LedgerHandler) Approval(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	resp := approvalResp{TargetID: id}
	status, err := h.uc.Status(c.Request().Context(), id)
	switch {
	case err == nil:
		resp.Record = status
		resp.IsApproved = status.IsApproved
	case !errors.Is(err, ledger.ErrTargetNotFound):
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) HasApproved(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	addr, err := ledger.ParseIdentity(c.Param("address"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, hasApprovedResp{
		TargetID:    id,
		Address:     ledger.IdentityKey(addr),
		HasApproved: h.uc.HasApproved(c.Request().Context(), id, addr),
	})
}
