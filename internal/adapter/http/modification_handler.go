package http

import (
	"context"
	"net/http"
	"time"

	ucMod "contract-approval/internal/usecase/modification"

	"github.com/labstack/echo/v4"
)

type ModificationHandler struct{ uc *ucMod.Usecase }

func NewModificationHandler(uc *ucMod.Usecase) *ModificationHandler {
	return &ModificationHandler{uc: uc}
}

type submitModificationReq struct {
	Description string  `json:"description"  validate:"required"`
	NewValue    float64 `json:"new_value"    validate:"gt=0,dec2"`
	NewEndDate  string  `json:"new_end_date" validate:"required,datetime=2006-01-02"`
}

func (h *ModificationHandler) Submit(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	var req submitModificationReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	who, ok := caller(c)
	if !ok {
		return unsigned(c)
	}
	end, _ := time.Parse(dateLayout, req.NewEndDate)
	dto, err := h.uc.Submit(c.Request().Context(), ucMod.SubmitInput{
		ContractID:  id,
		Caller:      who,
		Description: req.Description,
		NewValue:    req.NewValue,
		NewEndDate:  end,
	})
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ModificationHandler) Approve(c echo.Context) error {
	return h.decide(c, h.uc.Approve)
}

func (h *ModificationHandler) Reject(c echo.Context) error {
	return h.decide(c, h.uc.Reject)
}

func (h *ModificationHandler) decide(c echo.Context, fn func(context.Context, ucMod.DecideInput) (*ucMod.RequestDTO, error)) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	who, ok := caller(c)
	if !ok {
		return unsigned(c)
	}
	dto, err := fn(c.Request().Context(), ucMod.DecideInput{ContractID: id, Caller: who})
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusOK, dto)
}

// Status reports the open request of contract :id, if any.
func (h *ModificationHandler) Status(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	dto, err := h.uc.PendingStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ModificationHandler) ListPending(c echo.Context) error {
	rows, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": rows})
}
