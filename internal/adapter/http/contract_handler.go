package http

import (
	"net/http"
	"strings"
	"time"

	"contract-approval/internal/domain/ledger"
	ucContract "contract-approval/internal/usecase/contract"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type ContractHandler struct{ uc *ucContract.Usecase }

func NewContractHandler(uc *ucContract.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type createContractReq struct {
	Title        string  `json:"title"          validate:"required,max=200"`
	Description  string  `json:"description"`
	SupplierName string  `json:"supplier_name"  validate:"required,max=200"`
	Value        float64 `json:"value"          validate:"gt=0,dec2"`
	FileHash     string  `json:"file_hash"      validate:"omitempty,cid"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	StartDate string `json:"start_date"         validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"           validate:"required,datetime=2006-01-02"`
}

// Create registers a contract on behalf of the signer and opens its approval record.
func (h *ContractHandler) Create(c echo.Context) error {
	var req createContractReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	who, ok := caller(c)
	if !ok {
		return unsigned(c)
	}
	// formats were checked by the validator
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	dto, err := h.uc.Create(c.Request().Context(), ucContract.CreateContractInput{
		Creator:      who,
		Title:        req.Title,
		Description:  req.Description,
		SupplierName: req.SupplierName,
		Value:        req.Value,
		FileHash:     req.FileHash,
		StartDate:    start,
		EndDate:      end,
	})
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContractHandler) Get(c echo.Context) error {
	id, ok := targetID(c)
	if !ok {
		return badTargetID(c)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusOK, dto)
}

// List accepts offset, limit and an optional state of unapproved,
// partially_approved or fully_approved.
func (h *ContractHandler) List(c echo.Context) error {
	var offset, limit int
	if err := echo.QueryParamsBinder(c).Int("offset", &offset).Int("limit", &limit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "offset and limit must be integers"})
	}
	state := ledger.State(strings.TrimSpace(c.QueryParam("state")))
	dto, err := h.uc.List(c.Request().Context(), offset, limit, state)
	if err != nil {
		return fail(c, err, ledgerStatus)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) Count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]uint64{"total": n})
}
