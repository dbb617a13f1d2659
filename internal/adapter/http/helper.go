package http

import (
	"errors"
	"net/http"
	"strconv"

	"contract-approval/internal/adapter/middleware"
	"contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/document"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/modification"
	"contract-approval/internal/domain/user"
	ucUser "contract-approval/internal/usecase/user"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

var errNoSigner = errors.New("request is not signed")

// bindValid binds and validates req. On failure it has already written the 400/422 response.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// targetID reads :id. Ids start at 1, so 0 is rejected with the malformed ones.
func targetID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func badTargetID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id must be a positive integer"})
}

func caller(c echo.Context) (common.Address, bool) { return middleware.Signer(c) }

func unsigned(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: errNoSigner.Error()})
}

// ledgerStatus maps errors of the ledger, contract, modification and audit groups.
func ledgerStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized), errors.Is(err, modification.ErrNotCreator):
		return http.StatusForbidden, true
	case errors.Is(err, ledger.ErrAlreadyApproved),
		errors.Is(err, modification.ErrPending),
		errors.Is(err, modification.ErrNoPending):
		return http.StatusConflict, true
	case errors.Is(err, ledger.ErrTargetNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, contract.ErrInvalidTitle),
		errors.Is(err, contract.ErrInvalidValue),
		errors.Is(err, contract.ErrInvalidPeriod),
		errors.Is(err, contract.ErrInvalidState),
		errors.Is(err, modification.ErrInvalidValue),
		errors.Is(err, modification.ErrInvalidPeriod),
		errors.Is(err, document.ErrInvalidCID),
		errors.Is(err, ledger.ErrInvalidIdentity):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

func userStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, ucUser.ErrMissingFields),
		errors.Is(err, user.ErrAlreadyExists),
		errors.Is(err, user.ErrAlreadyApproved),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, ledger.ErrInvalidIdentity):
		return http.StatusBadRequest, true
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

func documentStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, document.ErrEmpty), errors.Is(err, document.ErrInvalidCID):
		return http.StatusBadRequest, true
	case errors.Is(err, document.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, true
	case errors.Is(err, document.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

// fail writes a mapped error; anything unmapped goes to echo's error handler as a 500.
func fail(c echo.Context, err error, mapping func(error) (int, bool)) error {
	if status, ok := mapping(err); ok {
		return c.JSON(status, ErrorResponse{Error: err.Error()})
	}
	return err
}
