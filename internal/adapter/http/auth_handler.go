package http

import (
	"net/http"

	"contract-approval/internal/adapter/middleware"
	userDomain "contract-approval/internal/domain/user"
	ucUser "contract-approval/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves dashboard accounts: self registration, login and the admin queue.
type AuthHandler struct{ uc *ucUser.Usecase }

func NewAuthHandler(uc *ucUser.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type credentialsReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type approveUserReq struct {
	Role                string   `json:"role"                validate:"required,oneof=procurement approver auditor"`
	BlockchainAddresses []string `json:"blockchainAddresses" validate:"omitempty,dive,ethaddr"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Register(c.Request().Context(), ucUser.RegisterInput(req))
	if err != nil {
		return fail(c, err, userStatus)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "user registered, awaiting admin approval",
		"user":    dto,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	token, err := h.uc.Login(c.Request().Context(), ucUser.LoginInput(req))
	if err != nil {
		return fail(c, err, userStatus)
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) PendingUsers(c echo.Context) error {
	users, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) ApproveUser(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id path param"})
	}
	var req approveUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		// role and address problems are plain 400s on this route
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := ucUser.ApproveUserInput{
		UserID:    userID,
		Role:      userDomain.Role(req.Role),
		Addresses: req.BlockchainAddresses,
	}
	if cl, ok := middleware.Claims(c); ok {
		in.ApprovedBy = cl.UserID
	}
	dto, err := h.uc.ApproveUser(c.Request().Context(), in)
	if err != nil {
		return fail(c, err, userStatus)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "user approved",
		"user":    dto,
	})
}
