package http

import (
	"time"

	"contract-approval/internal/adapter/middleware"
	userDomain "contract-approval/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Routes struct {
	Health        *Handler
	Ledger        *LedgerHandler
	Contracts     *ContractHandler
	Modifications *ModificationHandler
	Audit         *AuditHandler
	Auth          *AuthHandler
	Documents     *DocumentHandler

	Tokens middleware.TokenParser
	Redis  *redis.Client

	IdempotencyTTL time.Duration
	MaxClockSkew   time.Duration
	MaxBodyBytes   int64
	Logger         *zap.Logger
}

// Register mounts every route. Mutating ledger routes require a signature and an
// idempotency key; dashboard routes require a JWT.
func Register(e *echo.Echo, r Routes) {
	signed := []echo.MiddlewareFunc{
		middleware.SignerMiddleware(r.MaxClockSkew, r.MaxBodyBytes),
		middleware.IdempotencyMiddleware(r.Redis, r.IdempotencyTTL, r.MaxClockSkew, r.Logger),
	}
	admin := middleware.RequireRoles(r.Tokens, userDomain.RoleAdmin)
	auditor := middleware.RequireRoles(r.Tokens, userDomain.RoleAuditor, userDomain.RoleAdmin)

	e.GET("/health", r.Health.Health)

	e.POST("/api/auth/register", r.Auth.Register)
	e.POST("/api/auth/login", r.Auth.Login)
	e.GET("/admin/pending-users", r.Auth.PendingUsers, admin)
	e.PUT("/admin/approve-user/:user_id", r.Auth.ApproveUser, admin)

	e.POST("/documents", r.Documents.Upload)
	e.GET("/documents/:cid", r.Documents.Get)

	e.GET("/approvers", r.Ledger.Approvers)

	e.POST("/contracts", r.Contracts.Create, signed...)
	e.GET("/contracts", r.Contracts.List)
	e.GET("/contracts/count", r.Contracts.Count)
	e.GET("/contracts/:id", r.Contracts.Get)
	e.POST("/contracts/:id/approve", r.Ledger.Approve, signed...)
	e.GET("/contracts/:id/approval", r.Ledger.Approval)
	e.GET("/contracts/:id/approved", r.Ledger.Approved)
	e.GET("/contracts/:id/approvals/:address", r.Ledger.HasApproved)

	e.POST("/contracts/:id/modifications", r.Modifications.Submit, signed...)
	e.POST("/contracts/:id/modifications/approve", r.Modifications.Approve, signed...)
	e.POST("/contracts/:id/modifications/reject", r.Modifications.Reject, signed...)
	e.GET("/contracts/:id/modifications", r.Modifications.Status)
	e.GET("/modifications/pending", r.Modifications.ListPending)

	e.GET("/contracts/:id/audit", r.Audit.ListByTarget)
	e.GET("/audit", r.Audit.ListRecent)
	e.GET("/audit/verify", r.Audit.Verify, auditor)
}
