package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("user with that username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrAlreadyApproved    = errors.New("user is already approved")
	ErrInvalidRole        = errors.New("invalid role specified")
)

type Role string

const (
	RolePending     Role = "pending"
	RoleProcurement Role = "procurement"
	RoleApprover    Role = "approver"
	RoleAuditor     Role = "auditor"
	RoleAdmin       Role = "admin"
)

// Assignable reports whether an admin may grant the role to a pending user.
func (r Role) Assignable() bool {
	switch r {
	case RoleProcurement, RoleApprover, RoleAuditor:
		return true
	}
	return false
}

// Table: users
type User struct {
	ID                  string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Username            string    `gorm:"column:username;size:64;not null;uniqueIndex:ux_users_username" json:"username"`
	Email               string    `gorm:"column:email;size:254;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash        string    `gorm:"column:password_hash;size:72;not null" json:"-"`
	Role                Role      `gorm:"column:role;size:16;not null;default:'pending';index:idx_users_role" json:"role"`
	BlockchainAddresses []string  `gorm:"column:blockchain_addresses;serializer:json;type:text" json:"blockchainAddresses"`
	ApprovedBy          string    `gorm:"column:approved_by;size:36" json:"approvedBy,omitempty"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func New(username, email, passwordHash string, role Role) *User {
	return &User{
		ID:                  uuid.NewString(),
		Username:            username,
		Email:               email,
		PasswordHash:        passwordHash,
		Role:                role,
		BlockchainAddresses: []string{},
	}
}
