package modification

import (
	"errors"
	"time"
)

var (
	ErrPending       = errors.New("a modification request is already pending for this contract")
	ErrNoPending     = errors.New("no pending modification request for this contract")
	ErrNotCreator    = errors.New("only the contract creator may request a modification")
	ErrInvalidValue  = errors.New("new value must be greater than zero")
	ErrInvalidPeriod = errors.New("new end date must not be before the contract start date")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Table: modification_requests
type Request struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID  string `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_modification_requests_request_id"`
	ContractID uint64 `gorm:"column:contract_id;not null;index:idx_modification_requests_contract"`

	// Equals ContractID while pending and NULL afterwards, so the unique index allows one pending per contract.
	PendingKey  *uint64    `gorm:"column:pending_key;uniqueIndex:ux_modification_requests_pending"`
	Description string     `gorm:"column:description;type:text;not null"`
	NewValue    float64    `gorm:"column:new_value;type:decimal(18,2);not null"`
	NewEndDate  time.Time  `gorm:"column:new_end_date;type:date;not null"`
	RequestedBy string     `gorm:"column:requested_by;type:char(42);not null"`
	Status      Status     `gorm:"column:status;size:16;not null;index:idx_modification_requests_status"`
	DecidedBy   *string    `gorm:"column:decided_by;type:char(42)"`
	DecidedAt   *time.Time `gorm:"column:decided_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string { return "modification_requests" }

func (r *Request) IsPending() bool { return r.Status == StatusPending }

// Decide closes a pending request.
func (r *Request) Decide(status Status, by string, at time.Time) error {
	if !r.IsPending() {
		return ErrNoPending
	}
	r.Status = status
	r.PendingKey = nil
	r.DecidedBy = &by
	ts := at.UTC()
	r.DecidedAt = &ts
	return nil
}
