package ledger

import (
	"time"
)

type State string

const (
	StateUnapproved        State = "unapproved"
	StatePartiallyApproved State = "partially_approved"
	StateFullyApproved     State = "fully_approved"
)

func (s State) Valid() bool {
	switch s {
	case StateUnapproved, StatePartiallyApproved, StateFullyApproved:
		return true
	}
	return false
}

// Sequence names
const (
	SequenceContracts = "contracts"
	SequenceAudit     = "audit"
)

// Table: approval_records (one row per target, created zeroed with the target)
type Record struct {
	TargetID        uint64     `gorm:"column:target_id;primaryKey;autoIncrement:false"`
	ApprovalCount   int        `gorm:"column:approval_count;not null;default:0"`
	Quorum          int        `gorm:"column:quorum;not null"`
	FullyApproved   bool       `gorm:"column:fully_approved;not null;default:false"`
	FullyApprovedAt *time.Time `gorm:"column:fully_approved_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Record) TableName() string { return "approval_records" }

func NewRecord(targetID uint64, quorum int) *Record {
	return &Record{TargetID: targetID, Quorum: quorum}
}

func (r *Record) State() State {
	switch {
	case r.FullyApproved:
		return StateFullyApproved
	case r.ApprovalCount > 0:
		return StatePartiallyApproved
	default:
		return StateUnapproved
	}
}

// Register counts one more distinct approval. Callers must have already checked
// that the approver is authorized and has not voted on this target.
func (r *Record) Register(at time.Time) {
	r.ApprovalCount++
	if !r.FullyApproved && r.ApprovalCount >= r.Quorum {
		r.FullyApproved = true
		ts := at.UTC()
		r.FullyApprovedAt = &ts
	}
}

// Table: approval_votes. The unique index is the write-once approvedBy flag.
type Vote struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	TargetID   uint64    `gorm:"column:target_id;not null;uniqueIndex:ux_approval_votes_target_approver,priority:1"`
	Approver   string    `gorm:"column:approver;type:char(42);not null;uniqueIndex:ux_approval_votes_target_approver,priority:2"`
	Count      int       `gorm:"column:count_after;not null"`
	ApprovedAt time.Time `gorm:"column:approved_at;not null"`
}

func (Vote) TableName() string { return "approval_votes" }

// Table: sequences. Named monotonic counters incremented under a row lock.
type Sequence struct {
	Name  string `gorm:"column:name;primaryKey;size:32"`
	Value uint64 `gorm:"column:current_value;not null;default:0"`
}

func (Sequence) TableName() string { return "sequences" }

// Table: ledger_deployments. Single row pinning the roster the ledger was first booted with.
type Deployment struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Fingerprint string    `gorm:"column:fingerprint;type:char(66);not null"`
	Approvers   []string  `gorm:"column:approvers;serializer:json;type:text;not null"`
	Auditors    []string  `gorm:"column:auditors;serializer:json;type:text"`
	Quorum      int       `gorm:"column:quorum;not null"`
	DeployedAt  time.Time `gorm:"column:deployed_at;autoCreateTime"`
}

func (Deployment) TableName() string { return "ledger_deployments" }

const DeploymentID uint64 = 1
