package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type ApproveInput struct {
	TargetID uint64
	Caller   common.Address // recovered signer, never client-asserted
}

type ApprovalDTO struct {
	TargetID      uint64    `json:"target_id"`
	Approver      string    `json:"approver"`
	ApprovalCount int       `json:"approval_count"`
	Quorum        int       `json:"quorum"`
	State         string    `json:"state"`
	IsApproved    bool      `json:"is_approved"`
	ApprovedAt    time.Time `json:"approved_at"`
}

type StatusDTO struct {
	TargetID        uint64     `json:"target_id"`
	ApprovalCount   int        `json:"approval_count"`
	Quorum          int        `json:"quorum"`
	State           string     `json:"state"`
	IsApproved      bool       `json:"is_approved"`
	ApprovedBy      []string   `json:"approved_by"`
	FullyApprovedAt *time.Time `json:"fully_approved_at,omitempty"`
}

type RosterDTO struct {
	Approvers []string `json:"approvers"`
	Auditors  []string `json:"auditors"`
	Quorum    int      `json:"quorum"`
}
