package audit

import (
	"time"

	domain "contract-approval/internal/domain/audit"
)

// Event is what a mutation asks the trail to record.
type Event struct {
	Identity string
	Role     string
	Action   domain.Action
	TargetID uint64
	Details  string
	At       time.Time
}

type EntryDTO struct {
	Seq       uint64    `json:"seq"`
	Identity  string    `json:"identity"`
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	TargetID  uint64    `json:"target_id"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
	Hash      string    `json:"hash"`
}

// PageDTO is newest first. NextBefore feeds the next call's before cursor; 0 means done.
type PageDTO struct {
	Entries    []EntryDTO `json:"entries"`
	NextBefore uint64     `json:"next_before,omitempty"`
}

type VerifyDTO struct {
	Valid    bool   `json:"valid"`
	Checked  uint64 `json:"checked"`
	BrokenAt uint64 `json:"broken_at,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func toDTO(e domain.Entry) EntryDTO {
	return EntryDTO{
		Seq:       e.Seq,
		Identity:  e.Identity,
		Role:      e.Role,
		Action:    string(e.Action),
		TargetID:  e.TargetID,
		Timestamp: e.OccurredAt.UTC(),
		Details:   e.Details,
		Hash:      e.Hash,
	}
}
