package modification

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type SubmitInput struct {
	ContractID  uint64
	Caller      common.Address
	Description string
	NewValue    float64
	NewEndDate  time.Time
}

type DecideInput struct {
	ContractID uint64
	Caller     common.Address
}

type RequestDTO struct {
	RequestID   string     `json:"request_id"`
	ContractID  uint64     `json:"contract_id"`
	Description string     `json:"description"`
	NewValue    float64    `json:"new_value"`
	NewEndDate  string     `json:"new_end_date"`
	RequestedBy string     `json:"requested_by"`
	Status      string     `json:"status"`
	DecidedBy   string     `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PendingStatusDTO struct {
	ContractID uint64      `json:"contract_id"`
	Pending    bool        `json:"pending"`
	HasRequest bool        `json:"has_request"`
	Request    *RequestDTO `json:"request,omitempty"`
}
