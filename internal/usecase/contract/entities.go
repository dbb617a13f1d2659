package contract

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type CreateContractInput struct {
	Creator      common.Address
	Title        string
	Description  string
	SupplierName string
	Value        float64
	FileHash     string
	StartDate    time.Time
	EndDate      time.Time
}

type ContractDTO struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SupplierName  string    `json:"supplier_name"`
	Creator       string    `json:"creator"`
	Value         float64   `json:"value"`
	FileHash      string    `json:"file_hash"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	IsModified    bool      `json:"is_modified"`
	ApprovalCount int       `json:"approval_count"`
	Quorum        int       `json:"quorum"`
	State         string    `json:"state"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListDTO struct {
	Total     uint64        `json:"total"`
	Contracts []ContractDTO `json:"contracts"`
}
