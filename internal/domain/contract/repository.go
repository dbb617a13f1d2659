package contract

import (
	"context"

	"contract-approval/internal/domain/ledger"
)

// ListFilter narrows List and Count. An empty State matches every contract.
type ListFilter struct {
	State ledger.State
}

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	GetByID(ctx context.Context, id uint64) (*Contract, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Contract, error)
	// List returns contracts in ascending id order
	List(ctx context.Context, f ListFilter, offset, limit int) ([]Contract, error)
	Count(ctx context.Context, f ListFilter) (uint64, error)
	Save(ctx context.Context, c *Contract) error
}
