package modification

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetPendingByContractID(ctx context.Context, contractID uint64) (*Request, error)
	ExistsForContract(ctx context.Context, contractID uint64) (bool, error)
	// ListPending returns pending requests oldest first
	ListPending(ctx context.Context) ([]Request, error)
	Save(ctx context.Context, r *Request) error
}
