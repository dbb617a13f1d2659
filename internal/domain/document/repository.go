package document

import "context"

type Repository interface {
	// Create is a no-op when the cid is already stored
	Create(ctx context.Context, d *Document) error
	GetByCID(ctx context.Context, cid string) (*Document, error)
}
