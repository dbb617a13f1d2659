package audit

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetBySeq(ctx context.Context, seq uint64) (*Entry, error)
	// ListRecent pages newest first; beforeSeq == 0 starts at the newest entry
	ListRecent(ctx context.Context, beforeSeq uint64, limit int) ([]Entry, error)
	ListByTarget(ctx context.Context, targetID uint64, limit int) ([]Entry, error)
	// ListAscending pages oldest first starting after afterSeq
	ListAscending(ctx context.Context, afterSeq uint64, limit int) ([]Entry, error)
}
