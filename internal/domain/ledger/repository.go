package ledger

import "context"

type RecordRepository interface {
	Create(ctx context.Context, r *Record) error
	GetByTargetID(ctx context.Context, targetID uint64) (*Record, error)
	// Row-locking read, only meaningful inside a transaction
	GetByTargetIDForUpdate(ctx context.Context, targetID uint64) (*Record, error)
	ListByTargetIDs(ctx context.Context, targetIDs []uint64) ([]Record, error)
	Save(ctx context.Context, r *Record) error
}

type VoteRepository interface {
	// Create fails with gorm.ErrDuplicatedKey on a second vote for the same pair
	Create(ctx context.Context, v *Vote) error
	Exists(ctx context.Context, targetID uint64, approver string) (bool, error)
	ListByTarget(ctx context.Context, targetID uint64) ([]Vote, error)
}

type SequenceRepository interface {
	Next(ctx context.Context, name string) (uint64, error)
	Current(ctx context.Context, name string) (uint64, error)
}

type DeploymentRepository interface {
	Get(ctx context.Context) (*Deployment, error)
	Create(ctx context.Context, d *Deployment) error
}
