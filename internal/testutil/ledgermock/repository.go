package ledgermock

import (
	"context"

	domain "contract-approval/internal/domain/ledger"
)

var (
	_ domain.RecordRepository     = (*RecordRepo)(nil)
	_ domain.VoteRepository       = (*VoteRepo)(nil)
	_ domain.SequenceRepository   = (*SequenceRepo)(nil)
	_ domain.DeploymentRepository = (*DeploymentRepo)(nil)
)

// RecordRepo is a function-backed mock that satisfies domain.RecordRepository.
// Unset reads return context.Canceled; unset writes succeed.
type RecordRepo struct {
	CreateFn                 func(ctx context.Context, r *domain.Record) error
	GetByTargetIDFn          func(ctx context.Context, targetID uint64) (*domain.Record, error)
	GetByTargetIDForUpdateFn func(ctx context.Context, targetID uint64) (*domain.Record, error)
	ListByTargetIDsFn        func(ctx context.Context, targetIDs []uint64) ([]domain.Record, error)
	SaveFn                   func(ctx context.Context, r *domain.Record) error
}

func (m *RecordRepo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RecordRepo) GetByTargetID(ctx context.Context, targetID uint64) (*domain.Record, error) {
	if m.GetByTargetIDFn != nil {
		return m.GetByTargetIDFn(ctx, targetID)
	}
	return nil, context.Canceled
}

func (m *RecordRepo) GetByTargetIDForUpdate(ctx context.Context, targetID uint64) (*domain.Record, error) {
	if m.GetByTargetIDForUpdateFn != nil {
		return m.GetByTargetIDForUpdateFn(ctx, targetID)
	}
	return nil, context.Canceled
}

func (m *RecordRepo) ListByTargetIDs(ctx context.Context, targetIDs []uint64) ([]domain.Record, error) {
	if m.ListByTargetIDsFn != nil {
		return m.ListByTargetIDsFn(ctx, targetIDs)
	}
	return nil, context.Canceled
}

func (m *RecordRepo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

// VoteRepo is a function-backed mock that satisfies domain.VoteRepository.
type VoteRepo struct {
	CreateFn       func(ctx context.Context, v *domain.Vote) error
	ExistsFn       func(ctx context.Context, targetID uint64, approver string) (bool, error)
	ListByTargetFn func(ctx context.Context, targetID uint64) ([]domain.Vote, error)
}

func (m *VoteRepo) Create(ctx context.Context, v *domain.Vote) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *VoteRepo) Exists(ctx context.Context, targetID uint64, approver string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, targetID, approver)
	}
	return false, context.Canceled
}

func (m *VoteRepo) ListByTarget(ctx context.Context, targetID uint64) ([]domain.Vote, error) {
	if m.ListByTargetFn != nil {
		return m.ListByTargetFn(ctx, targetID)
	}
	return nil, context.Canceled
}

// SequenceRepo is a function-backed mock that satisfies domain.SequenceRepository.
type SequenceRepo struct {
	NextFn    func(ctx context.Context, name string) (uint64, error)
	CurrentFn func(ctx context.Context, name string) (uint64, error)
}

func (m *SequenceRepo) Next(ctx context.Context, name string) (uint64, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, name)
	}
	return 0, context.Canceled
}

func (m *SequenceRepo) Current(ctx context.Context, name string) (uint64, error) {
	if m.CurrentFn != nil {
		return m.CurrentFn(ctx, name)
	}
	return 0, context.Canceled
}

// DeploymentRepo is a function-backed mock that satisfies domain.DeploymentRepository.
type DeploymentRepo struct {
	GetFn    func(ctx context.Context) (*domain.Deployment, error)
	CreateFn func(ctx context.Context, d *domain.Deployment) error
}

func (m *DeploymentRepo) Get(ctx context.Context) (*domain.Deployment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, context.Canceled
}

func (m *DeploymentRepo) Create(ctx context.Context, d *domain.Deployment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
