package contractmock

import (
	"context"

	domain "contract-approval/internal/domain/contract"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Contract) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Contract, error)
	ListFn             func(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Contract, error)
	CountFn            func(ctx context.Context, f domain.ListFilter) (uint64, error)
	SaveFn             func(ctx context.Context, c *domain.Contract) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.Contract, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, offset, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context, f domain.ListFilter) (uint64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
