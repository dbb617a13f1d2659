package usermock

import (
	"context"

	domain "contract-approval/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, u *domain.User) error
	GetByIDFn                func(ctx context.Context, id string) (*domain.User, error)
	FindByUsernameOrEmailFn  func(ctx context.Context, username, email string) (*domain.User, error)
	FindByUsernameAndEmailFn func(ctx context.Context, username, email string) (*domain.User, error)
	FindByUsernameFn         func(ctx context.Context, username string) (*domain.User, error)
	ListByRoleFn             func(ctx context.Context, role domain.Role) ([]domain.User, error)
	SaveFn                   func(ctx context.Context, u *domain.User) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	if m.FindByUsernameOrEmailFn != nil {
		return m.FindByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByUsernameAndEmail(ctx context.Context, username, email string) (*domain.User, error) {
	if m.FindByUsernameAndEmailFn != nil {
		return m.FindByUsernameAndEmailFn(ctx, username, email)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFn != nil {
		return m.FindByUsernameFn(ctx, username)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if m.ListByRoleFn != nil {
		return m.ListByRoleFn(ctx, role)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}
