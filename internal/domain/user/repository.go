package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// Matches either field
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	// Matches both fields
	FindByUsernameAndEmail(ctx context.Context, username, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Save(ctx context.Context, u *User) error
}
