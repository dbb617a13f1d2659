package usermock

import (
	"context"
	"errors"
	"testing"

	domain "contract-approval/internal/domain/user"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := m.Save(ctx, &domain.User{}); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
	if _, err := m.GetByID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
	if _, err := m.FindByUsernameOrEmail(ctx, "a", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("FindByUsernameOrEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.FindByUsernameAndEmail(ctx, "a", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("FindByUsernameAndEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.FindByUsername(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("FindByUsername default: want context.Canceled, got %v", err)
	}
	if _, err := m.ListByRole(ctx, domain.RolePending); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListByRole default: want context.Canceled, got %v", err)
	}
}

func TestRepo_ListByRole_UsesFunc(t *testing.T) {
	m := &Repo{
		ListByRoleFn: func(_ context.Context, role domain.Role) ([]domain.User, error) {
			if role != domain.RolePending {
				t.Fatalf("role mismatch: %s", role)
			}
			return []domain.User{{ID: "u1"}}, nil
		},
	}
	got, err := m.ListByRole(context.Background(), domain.RolePending)
	if err != nil || len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("ListByRole: got (%v, %v)", got, err)
	}
}
