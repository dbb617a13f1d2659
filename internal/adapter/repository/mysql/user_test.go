package mysql

import (
	"context"
	"errors"
	"testing"

	userDomain "contract-approval/internal/domain/user"

	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := userDomain.New("alice", "alice@example.com", "hash", userDomain.RolePending)
	if err := repo.Create(ctx, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := userDomain.New("alice", "other@example.com", "hash", userDomain.RolePending)
	if err := repo.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate username: expected ErrDuplicatedKey, got %v", err)
	}

	if _, err := repo.FindByUsernameOrEmail(ctx, "nobody", "alice@example.com"); err != nil {
		t.Fatalf("FindByUsernameOrEmail by email: %v", err)
	}
	if _, err := repo.FindByUsernameAndEmail(ctx, "alice", "wrong@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("FindByUsernameAndEmail mismatch: expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "alice"); err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}

	pending, err := repo.ListByRole(ctx, userDomain.RolePending)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListByRole: got (%v, %v)", pending, err)
	}

	alice.Role = userDomain.RoleApprover
	alice.BlockchainAddresses = []string{addrA}
	if err := repo.Save(ctx, alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != userDomain.RoleApprover || len(got.BlockchainAddresses) != 1 || got.BlockchainAddresses[0] != addrA {
		t.Fatalf("saved user mismatch: %+v", got)
	}
}
