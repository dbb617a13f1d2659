package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	ledgerDomain "contract-approval/internal/domain/ledger"

	"gorm.io/gorm"
)

func TestRecordRepository_CreateGetSave(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRecordRepository(db)

	if err := repo.Create(ctx, ledgerDomain.NewRecord(1, 2)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByTargetID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByTargetID: %v", err)
	}
	if got.ApprovalCount != 0 || got.Quorum != 2 || got.FullyApproved {
		t.Fatalf("fresh record not zeroed: %+v", got)
	}

	got.Register(time.Now())
	got.Register(time.Now())
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := repo.GetByTargetIDForUpdate(ctx, 1)
	if err != nil {
		t.Fatalf("GetByTargetIDForUpdate: %v", err)
	}
	if again.ApprovalCount != 2 || !again.FullyApproved || again.FullyApprovedAt == nil {
		t.Fatalf("saved record mismatch: %+v", again)
	}

	if _, err := repo.GetByTargetID(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecordRepository_ListByTargetIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRecordRepository(db)

	for id := uint64(1); id <= 3; id++ {
		if err := repo.Create(ctx, ledgerDomain.NewRecord(id, 1)); err != nil {
			t.Fatalf("Create %d: %v", id, err)
		}
	}
	got, err := repo.ListByTargetIDs(ctx, []uint64{1, 3, 7})
	if err != nil {
		t.Fatalf("ListByTargetIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records, got %d", len(got))
	}
	empty, err := repo.ListByTargetIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty ids: got (%v, %v)", empty, err)
	}
}

func TestVoteRepository_DuplicateRejected(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewVoteRepository(db)
	now := time.Now().UTC()

	if err := repo.Create(ctx, &ledgerDomain.Vote{TargetID: 1, Approver: addrA, Count: 1, ApprovedAt: now}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := repo.Create(ctx, &ledgerDomain.Vote{TargetID: 1, Approver: addrA, Count: 2, ApprovedAt: now})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
	// same approver, other target is fine
	if err := repo.Create(ctx, &ledgerDomain.Vote{TargetID: 2, Approver: addrA, Count: 1, ApprovedAt: now}); err != nil {
		t.Fatalf("vote on other target: %v", err)
	}

	ok, err := repo.Exists(ctx, 1, addrA)
	if err != nil || !ok {
		t.Fatalf("Exists(1, A): got (%v, %v)", ok, err)
	}
	ok, err = repo.Exists(ctx, 1, addrB)
	if err != nil || ok {
		t.Fatalf("Exists(1, B): got (%v, %v)", ok, err)
	}

	votes, err := repo.ListByTarget(ctx, 1)
	if err != nil || len(votes) != 1 || votes[0].Approver != addrA {
		t.Fatalf("ListByTarget: got (%v, %v)", votes, err)
	}
}

func TestSequenceRepository_NextIsGapless(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSequenceRepository(db)

	cur, err := repo.Current(ctx, ledgerDomain.SequenceContracts)
	if err != nil || cur != 0 {
		t.Fatalf("Current before first Next: got (%d, %v)", cur, err)
	}

	for want := uint64(1); want <= 3; want++ {
		var got uint64
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			got, err = (&SequenceRepository{db: tx}).Next(ctx, ledgerDomain.SequenceContracts)
			return err
		})
		if err != nil || got != want {
			t.Fatalf("Next: want %d, got (%d, %v)", want, got, err)
		}
	}

	// a rolled back allocation hands its number back
	sentinel := errors.New("rollback")
	_ = db.Transaction(func(tx *gorm.DB) error {
		if _, err := (&SequenceRepository{db: tx}).Next(ctx, ledgerDomain.SequenceContracts); err != nil {
			t.Fatalf("Next in rollback tx: %v", err)
		}
		return sentinel
	})
	cur, err = repo.Current(ctx, ledgerDomain.SequenceContracts)
	if err != nil || cur != 3 {
		t.Fatalf("Current after rollback: want 3, got (%d, %v)", cur, err)
	}

	// independent counters
	n, err := repo.Next(ctx, ledgerDomain.SequenceAudit)
	if err != nil || n != 1 {
		t.Fatalf("audit Next: want 1, got (%d, %v)", n, err)
	}
}

func TestDeploymentRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDeploymentRepository(db)

	if _, err := repo.Get(ctx); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	roster, err := ledgerDomain.NewRoster([]string{addrA, addrB}, nil, 0)
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	if err := repo.Create(ctx, roster.Deployment()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, roster.Deployment()); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second Create: expected ErrDuplicatedKey, got %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Fingerprint != roster.Fingerprint() || len(got.Approvers) != 2 || got.Quorum != 2 {
		t.Fatalf("deployment mismatch: %+v", got)
	}
	if err := roster.CheckDeployment(got); err != nil {
		t.Fatalf("CheckDeployment: %v", err)
	}
}
