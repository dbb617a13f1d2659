package mysql

import (
	"context"
	"errors"
	"testing"

	ledgerDomain "contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		id, err := r.Sequences.Next(ctx, ledgerDomain.SequenceContracts)
		if err != nil {
			return err
		}
		if err := r.Contracts.Create(ctx, makeContract(id, addrP)); err != nil {
			return err
		}
		return r.Records.Create(ctx, ledgerDomain.NewRecord(id, 2))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := NewContractRepository(db).GetByID(ctx, 1); err != nil {
		t.Fatalf("contract not visible after commit: %v", err)
	}
	if _, err := NewRecordRepository(db).GetByTargetID(ctx, 1); err != nil {
		t.Fatalf("record not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	sentinel := errors.New("force rollback")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		id, err := r.Sequences.Next(ctx, ledgerDomain.SequenceContracts)
		if err != nil {
			return err
		}
		if err := r.Contracts.Create(ctx, makeContract(id, addrP)); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	if _, err := NewContractRepository(db).GetByID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("contract should be rolled back, got %v", err)
	}
	n, err := NewSequenceRepository(db).Current(ctx, ledgerDomain.SequenceContracts)
	if err != nil || n != 0 {
		t.Fatalf("sequence should be rolled back, got (%d, %v)", n, err)
	}
}

func TestGormUoW_WithinTargetTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	if err := NewRecordRepository(db).Create(ctx, ledgerDomain.NewRecord(5, 1)); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	err := guow.WithinTargetTx(ctx, 5, func(r uow.Repos, rec *ledgerDomain.Record) error {
		if rec.TargetID != 5 {
			t.Fatalf("locked wrong record: %+v", rec)
		}
		rec.Register(day("2025-02-01"))
		return r.Records.Save(ctx, rec)
	})
	if err != nil {
		t.Fatalf("WithinTargetTx: %v", err)
	}
	got, err := NewRecordRepository(db).GetByTargetID(ctx, 5)
	if err != nil || !got.FullyApproved {
		t.Fatalf("record not updated: (%+v, %v)", got, err)
	}

	called := false
	err = guow.WithinTargetTx(ctx, 6, func(uow.Repos, *ledgerDomain.Record) error {
		called = true
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing record: expected ErrRecordNotFound, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run when the record is missing")
	}
}
