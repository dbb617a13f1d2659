package uow

import (
	"context"

	"contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/modification"
)

// domain/uow/uow.go
type Repos struct {
	Sequences     ledger.SequenceRepository
	Records       ledger.RecordRepository
	Votes         ledger.VoteRepository
	Contracts     contract.Repository
	Modifications modification.Repository
	Audit         audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the target's approval record first, then pass it in
	WithinTargetTx(ctx context.Context, targetID uint64, fn func(r Repos, rec *ledger.Record) error) error
}
