package mysql

import (
	"context"

	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Sequences:     &SequenceRepository{db: tx},
		Records:       &RecordRepository{db: tx},
		Votes:         &VoteRepository{db: tx},
		Contracts:     &ContractRepository{db: tx},
		Modifications: &ModificationRepository{db: tx},
		Audit:         &AuditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinTargetTx(ctx context.Context, targetID uint64, fn func(r uow.Repos, rec *ledger.Record) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the approval record up-front to prevent races
		rec, err := r.Records.GetByTargetIDForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		return fn(r, rec)
	})
}
