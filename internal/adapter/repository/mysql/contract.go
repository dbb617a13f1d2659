package mysql

import (
	"context"

	contractDomain "contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *ContractRepository) Tx(ctx context.Context, fn func(repo contractDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ContractRepository{db: tx})
	})
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

// filtered joins each contract to its approval record when a state is asked for.
func (r *ContractRepository) filtered(ctx context.Context, f contractDomain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&contractDomain.Contract{})
	if f.State == "" {
		return q
	}
	q = q.Joins("JOIN approval_records ON approval_records.target_id = contracts.id")
	switch f.State {
	case ledger.StateFullyApproved:
		q = q.Where("approval_records.fully_approved = ?", true)
	case ledger.StatePartiallyApproved:
		q = q.Where("approval_records.fully_approved = ? AND approval_records.approval_count > 0", false)
	default:
		q = q.Where("approval_records.fully_approved = ? AND approval_records.approval_count = 0", false)
	}
	return q
}

func (r *ContractRepository) List(ctx context.Context, f contractDomain.ListFilter, offset, limit int) ([]contractDomain.Contract, error) {
	var out []contractDomain.Contract
	res := r.filtered(ctx, f).
		Select("contracts.*").
		Order("contracts.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ContractRepository) Count(ctx context.Context, f contractDomain.ListFilter) (uint64, error) {
	var n int64
	if err := r.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return uint64(n), nil
}
