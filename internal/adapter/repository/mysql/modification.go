package mysql

import (
	"context"

	modDomain "contract-approval/internal/domain/modification"

	"gorm.io/gorm"
)

type ModificationRepository struct{ db *gorm.DB }

func NewModificationRepository(db *gorm.DB) *ModificationRepository {
	return &ModificationRepository{db: db}
}

func (r *ModificationRepository) Create(ctx context.Context, m *modDomain.Request) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ModificationRepository) Save(ctx context.Context, m *modDomain.Request) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ModificationRepository) GetPendingByContractID(ctx context.Context, contractID uint64) (*modDomain.Request, error) {
	var out modDomain.Request
	res := r.db.WithContext(ctx).
		Where("contract_id = ? AND status = ?", contractID, modDomain.StatusPending).
		First(&out)
	return &out, res.Error
}

func (r *ModificationRepository) ExistsForContract(ctx context.Context, contractID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&modDomain.Request{}).
		Where("contract_id = ?", contractID).
		Count(&n)
	return n > 0, res.Error
}

func (r *ModificationRepository) ListPending(ctx context.Context) ([]modDomain.Request, error) {
	var out []modDomain.Request
	res := r.db.WithContext(ctx).
		Where("status = ?", modDomain.StatusPending).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
