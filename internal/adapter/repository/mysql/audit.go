package mysql

import (
	"context"

	auditDomain "contract-approval/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) GetBySeq(ctx context.Context, seq uint64) (*auditDomain.Entry, error) {
	var out auditDomain.Entry
	res := r.db.WithContext(ctx).Where("seq = ?", seq).First(&out)
	return &out, res.Error
}

func (r *AuditRepository) ListRecent(ctx context.Context, beforeSeq uint64, limit int) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	q := r.db.WithContext(ctx).Order("seq DESC").Limit(limit)
	if beforeSeq > 0 {
		q = q.Where("seq < ?", beforeSeq)
	}
	res := q.Find(&out)
	return out, res.Error
}

func (r *AuditRepository) ListByTarget(ctx context.Context, targetID uint64, limit int) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("seq DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *AuditRepository) ListAscending(ctx context.Context, afterSeq uint64, limit int) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("seq > ?", afterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
