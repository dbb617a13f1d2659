package mysql

import (
	"context"

	docDomain "contract-approval/internal/domain/document"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

// Content addressed: the same cid always carries the same bytes, so a conflict is not an error.
func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(d).Error
}

func (r *DocumentRepository) GetByCID(ctx context.Context, cid string) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).Where("cid = ?", cid).First(&out)
	return &out, res.Error
}
