package mysql

import (
	"context"
	"errors"

	ledgerDomain "contract-approval/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

func (r *RecordRepository) Create(ctx context.Context, rec *ledgerDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecordRepository) GetByTargetID(ctx context.Context, targetID uint64) (*ledgerDomain.Record, error) {
	var out ledgerDomain.Record
	res := r.db.WithContext(ctx).Where("target_id = ?", targetID).First(&out)
	return &out, res.Error
}

// SELECT ... FOR UPDATE; sqlite ignores the locking clause
func (r *RecordRepository) GetByTargetIDForUpdate(ctx context.Context, targetID uint64) (*ledgerDomain.Record, error) {
	var out ledgerDomain.Record
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("target_id = ?", targetID).
		First(&out)
	return &out, res.Error
}

func (r *RecordRepository) ListByTargetIDs(ctx context.Context, targetIDs []uint64) ([]ledgerDomain.Record, error) {
	var out []ledgerDomain.Record
	if len(targetIDs) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).Where("target_id IN ?", targetIDs).Find(&out)
	return out, res.Error
}

func (r *RecordRepository) Save(ctx context.Context, rec *ledgerDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

type VoteRepository struct{ db *gorm.DB }

func NewVoteRepository(db *gorm.DB) *VoteRepository { return &VoteRepository{db: db} }

func (r *VoteRepository) Create(ctx context.Context, v *ledgerDomain.Vote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VoteRepository) Exists(ctx context.Context, targetID uint64, approver string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.Vote{}).
		Where("target_id = ? AND approver = ?", targetID, approver).
		Count(&n)
	return n > 0, res.Error
}

func (r *VoteRepository) ListByTarget(ctx context.Context, targetID uint64) ([]ledgerDomain.Vote, error) {
	var out []ledgerDomain.Vote
	res := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Next must run inside a transaction: the row lock is what serializes allocations,
// and a rollback hands the number back.
func (r *SequenceRepository) Next(ctx context.Context, name string) (uint64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ledgerDomain.Sequence{Name: name}).Error; err != nil {
		return 0, err
	}
	var s ledgerDomain.Sequence
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&s).Error; err != nil {
		return 0, err
	}
	s.Value++
	if err := db.Model(&ledgerDomain.Sequence{}).
		Where("name = ?", name).
		Update("current_value", s.Value).Error; err != nil {
		return 0, err
	}
	return s.Value, nil
}

func (r *SequenceRepository) Current(ctx context.Context, name string) (uint64, error) {
	var s ledgerDomain.Sequence
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return s.Value, err
}

type DeploymentRepository struct{ db *gorm.DB }

func NewDeploymentRepository(db *gorm.DB) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

func (r *DeploymentRepository) Get(ctx context.Context) (*ledgerDomain.Deployment, error) {
	var out ledgerDomain.Deployment
	res := r.db.WithContext(ctx).Where("id = ?", ledgerDomain.DeploymentID).First(&out)
	return &out, res.Error
}

func (r *DeploymentRepository) Create(ctx context.Context, d *ledgerDomain.Deployment) error {
	return r.db.WithContext(ctx).Create(d).Error
}
