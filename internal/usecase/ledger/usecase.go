package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	auditDomain "contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"
	"contract-approval/internal/usecase/audit"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("contract-approval/usecase/ledger")

// StatusCache remembers targets that reached FullyApproved. The state is terminal,
// so a cached true never goes stale; anything else is read from the store.
type StatusCache interface {
	IsFullyApproved(ctx context.Context, targetID uint64) (bool, error)
	MarkFullyApproved(ctx context.Context, targetID uint64) error
}

type Metrics interface {
	ApprovalObserved(result string)
}

type Usecase struct {
	roster   *ledger.Roster
	records  ledger.RecordRepository
	votes    ledger.VoteRepository
	uow      uow.UnitOfWork
	recorder *audit.Recorder

	cache   StatusCache
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time

	// one state-mutating call at a time; the row lock covers other processes
	mu sync.Mutex
}

type Option func(*Usecase)

func WithCache(c StatusCache) Option        { return func(u *Usecase) { u.cache = c } }
func WithMetrics(m Metrics) Option          { return func(u *Usecase) { u.metrics = m } }
func WithLogger(l *zap.Logger) Option       { return func(u *Usecase) { u.logger = l } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(roster *ledger.Roster, records ledger.RecordRepository, votes ledger.VoteRepository,
	tx uow.UnitOfWork, recorder *audit.Recorder, opts ...Option) *Usecase {
	u := &Usecase{
		roster:   roster,
		records:  records,
		votes:    votes,
		uow:      tx,
		recorder: recorder,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Bootstrap pins the roster on first boot and refuses a different one afterwards.
func Bootstrap(ctx context.Context, roster *ledger.Roster, repo ledger.DeploymentRepository) error {
	d, err := repo.Get(ctx)
	switch {
	case err == nil:
		return roster.CheckDeployment(d)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	if err := repo.Create(ctx, roster.Deployment()); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// another instance won the race; its roster must match ours
		if d, err = repo.Get(ctx); err != nil {
			return err
		}
		return roster.CheckDeployment(d)
	}
	return nil
}

func (u *Usecase) Roster() RosterDTO {
	out := RosterDTO{Approvers: []string{}, Auditors: []string{}, Quorum: u.roster.Quorum()}
	for _, a := range u.roster.Approvers() {
		out.Approvers = append(out.Approvers, ledger.IdentityKey(a))
	}
	for _, a := range u.roster.Auditors() {
		out.Auditors = append(out.Auditors, ledger.IdentityKey(a))
	}
	return out
}

func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	ctx, span := tracer.Start(ctx, "ledger.Approve", trace.WithAttributes(
		attribute.Int64("target_id", int64(in.TargetID)),
		attribute.String("caller", ledger.IdentityKey(in.Caller)),
	))
	defer span.End()

	dto, err := u.approve(ctx, in)
	u.observe(dto, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	if u.uow == nil {
		return nil, ledger.ErrInvalidConfiguration
	}
	if !u.roster.IsApprover(in.Caller) {
		return nil, ledger.ErrUnauthorized
	}
	caller := ledger.IdentityKey(in.Caller)

	u.mu.Lock()
	defer u.mu.Unlock()

	var dto *ApprovalDTO
	locked := false
	err := u.uow.WithinTargetTx(ctx, in.TargetID, func(r uow.Repos, rec *ledger.Record) error {
		locked = true
		voted, err := r.Votes.Exists(ctx, in.TargetID, caller)
		if err != nil {
			return err
		}
		if voted {
			return ledger.ErrAlreadyApproved
		}

		now := u.now().UTC()
		rec.Register(now)
		vote := &ledger.Vote{
			TargetID:   in.TargetID,
			Approver:   caller,
			Count:      rec.ApprovalCount,
			ApprovedAt: now,
		}
		if err := r.Votes.Create(ctx, vote); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ledger.ErrAlreadyApproved
			}
			return err
		}
		if err := r.Records.Save(ctx, rec); err != nil {
			return err
		}
		if _, err := u.recorder.Append(ctx, r, audit.Event{
			Identity: caller,
			Role:     string(ledger.RoleApprover),
			Action:   auditDomain.ActionContractApproved,
			TargetID: in.TargetID,
			Details:  approvalDetails(rec),
			At:       now,
		}); err != nil {
			return err
		}

		dto = &ApprovalDTO{
			TargetID:      in.TargetID,
			Approver:      caller,
			ApprovalCount: rec.ApprovalCount,
			Quorum:        rec.Quorum,
			State:         string(rec.State()),
			IsApproved:    rec.FullyApproved,
			ApprovedAt:    now,
		}
		return nil
	})
	if err != nil {
		if !locked && errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTargetNotFound
		}
		return nil, err
	}

	if dto.IsApproved && u.cache != nil {
		if err := u.cache.MarkFullyApproved(ctx, in.TargetID); err != nil {
			u.logger.Warn("status cache write failed", zap.Uint64("target_id", in.TargetID), zap.Error(err))
		}
	}
	u.logger.Info("approval recorded",
		zap.Uint64("target_id", in.TargetID),
		zap.String("approver", caller),
		zap.Int("count", dto.ApprovalCount),
		zap.Int("quorum", dto.Quorum),
	)
	return dto, nil
}

func approvalDetails(rec *ledger.Record) string {
	s := fmt.Sprintf("approval %d of %d", rec.ApprovalCount, rec.Quorum)
	if rec.FullyApproved && rec.ApprovalCount == rec.Quorum {
		s += "; fully approved"
	}
	return s
}

func (u *Usecase) observe(dto *ApprovalDTO, err error) {
	if u.metrics == nil {
		return
	}
	var result string
	switch {
	case err == nil && dto.IsApproved:
		result = "fully_approved"
	case err == nil:
		result = "approved"
	case errors.Is(err, ledger.ErrUnauthorized):
		result = "unauthorized"
	case errors.Is(err, ledger.ErrAlreadyApproved):
		result = "already_approved"
	case errors.Is(err, ledger.ErrTargetNotFound):
		result = "target_not_found"
	default:
		result = "error"
	}
	u.metrics.ApprovalObserved(result)
}

// IsApproved never fails: unknown targets and store errors read as false.
func (u *Usecase) IsApproved(ctx context.Context, targetID uint64) bool {
	ctx, span := tracer.Start(ctx, "ledger.IsApproved", trace.WithAttributes(attribute.Int64("target_id", int64(targetID))))
	defer span.End()

	if u.cache != nil {
		ok, err := u.cache.IsFullyApproved(ctx, targetID)
		if err != nil {
			u.logger.Warn("status cache read failed", zap.Uint64("target_id", targetID), zap.Error(err))
		} else if ok {
			return true
		}
	}
	rec, err := u.records.GetByTargetID(ctx, targetID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			u.logger.Error("load approval record", zap.Uint64("target_id", targetID), zap.Error(err))
		}
		return false
	}
	if rec.FullyApproved && u.cache != nil {
		if err := u.cache.MarkFullyApproved(ctx, targetID); err != nil {
			u.logger.Warn("status cache write failed", zap.Uint64("target_id", targetID), zap.Error(err))
		}
	}
	return rec.FullyApproved
}

// HasApproved never fails; store errors read as false.
func (u *Usecase) HasApproved(ctx context.Context, targetID uint64, identity common.Address) bool {
	ok, err := u.votes.Exists(ctx, targetID, ledger.IdentityKey(identity))
	if err != nil {
		u.logger.Error("load vote", zap.Uint64("target_id", targetID), zap.Error(err))
		return false
	}
	return ok
}

func (u *Usecase) Status(ctx context.Context, targetID uint64) (*StatusDTO, error) {
	ctx, span := tracer.Start(ctx, "ledger.Status", trace.WithAttributes(attribute.Int64("target_id", int64(targetID))))
	defer span.End()

	rec, err := u.records.GetByTargetID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTargetNotFound
		}
		return nil, err
	}
	votes, err := u.votes.ListByTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	dto := &StatusDTO{
		TargetID:        rec.TargetID,
		ApprovalCount:   rec.ApprovalCount,
		Quorum:          rec.Quorum,
		State:           string(rec.State()),
		IsApproved:      rec.FullyApproved,
		ApprovedBy:      make([]string, 0, len(votes)),
		FullyApprovedAt: rec.FullyApprovedAt,
	}
	for _, v := range votes {
		dto.ApprovedBy = append(dto.ApprovedBy, v.Approver)
	}
	return dto, nil
}
