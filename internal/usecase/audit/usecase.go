package audit

import (
	"context"
	"errors"
	"fmt"

	domain "contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	verifyBatch  = 500
)

var tracer = otel.Tracer("contract-approval/usecase/audit")

// Recorder appends hash-chained entries. It never opens its own transaction:
// callers pass repos bound to the transaction of the mutation being recorded.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (rc *Recorder) Append(ctx context.Context, r uow.Repos, ev Event) (*domain.Entry, error) {
	// the audit sequence row lock serializes appenders, so seq-1 is the chain head
	seq, err := r.Sequences.Next(ctx, ledger.SequenceAudit)
	if err != nil {
		return nil, fmt.Errorf("allocate audit seq: %w", err)
	}
	prev := domain.GenesisHash
	if seq > 1 {
		p, err := r.Audit.GetBySeq(ctx, seq-1)
		if err != nil {
			return nil, fmt.Errorf("load audit seq %d: %w", seq-1, err)
		}
		prev = p.Hash
	}
	e := &domain.Entry{
		Seq:        seq,
		Identity:   ev.Identity,
		Role:       ev.Role,
		Action:     ev.Action,
		TargetID:   ev.TargetID,
		Details:    ev.Details,
		OccurredAt: ev.At,
	}
	if err := e.Seal(prev); err != nil {
		return nil, err
	}
	if err := r.Audit.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

type Usecase struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewUsecase(repo domain.Repository, logger *zap.Logger) *Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{repo: repo, logger: logger}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// ListRecent returns the trail newest first.
func (u *Usecase) ListRecent(ctx context.Context, beforeSeq uint64, limit int) (*PageDTO, error) {
	ctx, span := tracer.Start(ctx, "audit.ListRecent")
	defer span.End()

	limit = clampLimit(limit)
	rows, err := u.repo.ListRecent(ctx, beforeSeq, limit)
	if err != nil {
		return nil, err
	}
	page := &PageDTO{Entries: make([]EntryDTO, 0, len(rows))}
	for _, e := range rows {
		page.Entries = append(page.Entries, toDTO(e))
	}
	if len(rows) == limit && rows[len(rows)-1].Seq > 1 {
		page.NextBefore = rows[len(rows)-1].Seq
	}
	return page, nil
}

func (u *Usecase) ListByTarget(ctx context.Context, targetID uint64, limit int) ([]EntryDTO, error) {
	ctx, span := tracer.Start(ctx, "audit.ListByTarget")
	defer span.End()
	span.SetAttributes(attribute.Int64("target_id", int64(targetID)))

	rows, err := u.repo.ListByTarget(ctx, targetID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(rows))
	for _, e := range rows {
		out = append(out, toDTO(e))
	}
	return out, nil
}

// Verify walks the whole chain oldest first and stops at the first broken link.
func (u *Usecase) Verify(ctx context.Context) (*VerifyDTO, error) {
	ctx, span := tracer.Start(ctx, "audit.Verify")
	defer span.End()

	res := &VerifyDTO{Valid: true}
	prev := domain.GenesisHash
	var after uint64
	for {
		rows, err := u.repo.ListAscending(ctx, after, verifyBatch)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			e := &rows[i]
			if e.Seq != after+1 {
				res.Valid, res.BrokenAt = false, after+1
				res.Reason = fmt.Sprintf("missing entry %d", after+1)
				u.logger.Warn("audit chain gap", zap.Uint64("seq", after+1))
				return res, nil
			}
			if err := e.VerifyLink(prev); err != nil {
				if !errors.Is(err, domain.ErrBrokenChain) {
					return nil, err
				}
				res.Valid, res.BrokenAt, res.Reason = false, e.Seq, err.Error()
				u.logger.Warn("audit chain broken", zap.Uint64("seq", e.Seq), zap.Error(err))
				return res, nil
			}
			prev, after = e.Hash, e.Seq
			res.Checked++
		}
		if len(rows) < verifyBatch {
			return res, nil
		}
	}
}
