package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditDomain "contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/document"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"
	"contract-approval/internal/usecase/audit"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 50
	maxLimit     = 200
)

var tracer = otel.Tracer("contract-approval/usecase/contract")

type Metrics interface {
	ContractCreated()
}

type Usecase struct {
	roster    *ledger.Roster
	contracts contract.Repository
	records   ledger.RecordRepository
	sequences ledger.SequenceRepository
	uow       uow.UnitOfWork
	recorder  *audit.Recorder
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewUsecase(roster *ledger.Roster, contracts contract.Repository, records ledger.RecordRepository,
	sequences ledger.SequenceRepository, tx uow.UnitOfWork, recorder *audit.Recorder,
	metrics Metrics, logger *zap.Logger) *Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{
		roster:    roster,
		contracts: contracts,
		records:   records,
		sequences: sequences,
		uow:       tx,
		recorder:  recorder,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Create allocates the next target id and creates the contract together with its
// zeroed approval record, so a contract is never visible without one.
func (u *Usecase) Create(ctx context.Context, in CreateContractInput) (*ContractDTO, error) {
	ctx, span := tracer.Start(ctx, "contract.Create")
	defer span.End()

	if u.uow == nil {
		return nil, ledger.ErrInvalidConfiguration
	}
	if in.FileHash != "" {
		if _, err := document.ParseCID(in.FileHash); err != nil {
			return nil, err
		}
	}
	c := &contract.Contract{
		Title:        in.Title,
		Description:  in.Description,
		SupplierName: in.SupplierName,
		Creator:      ledger.IdentityKey(in.Creator),
		Value:        in.Value,
		FileHash:     in.FileHash,
		StartDate:    in.StartDate.UTC(),
		EndDate:      in.EndDate.UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var rec *ledger.Record
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		id, err := r.Sequences.Next(ctx, ledger.SequenceContracts)
		if err != nil {
			return fmt.Errorf("allocate target id: %w", err)
		}
		c.ID = id
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		rec = ledger.NewRecord(id, u.roster.Quorum())
		if err := r.Records.Create(ctx, rec); err != nil {
			return err
		}
		_, err = u.recorder.Append(ctx, r, audit.Event{
			Identity: c.Creator,
			Role:     string(u.roster.RoleOf(in.Creator)),
			Action:   auditDomain.ActionContractCreated,
			TargetID: id,
			Details:  fmt.Sprintf("title=%q supplier=%q value=%.2f", c.Title, c.SupplierName, c.Value),
			At:       u.now(),
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("target_id", int64(c.ID)))
	if u.metrics != nil {
		u.metrics.ContractCreated()
	}
	u.logger.Info("contract created", zap.Uint64("target_id", c.ID), zap.String("creator", c.Creator))
	return toDTO(c, rec), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ContractDTO, error) {
	ctx, span := tracer.Start(ctx, "contract.Get")
	defer span.End()

	c, err := u.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTargetNotFound
		}
		return nil, err
	}
	rec, err := u.records.GetByTargetID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c, rec), nil
}

// Count is the number of targets ever created; ids run 1..Count.
func (u *Usecase) Count(ctx context.Context) (uint64, error) {
	return u.sequences.Current(ctx, ledger.SequenceContracts)
}

// List pages contracts in id order. A non-empty state keeps only contracts whose
// approval record is in that state, and Total counts the matching rows.
func (u *Usecase) List(ctx context.Context, offset, limit int, state ledger.State) (*ListDTO, error) {
	ctx, span := tracer.Start(ctx, "contract.List", trace.WithAttributes(attribute.String("state", string(state))))
	defer span.End()

	if state != "" && !state.Valid() {
		return nil, contract.ErrInvalidState
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}
	filter := contract.ListFilter{State: state}
	total, err := u.contracts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows, err := u.contracts.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(rows))
	for _, c := range rows {
		ids = append(ids, c.ID)
	}
	recs, err := u.records.ListByTargetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*ledger.Record, len(recs))
	for i := range recs {
		byID[recs[i].TargetID] = &recs[i]
	}
	out := &ListDTO{Total: total, Contracts: make([]ContractDTO, 0, len(rows))}
	for i := range rows {
		out.Contracts = append(out.Contracts, *toDTO(&rows[i], byID[rows[i].ID]))
	}
	return out, nil
}

func toDTO(c *contract.Contract, rec *ledger.Record) *ContractDTO {
	dto := &ContractDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		SupplierName: c.SupplierName,
		Creator:      c.Creator,
		Value:        c.Value,
		FileHash:     c.FileHash,
		StartDate:    c.StartDate.Format(dateLayout),
		EndDate:      c.EndDate.Format(dateLayout),
		IsModified:   c.IsModified,
		State:        string(ledger.StateUnapproved),
		CreatedAt:    c.CreatedAt,
	}
	if rec != nil {
		dto.ApprovalCount = rec.ApprovalCount
		dto.Quorum = rec.Quorum
		dto.State = string(rec.State())
		dto.IsApproved = rec.FullyApproved
	}
	return dto
}
