package modification

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditDomain "contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/contract"
	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/modification"
	"contract-approval/internal/domain/uow"
	"contract-approval/internal/usecase/audit"
	"contract-approval/pkg/id"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var tracer = otel.Tracer("contract-approval/usecase/modification")

type Metrics interface {
	ModificationObserved(result string)
}

type Usecase struct {
	roster   *ledger.Roster
	repo     modification.Repository
	uow      uow.UnitOfWork
	recorder *audit.Recorder
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewUsecase(roster *ledger.Roster, repo modification.Repository, tx uow.UnitOfWork,
	recorder *audit.Recorder, metrics Metrics, logger *zap.Logger) *Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{
		roster:   roster,
		repo:     repo,
		uow:      tx,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Usecase) observe(result string) {
	if u.metrics != nil {
		u.metrics.ModificationObserved(result)
	}
}

// lockContract takes the contract row lock that serializes every modification of one contract.
func lockContract(ctx context.Context, r uow.Repos, contractID uint64) (*contract.Contract, error) {
	c, err := r.Contracts.GetByIDForUpdate(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTargetNotFound
		}
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*RequestDTO, error) {
	ctx, span := tracer.Start(ctx, "modification.Submit", trace.WithAttributes(attribute.Int64("contract_id", int64(in.ContractID))))
	defer span.End()

	if u.uow == nil {
		return nil, ledger.ErrInvalidConfiguration
	}
	if in.NewValue <= 0 {
		return nil, modification.ErrInvalidValue
	}
	caller := ledger.IdentityKey(in.Caller)
	var req *modification.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := lockContract(ctx, r, in.ContractID)
		if err != nil {
			return err
		}
		if c.Creator != caller {
			return modification.ErrNotCreator
		}
		if in.NewEndDate.Before(c.StartDate) {
			return modification.ErrInvalidPeriod
		}
		if _, err := r.Modifications.GetPendingByContractID(ctx, c.ID); err == nil {
			return modification.ErrPending
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		key := c.ID
		req = &modification.Request{
			RequestID:   id.NewID32(),
			ContractID:  c.ID,
			PendingKey:  &key,
			Description: in.Description,
			NewValue:    in.NewValue,
			NewEndDate:  in.NewEndDate.UTC(),
			RequestedBy: caller,
			Status:      modification.StatusPending,
		}
		if err := r.Modifications.Create(ctx, req); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return modification.ErrPending
			}
			return err
		}
		_, err = u.recorder.Append(ctx, r, audit.Event{
			Identity: caller,
			Role:     string(u.roster.RoleOf(in.Caller)),
			Action:   auditDomain.ActionModificationRequested,
			TargetID: c.ID,
			Details: fmt.Sprintf("request=%s value %.2f -> %.2f, end %s -> %s: %s",
				req.RequestID, c.Value, req.NewValue,
				c.EndDate.Format(dateLayout), req.NewEndDate.Format(dateLayout), req.Description),
			At: u.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	u.observe("requested")
	return toDTO(req), nil
}

func (u *Usecase) Approve(ctx context.Context, in DecideInput) (*RequestDTO, error) {
	return u.decide(ctx, in, modification.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, in DecideInput) (*RequestDTO, error) {
	return u.decide(ctx, in, modification.StatusRejected)
}

// decide closes the pending request. Only approvers decide; an approval applies the
// new terms to the contract but leaves its approval record untouched.
func (u *Usecase) decide(ctx context.Context, in DecideInput, status modification.Status) (*RequestDTO, error) {
	ctx, span := tracer.Start(ctx, "modification."+string(status), trace.WithAttributes(attribute.Int64("contract_id", int64(in.ContractID))))
	defer span.End()

	if u.uow == nil {
		return nil, ledger.ErrInvalidConfiguration
	}
	if !u.roster.IsApprover(in.Caller) {
		return nil, ledger.ErrUnauthorized
	}
	caller := ledger.IdentityKey(in.Caller)
	var req *modification.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := lockContract(ctx, r, in.ContractID)
		if err != nil {
			return err
		}
		req, err = r.Modifications.GetPendingByContractID(ctx, c.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return modification.ErrNoPending
			}
			return err
		}
		now := u.now()
		if err := req.Decide(status, caller, now); err != nil {
			return err
		}
		if err := r.Modifications.Save(ctx, req); err != nil {
			return err
		}

		action := auditDomain.ActionModificationRejected
		details := fmt.Sprintf("request=%s rejected", req.RequestID)
		if status == modification.StatusApproved {
			action = auditDomain.ActionModificationApproved
			details = fmt.Sprintf("request=%s applied value %.2f -> %.2f, end %s -> %s",
				req.RequestID, c.Value, req.NewValue,
				c.EndDate.Format(dateLayout), req.NewEndDate.Format(dateLayout))
			c.Value = req.NewValue
			c.EndDate = req.NewEndDate
			c.IsModified = true
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
		}
		_, err = u.recorder.Append(ctx, r, audit.Event{
			Identity: caller,
			Role:     string(ledger.RoleApprover),
			Action:   action,
			TargetID: c.ID,
			Details:  details,
			At:       now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	u.observe(string(status))
	u.logger.Info("modification decided",
		zap.Uint64("contract_id", in.ContractID),
		zap.String("status", string(status)),
		zap.String("approver", caller),
	)
	return toDTO(req), nil
}

func (u *Usecase) IsPending(ctx context.Context, contractID uint64) (bool, error) {
	_, err := u.repo.GetPendingByContractID(ctx, contractID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	}
	return false, err
}

func (u *Usecase) HasRequest(ctx context.Context, contractID uint64) (bool, error) {
	return u.repo.ExistsForContract(ctx, contractID)
}

// PendingStatus reports whether a request is open and whether one was ever made.
func (u *Usecase) PendingStatus(ctx context.Context, contractID uint64) (*PendingStatusDTO, error) {
	out := &PendingStatusDTO{ContractID: contractID}
	req, err := u.repo.GetPendingByContractID(ctx, contractID)
	switch {
	case err == nil:
		out.Pending, out.HasRequest, out.Request = true, true, toDTO(req)
		return out, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	if out.HasRequest, err = u.HasRequest(ctx, contractID); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListPending(ctx context.Context) ([]RequestDTO, error) {
	rows, err := u.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func toDTO(r *modification.Request) *RequestDTO {
	dto := &RequestDTO{
		RequestID:   r.RequestID,
		ContractID:  r.ContractID,
		Description: r.Description,
		NewValue:    r.NewValue,
		NewEndDate:  r.NewEndDate.Format(dateLayout),
		RequestedBy: r.RequestedBy,
		Status:      string(r.Status),
		DecidedAt:   r.DecidedAt,
		CreatedAt:   r.CreatedAt,
	}
	if r.DecidedBy != nil {
		dto.DecidedBy = *r.DecidedBy
	}
	return dto
}
