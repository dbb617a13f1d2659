package uowmock

import (
	"context"
	"errors"

	"contract-approval/internal/domain/ledger"
	"contract-approval/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinTargetTxFn func(ctx context.Context, targetID uint64, fn func(r uow.Repos, rec *ledger.Record) error) error
}

// Passthrough runs every callback directly against repos, with rec handed to WithinTargetTx.
func Passthrough(repos uow.Repos, rec *ledger.Record) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinTargetTxFn: func(_ context.Context, _ uint64, fn func(uow.Repos, *ledger.Record) error) error {
			if rec == nil {
				return ledger.ErrTargetNotFound
			}
			return fn(repos, rec)
		},
	}
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinTargetTx(fn func(context.Context, uint64, func(uow.Repos, *ledger.Record) error) error) *UoW {
	m.WithinTargetTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinTargetTx(ctx context.Context, targetID uint64, fn func(r uow.Repos, rec *ledger.Record) error) error {
	if m.WithinTargetTxFn != nil {
		return m.WithinTargetTxFn(ctx, targetID, fn)
	}
	return errUnimplemented
}
