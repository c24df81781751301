package uowmock

import (
	"context"
	"errors"

	"consignado-backend/internal/domain/proposal"
	"consignado-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinProposalTxFn func(ctx context.Context, proposalID uint64, fn func(r uow.Repos, p *proposal.Proposal) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinProposalTx(fn func(context.Context, uint64, func(uow.Repos, *proposal.Proposal) error) error) *UoW {
	m.WithinProposalTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs every callback directly against repos, with no transaction.
// WithinProposalTx loads the proposal through repos.Proposals.GetByIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinProposalTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *proposal.Proposal) error) error {
			p, err := repos.Proposals.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, p)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinProposalTx(ctx context.Context, proposalID uint64, fn func(r uow.Repos, p *proposal.Proposal) error) error {
	if m.WithinProposalTxFn != nil {
		return m.WithinProposalTxFn(ctx, proposalID, fn)
	}
	return errUnimplemented
}
