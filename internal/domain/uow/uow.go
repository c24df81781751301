package uow

import (
	"context"

	"consignado-backend/internal/domain/factor"
	"consignado-backend/internal/domain/proposal"
)

type Repos struct {
	Factors   factor.Repository
	Proposals proposal.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the proposal row first, then pass it in
	WithinProposalTx(ctx context.Context, proposalID uint64, fn func(r Repos, p *proposal.Proposal) error) error
}
