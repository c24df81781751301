package mysql

import (
	"consignado-backend/internal/domain/proposal"
	"consignado-backend/internal/domain/uow"
	"context"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinProposalTx(ctx context.Context, proposalID uint64, fn func(r uow.Repos, p *proposal.Proposal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the proposal row up-front so concurrent document uploads serialise folder creation
		p, err := r.Proposals.GetByIDForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Factors:   &FactorRepository{db: tx},
		Proposals: &ProposalRepository{db: tx},
	}
}
