package factormock

import (
	"context"

	domain "consignado-backend/internal/domain/factor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset reads fail with context.Canceled; unset writes are no-ops.
type Repo struct {
	GetAllFn           func(ctx context.Context) ([]domain.LoanFactor, error)
	GetByTermAndDayFn  func(ctx context.Context, term, day int) (*domain.LoanFactor, error)
	GetDistinctTermsFn func(ctx context.Context) ([]int, error)
	UpsertFn           func(ctx context.Context, term, day int, value string) error
	BulkReplaceFn      func(ctx context.Context, factors []domain.LoanFactor) error
	DeleteFn           func(ctx context.Context, id uint64) error
	DeleteManyFn       func(ctx context.Context, ids []uint64) (int64, error)
}

func (m *Repo) GetAll(ctx context.Context) ([]domain.LoanFactor, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByTermAndDay(ctx context.Context, term, day int) (*domain.LoanFactor, error) {
	if m.GetByTermAndDayFn != nil {
		return m.GetByTermAndDayFn(ctx, term, day)
	}
	return nil, context.Canceled
}

func (m *Repo) GetDistinctTerms(ctx context.Context) ([]int, error) {
	if m.GetDistinctTermsFn != nil {
		return m.GetDistinctTermsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Upsert(ctx context.Context, term, day int, value string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, term, day, value)
	}
	return nil
}

func (m *Repo) BulkReplace(ctx context.Context, factors []domain.LoanFactor) error {
	if m.BulkReplaceFn != nil {
		return m.BulkReplaceFn(ctx, factors)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) DeleteMany(ctx context.Context, ids []uint64) (int64, error) {
	if m.DeleteManyFn != nil {
		return m.DeleteManyFn(ctx, ids)
	}
	return int64(len(ids)), nil
}
