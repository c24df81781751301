package factor

import "context"

type Repository interface {
	// GetAll is ordered by term, then day.
	GetAll(ctx context.Context) ([]LoanFactor, error)
	GetByTermAndDay(ctx context.Context, term, day int) (*LoanFactor, error)
	// GetDistinctTerms returns ascending terms with at least one factor.
	GetDistinctTerms(ctx context.Context) ([]int, error)
	// Upsert inserts or replaces the factor for (term, day).
	Upsert(ctx context.Context, term, day int, value string) error
	// BulkReplace deletes every factor and inserts the given ones atomically.
	BulkReplace(ctx context.Context, factors []LoanFactor) error
	Delete(ctx context.Context, id uint64) error
	// DeleteMany returns how many of the ids existed.
	DeleteMany(ctx context.Context, ids []uint64) (int64, error)
}
