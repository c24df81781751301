package factor

import (
	"context"
	"errors"

	domain "consignado-backend/internal/domain/factor"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log.Named("factor")}
}

// List never fails: public pages get an empty table while the store is down.
func (u *Usecase) List(ctx context.Context) []FactorDTO {
	rows, err := u.repo.GetAll(ctx)
	if err != nil {
		u.log.Warn("list factors", zap.Error(err))
		return []FactorDTO{}
	}
	out := make([]FactorDTO, 0, len(rows))
	for _, f := range rows {
		out = append(out, toDTO(&f))
	}
	return out
}

// Terms never fails, see List.
func (u *Usecase) Terms(ctx context.Context) []int {
	terms, err := u.repo.GetDistinctTerms(ctx)
	if err != nil {
		u.log.Warn("list terms", zap.Error(err))
		return []int{}
	}
	if terms == nil {
		terms = []int{}
	}
	return terms
}

func (u *Usecase) Lookup(ctx context.Context, term, day int) (*FactorDTO, error) {
	f, err := u.repo.GetByTermAndDay(ctx, term, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(f)
	return &dto, nil
}

func (u *Usecase) Upsert(ctx context.Context, in UpsertInput) (*FactorDTO, error) {
	if in.Term <= 0 || in.Day < 1 || in.Day > 31 {
		return nil, domain.ErrInvalidTermDay
	}
	value := normalizeFactor(in.Factor)
	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsPositive() {
		return nil, domain.ErrInvalidFactor
	}
	if err := u.repo.Upsert(ctx, in.Term, in.Day, value); err != nil {
		return nil, err
	}
	u.log.Info("factor upserted", zap.Int("term", in.Term), zap.Int("day", in.Day), zap.String("factor", value))
	return u.Lookup(ctx, in.Term, in.Day)
}

// Import replaces the whole factor table with the CSV content. Nothing is
// touched unless at least one line parses.
func (u *Usecase) Import(ctx context.Context, content string) (*ImportResult, error) {
	parsed, err := ParseCSV(content)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.LoanFactor, len(parsed))
	for i, p := range parsed {
		rows[i] = domain.LoanFactor{Term: p.Term, Day: p.Day, Factor: p.Factor}
	}
	if err := u.repo.BulkReplace(ctx, rows); err != nil {
		return nil, err
	}
	u.log.Info("factors imported", zap.Int("count", len(rows)))
	return &ImportResult{Imported: len(rows)}, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	return u.repo.Delete(ctx, id)
}

func (u *Usecase) DeleteMany(ctx context.Context, ids []uint64) (*DeleteManyResult, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptyIDs
	}
	n, err := u.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &DeleteManyResult{Deleted: n}, nil
}

func toDTO(f *domain.LoanFactor) FactorDTO {
	return FactorDTO{ID: f.ID, Term: f.Term, Day: f.Day, Factor: f.Factor, UpdatedAt: f.UpdatedAt}
}
