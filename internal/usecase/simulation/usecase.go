package simulation

import (
	"context"
	"errors"
	"strings"

	"consignado-backend/internal/domain/factor"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("value and term must be positive and day between 1 and 31")
	ErrInvalidMode  = errors.New("mode must be byInstallment or byPrincipal")
)

const centPlaces = 2

type Usecase struct {
	factors factor.Repository
	log     *zap.Logger
}

func NewUsecase(factors factor.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{factors: factors, log: log.Named("simulation")}
}

func (u *Usecase) Simulate(ctx context.Context, req Request) (*Result, error) {
	switch req.Mode {
	case ModeByInstallment:
		return u.FromInstallment(ctx, req.Value, req.Term, req.Day)
	case ModeByPrincipal:
		return u.FromPrincipal(ctx, req.Value, req.Term, req.Day)
	}
	return nil, ErrInvalidMode
}

// FromInstallment answers "how much can I borrow paying this per month":
// principal = installment / factor.
func (u *Usecase) FromInstallment(ctx context.Context, installment float64, term, day int) (*Result, error) {
	f, raw, err := u.factorFor(ctx, installment, term, day)
	if err != nil {
		return nil, err
	}
	principal := decimal.NewFromFloat(installment).Div(f).Round(centPlaces)
	return &Result{
		Principal:   principal.InexactFloat64(),
		Installment: installment,
		Term:        term,
		FactorUsed:  raw,
	}, nil
}

// FromPrincipal answers "what will I pay per month for this amount":
// installment = principal * factor.
func (u *Usecase) FromPrincipal(ctx context.Context, principal float64, term, day int) (*Result, error) {
	f, raw, err := u.factorFor(ctx, principal, term, day)
	if err != nil {
		return nil, err
	}
	installment := decimal.NewFromFloat(principal).Mul(f).Round(centPlaces)
	return &Result{
		Principal:   principal,
		Installment: installment.InexactFloat64(),
		Term:        term,
		FactorUsed:  raw,
	}, nil
}

func (u *Usecase) factorFor(ctx context.Context, value float64, term, day int) (decimal.Decimal, string, error) {
	if value <= 0 || term <= 0 || day < 1 || day > 31 {
		return decimal.Zero, "", ErrInvalidInput
	}
	row, err := u.factors.GetByTermAndDay(ctx, term, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, "", factor.ErrNotFound
	}
	if err != nil {
		return decimal.Zero, "", err
	}
	f, err := decimal.NewFromString(strings.TrimSpace(row.Factor))
	if err != nil || !f.IsPositive() {
		u.log.Error("stored factor is not a positive number",
			zap.Int("term", term), zap.Int("day", day), zap.String("factor", row.Factor))
		return decimal.Zero, "", factor.ErrInvalidFactor
	}
	return f, row.Factor, nil
}
