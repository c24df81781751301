package proposal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "consignado-backend/internal/domain/proposal"
	"consignado-backend/internal/domain/uow"
	"consignado-backend/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid proposal")

// StorageOpener resolves the active document store for one request.
type StorageOpener interface {
	Open(ctx context.Context) (*storage.Session, error)
}

type Usecase struct {
	repo    domain.Repository
	uow     uow.UnitOfWork
	storage StorageOpener
	log     *zap.Logger
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, st StorageOpener, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, storage: st, log: log.Named("proposal")}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	p := &domain.Proposal{
		Principal:        in.Principal,
		Installment:      in.Installment,
		Term:             in.Term,
		FactorUsed:       in.FactorUsed,
		FullName:         in.FullName,
		NationalID:       in.NationalID,
		BirthDate:        in.BirthDate,
		IdentityDocument: in.IdentityDocument,
		MotherName:       in.MotherName,
		Phone:            in.Phone,
		PostalCode:       in.PostalCode,
		Street:           in.Street,
		Number:           in.Number,
		Complement:       in.Complement,
		District:         in.District,
		City:             in.City,
		State:            in.State,
		BankName:         in.BankName,
		BankBranch:       in.BankBranch,
		BankAccount:      in.BankAccount,
		AccountType:      in.AccountType,
		Status:           domain.StatusPending,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info("proposal created", zap.Uint64("proposal_id", p.ID), zap.Int("term", p.Term))
	return &CreateResult{ID: p.ID, Status: p.Status, CreatedAt: p.CreatedAt}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Proposal, error) {
	p, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List degrades to an empty list when the store is unreachable.
func (u *Usecase) List(ctx context.Context) []domain.Proposal {
	rows, err := u.repo.List(ctx)
	if err != nil {
		u.log.Warn("list proposals", zap.Error(err))
		return []domain.Proposal{}
	}
	if rows == nil {
		rows = []domain.Proposal{}
	}
	return rows
}

func (u *Usecase) UpdateStatus(ctx context.Context, id uint64, in UpdateStatusInput) error {
	if !in.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	err := u.repo.UpdateStatus(ctx, id, in.Status, in.Notes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	u.log.Info("proposal status changed", zap.Uint64("proposal_id", id), zap.String("status", string(in.Status)))
	return nil
}

// Stats degrades to zero counts when the store is unreachable.
func (u *Usecase) Stats(ctx context.Context) Stats {
	counts, err := u.repo.CountByStatus(ctx)
	if err != nil {
		u.log.Warn("count proposals", zap.Error(err))
		return Stats{}
	}
	s := Stats{
		Pending:     counts[domain.StatusPending],
		UnderReview: counts[domain.StatusUnderReview],
		Approved:    counts[domain.StatusApproved],
		Rejected:    counts[domain.StatusRejected],
	}
	s.Total = s.Pending + s.UnderReview + s.Approved + s.Rejected
	return s
}

func validateCreate(in *CreateInput) error {
	trim := func(fields ...*string) {
		for _, f := range fields {
			*f = strings.TrimSpace(*f)
		}
	}
	trim(&in.Principal, &in.Installment, &in.FactorUsed, &in.FullName, &in.NationalID, &in.BirthDate,
		&in.IdentityDocument, &in.MotherName, &in.Phone, &in.PostalCode, &in.Street, &in.Number,
		&in.Complement, &in.District, &in.City, &in.State, &in.BankName, &in.BankBranch, &in.BankAccount)
	in.State = strings.ToUpper(in.State)
	for _, f := range []*string{&in.Principal, &in.Installment, &in.FactorUsed} {
		*f = strings.Replace(*f, ",", ".", 1)
	}

	var missing []string
	required := []struct {
		name string
		val  string
	}{
		{"principal", in.Principal}, {"installment", in.Installment}, {"factor_used", in.FactorUsed},
		{"full_name", in.FullName}, {"national_id", in.NationalID}, {"birth_date", in.BirthDate},
		{"identity_document", in.IdentityDocument}, {"mother_name", in.MotherName}, {"phone", in.Phone},
		{"postal_code", in.PostalCode}, {"street", in.Street}, {"number", in.Number},
		{"district", in.District}, {"city", in.City}, {"state", in.State},
		{"bank_name", in.BankName}, {"bank_branch", in.BankBranch}, {"bank_account", in.BankAccount},
	}
	for _, r := range required {
		if r.val == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if in.Term <= 0 {
		return fmt.Errorf("%w: term must be positive", ErrInvalidInput)
	}
	for _, amt := range []struct{ name, val string }{
		{"principal", in.Principal}, {"installment", in.Installment}, {"factor_used", in.FactorUsed},
	} {
		d, err := decimal.NewFromString(amt.val)
		if err != nil || !d.IsPositive() {
			return fmt.Errorf("%w: %s must be a positive number", ErrInvalidInput, amt.name)
		}
	}
	if len(digitsOnly(in.NationalID)) != 11 {
		return fmt.Errorf("%w: national_id must have 11 digits", ErrInvalidInput)
	}
	if len(in.State) != 2 {
		return fmt.Errorf("%w: state must be a 2-letter code", ErrInvalidInput)
	}
	if in.AccountType == "" {
		in.AccountType = domain.AccountChecking
	}
	if !in.AccountType.Valid() {
		return fmt.Errorf("%w: account_type must be checking or savings", ErrInvalidInput)
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
