package adminmock

import (
	"context"
	"time"

	domain "consignado-backend/internal/domain/admin"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, u *domain.User) error
	GetByEmailFn        func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.User, error)
	TouchLastSignedInFn func(ctx context.Context, id uint64, at time.Time) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) TouchLastSignedIn(ctx context.Context, id uint64, at time.Time) error {
	if m.TouchLastSignedInFn != nil {
		return m.TouchLastSignedInFn(ctx, id, at)
	}
	return nil
}
