package settingmock

import (
	"context"

	domain "consignado-backend/internal/domain/setting"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetFn    func(ctx context.Context, key string) (string, error)
	UpsertFn func(ctx context.Context, key, value string, description *string) error
	ListFn   func(ctx context.Context) ([]domain.Setting, error)
}

func (m *Repo) Get(ctx context.Context, key string) (string, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return "", nil
}

func (m *Repo) Upsert(ctx context.Context, key, value string, description *string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, key, value, description)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Setting, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// Map returns a mock backed by an in-memory map, useful for storage wiring tests.
func Map(vals map[string]string) *Repo {
	return &Repo{
		GetFn: func(_ context.Context, key string) (string, error) { return vals[key], nil },
		UpsertFn: func(_ context.Context, key, value string, _ *string) error {
			vals[key] = value
			return nil
		},
	}
}
