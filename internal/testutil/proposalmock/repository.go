package proposalmock

import (
	"context"

	domain "consignado-backend/internal/domain/proposal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Proposal) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Proposal, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Proposal, error)
	ListFn             func(ctx context.Context) ([]domain.Proposal, error)
	UpdateStatusFn     func(ctx context.Context, id uint64, status domain.Status, notes *string) error
	UpdateDocumentsFn  func(ctx context.Context, id uint64, docs domain.Documents) error
	CountByStatusFn    func(ctx context.Context) (map[domain.Status]int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Proposal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Proposal, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Proposal, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Proposal, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, status domain.Status, notes *string) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, notes)
	}
	return nil
}

func (m *Repo) UpdateDocuments(ctx context.Context, id uint64, docs domain.Documents) error {
	if m.UpdateDocumentsFn != nil {
		return m.UpdateDocumentsFn(ctx, id, docs)
	}
	return nil
}

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, context.Canceled
}
