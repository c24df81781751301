package proposal

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByID(ctx context.Context, id uint64) (*Proposal, error)
	// GetByIDForUpdate locks the row; only meaningful inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Proposal, error)
	// List is newest first.
	List(ctx context.Context) ([]Proposal, error)
	UpdateStatus(ctx context.Context, id uint64, status Status, notes *string) error
	UpdateDocuments(ctx context.Context, id uint64, docs Documents) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
