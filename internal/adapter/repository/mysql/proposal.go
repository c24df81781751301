package mysql

import (
	"context"

	proposalDomain "consignado-backend/internal/domain/proposal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProposalRepository struct{ db *gorm.DB }

func NewProposalRepository(db *gorm.DB) *ProposalRepository { return &ProposalRepository{db: db} }

func (r *ProposalRepository) Create(ctx context.Context, p *proposalDomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uint64) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) List(ctx context.Context) ([]proposalDomain.Proposal, error) {
	var out []proposalDomain.Proposal
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uint64, status proposalDomain.Status, notes *string) error {
	updates := map[string]any{"status": status}
	if notes != nil {
		updates["notes"] = *notes
	}
	res := r.db.WithContext(ctx).Model(&proposalDomain.Proposal{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.mustExist(ctx, id)
	}
	return nil
}

func (r *ProposalRepository) UpdateDocuments(ctx context.Context, id uint64, docs proposalDomain.Documents) error {
	cols := docs.Columns()
	if len(cols) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&proposalDomain.Proposal{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.mustExist(ctx, id)
	}
	return nil
}

func (r *ProposalRepository) CountByStatus(ctx context.Context) (map[proposalDomain.Status]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&proposalDomain.Proposal{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[proposalDomain.Status]int64, len(rows))
	for _, r := range rows {
		out[proposalDomain.Status(r.Status)] = r.Total
	}
	return out, nil
}

// mustExist distinguishes "no such row" from "row already had these values",
// since MySQL reports zero affected rows for no-op updates.
func (r *ProposalRepository) mustExist(ctx context.Context, id uint64) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&proposalDomain.Proposal{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
