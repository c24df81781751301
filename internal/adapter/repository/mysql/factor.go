package mysql

import (
	"context"
	"time"

	factorDomain "consignado-backend/internal/domain/factor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const factorBatchSize = 100

type FactorRepository struct{ db *gorm.DB }

func NewFactorRepository(db *gorm.DB) *FactorRepository { return &FactorRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *FactorRepository) Tx(ctx context.Context, fn func(repo factorDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FactorRepository{db: tx})
	})
}

func (r *FactorRepository) GetAll(ctx context.Context) ([]factorDomain.LoanFactor, error) {
	var out []factorDomain.LoanFactor
	err := r.db.WithContext(ctx).Order("term ASC, day ASC").Find(&out).Error
	return out, err
}

func (r *FactorRepository) GetByTermAndDay(ctx context.Context, term, day int) (*factorDomain.LoanFactor, error) {
	var out factorDomain.LoanFactor
	res := r.db.WithContext(ctx).Where("term = ? AND day = ?", term, day).First(&out)
	return &out, res.Error
}

func (r *FactorRepository) GetDistinctTerms(ctx context.Context) ([]int, error) {
	var terms []int
	err := r.db.WithContext(ctx).
		Model(&factorDomain.LoanFactor{}).
		Distinct("term").
		Order("term ASC").
		Pluck("term", &terms).Error
	return terms, err
}

func (r *FactorRepository) Upsert(ctx context.Context, term, day int, value string) error {
	row := &factorDomain.LoanFactor{Term: term, Day: day, Factor: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "term"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"factor", "updated_at"}),
	}).Create(row).Error
}

// BulkReplace wipes the table and inserts factors in batches inside one
// transaction, so readers never observe an empty table.
func (r *FactorRepository) BulkReplace(ctx context.Context, factors []factorDomain.LoanFactor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&factorDomain.LoanFactor{}).Error; err != nil {
			return err
		}
		if len(factors) == 0 {
			return nil
		}
		rows := make([]factorDomain.LoanFactor, len(factors))
		for i, f := range factors {
			rows[i] = factorDomain.LoanFactor{Term: f.Term, Day: f.Day, Factor: f.Factor}
		}
		return tx.CreateInBatches(rows, factorBatchSize).Error
	})
}

func (r *FactorRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&factorDomain.LoanFactor{}, id).Error
}

func (r *FactorRepository) DeleteMany(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, factorDomain.ErrEmptyIDs
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&factorDomain.LoanFactor{})
	return res.RowsAffected, res.Error
}
