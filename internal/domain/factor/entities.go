package factor

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("no factor registered for this term/day")
	ErrNoValidFactors = errors.New("no valid factors found")
	ErrEmptyIDs       = errors.New("no factor selected")
	ErrInvalidFactor  = errors.New("invalid factor")
	ErrInvalidTermDay = errors.New("term must be positive and day between 1 and 31")
)

// LoanFactor is the installment-per-unit-of-principal multiplier for one
// (term, day-of-month) pair. Factor keeps the exact text it was imported with.
type LoanFactor struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Term      int       `gorm:"column:term;not null;uniqueIndex:ux_loan_factors_term_day,priority:1" json:"term"`
	Day       int       `gorm:"column:day;not null;uniqueIndex:ux_loan_factors_term_day,priority:2" json:"day"`
	Factor    string    `gorm:"column:factor;size:20;not null" json:"factor"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanFactor) TableName() string { return "loan_factors" }
