package mysql

import (
	"testing"
	"time"

	adminDomain "consignado-backend/internal/domain/admin"
	factorDomain "consignado-backend/internal/domain/factor"
	settingDomain "consignado-backend/internal/domain/setting"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---
type proposalSQLite struct {
	ID                  uint64    `gorm:"primaryKey;column:id"`
	Principal           string    `gorm:"column:principal"`
	Installment         string    `gorm:"column:installment"`
	Term                int       `gorm:"column:term"`
	FactorUsed          string    `gorm:"column:factor_used"`
	FullName            string    `gorm:"column:full_name"`
	NationalID          string    `gorm:"column:national_id"`
	BirthDate           string    `gorm:"column:birth_date"`
	IdentityDocument    string    `gorm:"column:identity_document"`
	MotherName          string    `gorm:"column:mother_name"`
	Phone               string    `gorm:"column:phone"`
	PostalCode          string    `gorm:"column:postal_code"`
	Street              string    `gorm:"column:street"`
	Number              string    `gorm:"column:number"`
	Complement          string    `gorm:"column:complement"`
	District            string    `gorm:"column:district"`
	City                string    `gorm:"column:city"`
	State               string    `gorm:"column:state"`
	BankName            string    `gorm:"column:bank_name"`
	BankBranch          string    `gorm:"column:bank_branch"`
	BankAccount         string    `gorm:"column:bank_account"`
	AccountType         string    `gorm:"type:text;column:account_type"` // ← no enum
	FrontIDURL          *string   `gorm:"column:front_id_url"`
	BackIDURL           *string   `gorm:"column:back_id_url"`
	ProofOfResidenceURL *string   `gorm:"column:proof_of_residence_url"`
	SelfieURL           *string   `gorm:"column:selfie_url"`
	FolderID            *string   `gorm:"column:folder_id"`
	FolderURL           *string   `gorm:"column:folder_url"`
	Status              string    `gorm:"type:text;column:status"` // ← no enum
	Notes               *string   `gorm:"column:notes"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (proposalSQLite) TableName() string { return "proposals" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY sqlite-safe schemas.
// Factor, setting and admin models carry no engine specifics and migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every new connection to ":memory:" is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&factorDomain.LoanFactor{},
		&proposalSQLite{},
		&settingDomain.Setting{},
		&adminDomain.User{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
