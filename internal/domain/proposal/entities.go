package proposal

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("proposal not found")
	ErrInvalidStatus       = errors.New("invalid proposal status")
	ErrInvalidDocumentType = errors.New("invalid document type")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
)

func (a AccountType) Valid() bool { return a == AccountChecking || a == AccountSavings }

type DocumentType string

const (
	DocFrontID          DocumentType = "front-id"
	DocBackID           DocumentType = "back-id"
	DocProofOfResidence DocumentType = "proof-of-residence"
	DocSelfie           DocumentType = "selfie"
)

// Column is the proposals column holding the document URL.
func (d DocumentType) Column() (string, error) {
	switch d {
	case DocFrontID:
		return "front_id_url", nil
	case DocBackID:
		return "back_id_url", nil
	case DocProofOfResidence:
		return "proof_of_residence_url", nil
	case DocSelfie:
		return "selfie_url", nil
	}
	return "", ErrInvalidDocumentType
}

// Proposal is a submitted application. The simulation snapshot is copied at
// submission time and never re-derived from the factor table.
type Proposal struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"id"`

	Principal   string `gorm:"column:principal;size:20;not null" json:"principal"`
	Installment string `gorm:"column:installment;size:20;not null" json:"installment"`
	Term        int    `gorm:"column:term;not null" json:"term"`
	FactorUsed  string `gorm:"column:factor_used;size:20;not null" json:"factor_used"`

	FullName         string `gorm:"column:full_name;size:255;not null" json:"full_name"`
	NationalID       string `gorm:"column:national_id;size:14;not null;index" json:"national_id"`
	BirthDate        string `gorm:"column:birth_date;size:10;not null" json:"birth_date"`
	IdentityDocument string `gorm:"column:identity_document;size:30;not null" json:"identity_document"`
	MotherName       string `gorm:"column:mother_name;size:255;not null" json:"mother_name"`
	Phone            string `gorm:"column:phone;size:20;not null" json:"phone"`

	PostalCode string `gorm:"column:postal_code;size:10;not null" json:"postal_code"`
	Street     string `gorm:"column:street;size:255;not null" json:"street"`
	Number     string `gorm:"column:number;size:20;not null" json:"number"`
	Complement string `gorm:"column:complement;size:100" json:"complement,omitempty"`
	District   string `gorm:"column:district;size:100;not null" json:"district"`
	City       string `gorm:"column:city;size:100;not null" json:"city"`
	State      string `gorm:"column:state;size:2;not null" json:"state"`

	BankName    string      `gorm:"column:bank_name;size:100;not null" json:"bank_name"`
	BankBranch  string      `gorm:"column:bank_branch;size:20;not null" json:"bank_branch"`
	BankAccount string      `gorm:"column:bank_account;size:30;not null" json:"bank_account"`
	AccountType AccountType `gorm:"column:account_type;type:enum('checking','savings');default:'checking';not null" json:"account_type"`

	FrontIDURL          *string `gorm:"column:front_id_url;type:text" json:"front_id_url,omitempty"`
	BackIDURL           *string `gorm:"column:back_id_url;type:text" json:"back_id_url,omitempty"`
	ProofOfResidenceURL *string `gorm:"column:proof_of_residence_url;type:text" json:"proof_of_residence_url,omitempty"`
	SelfieURL           *string `gorm:"column:selfie_url;type:text" json:"selfie_url,omitempty"`

	FolderID  *string `gorm:"column:folder_id;size:100" json:"folder_id,omitempty"`
	FolderURL *string `gorm:"column:folder_url;type:text" json:"folder_url,omitempty"`

	Status Status  `gorm:"column:status;type:enum('pending','under_review','approved','rejected');default:'pending';not null;index" json:"status"`
	Notes  *string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Proposal) TableName() string { return "proposals" }

// Documents is a partial update of the document/folder columns; nil fields are left untouched.
type Documents struct {
	FrontIDURL          *string
	BackIDURL           *string
	ProofOfResidenceURL *string
	SelfieURL           *string
	FolderID            *string
	FolderURL           *string
}

// Columns returns only the set fields, keyed by column name.
func (d Documents) Columns() map[string]any {
	out := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			out[col] = *v
		}
	}
	set("front_id_url", d.FrontIDURL)
	set("back_id_url", d.BackIDURL)
	set("proof_of_residence_url", d.ProofOfResidenceURL)
	set("selfie_url", d.SelfieURL)
	set("folder_id", d.FolderID)
	set("folder_url", d.FolderURL)
	return out
}
