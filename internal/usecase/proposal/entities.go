package proposal

import (
	"time"

	domain "consignado-backend/internal/domain/proposal"
)

type CreateInput struct {
	// simulation snapshot
	Principal   string `json:"principal" validate:"required,posdecimal"`
	Installment string `json:"installment" validate:"required,posdecimal"`
	Term        int    `json:"term" validate:"required,gt=0"`
	FactorUsed  string `json:"factor_used" validate:"required,posdecimal"`

	FullName         string `json:"full_name" validate:"required,min=3"`
	NationalID       string `json:"national_id" validate:"required,cpf"`
	BirthDate        string `json:"birth_date" validate:"required"`
	IdentityDocument string `json:"identity_document" validate:"required,min=5"`
	MotherName       string `json:"mother_name" validate:"required,min=3"`
	Phone            string `json:"phone" validate:"required,min=10"`

	PostalCode string `json:"postal_code" validate:"required"`
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement"`
	District   string `json:"district" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required,len=2"`

	BankName    string             `json:"bank_name" validate:"required"`
	BankBranch  string             `json:"bank_branch" validate:"required"`
	BankAccount string             `json:"bank_account" validate:"required"`
	AccountType domain.AccountType `json:"account_type" validate:"omitempty,oneof=checking savings"`
}

type CreateResult struct {
	ID        uint64        `json:"id"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type UpdateStatusInput struct {
	Status domain.Status `json:"status" validate:"required,oneof=pending under_review approved rejected"`
	Notes  *string       `json:"notes"`
}

type Stats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	UnderReview int64 `json:"under_review"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
}

type UploadInput struct {
	DocumentType  domain.DocumentType `json:"document_type" validate:"required,oneof=front-id back-id proof-of-residence selfie"`
	Base64Content string              `json:"base64_content" validate:"required"`
	MimeType      string              `json:"mime_type" validate:"required"`
}

type UploadResult struct {
	DocumentType domain.DocumentType `json:"document_type"`
	URL          string              `json:"url,omitempty"`
	Error        string              `json:"error,omitempty"`
}

type ExportFormat string

const (
	ExportCSV ExportFormat = "csv" // semicolon separated
	ExportTSV ExportFormat = "tsv"
)

type ExportOptions struct {
	Format ExportFormat
	// Status filters rows; empty exports everything.
	Status domain.Status
}
