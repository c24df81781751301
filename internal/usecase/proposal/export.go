package proposal

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	domain "consignado-backend/internal/domain/proposal"
)

var exportHeader = []string{
	"ID", "Full name", "National ID", "Birth date", "Identity document", "Mother's name", "Phone",
	"Postal code", "Street", "Number", "Complement", "District", "City", "State",
	"Bank", "Branch", "Account", "Account type",
	"Principal", "Installment", "Term", "Factor", "Status", "Created at",
}

// Export writes proposals as a flat file (UTF-8 with BOM so spreadsheets
// detect the encoding) and returns how many rows were written.
func (u *Usecase) Export(ctx context.Context, w io.Writer, opts ExportOptions) (int, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if opts.Status != "" && !opts.Status.Valid() {
		return 0, domain.ErrInvalidStatus
	}

	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if opts.Format == ExportTSV {
		cw.Comma = '\t'
	}
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}

	n := 0
	for _, p := range rows {
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		rec := []string{
			strconv.FormatUint(p.ID, 10), p.FullName, p.NationalID, p.BirthDate, p.IdentityDocument,
			p.MotherName, p.Phone, p.PostalCode, p.Street, p.Number, p.Complement, p.District, p.City,
			p.State, p.BankName, p.BankBranch, p.BankAccount, string(p.AccountType),
			p.Principal, p.Installment, strconv.Itoa(p.Term), p.FactorUsed, string(p.Status),
			p.CreatedAt.Format("02/01/2006"),
		}
		if err := cw.Write(rec); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}
