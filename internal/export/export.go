package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tally-app/tally/internal/model"
)

const dateLayout = "2006-01-02"

// Row is one exported transaction.
type Row struct {
	Date          string `csv:"date"`
	ProcessedDate string `csv:"processed_date"`
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	Holder        string `csv:"holder"`
	AccountNumber string `csv:"account_number"`
	Category      string `csv:"category"`
	FileID        uint64 `csv:"file_id"`
	Fingerprint   string `csv:"fingerprint"`
}

// Rows joins transactions with their accounts. Transactions whose account
// is not in accounts keep empty account columns.
func Rows(txns []model.Transaction, accounts []model.Account) []Row {
	byID := make(map[uint64]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	rows := make([]Row, len(txns))
	for i, t := range txns {
		a := byID[t.AccountID]
		rows[i] = Row{
			Date:          t.Date.Format(dateLayout),
			ProcessedDate: t.ProcessedDate.Format(dateLayout),
			Description:   t.Description,
			Amount:        t.Amount.StringFixed(2),
			Holder:        a.Holder,
			AccountNumber: a.Number,
			Category:      t.CategoryName,
			FileID:        t.FileID,
			Fingerprint:   t.Fingerprint,
		}
	}
	return rows
}

// Write writes transactions as CSV with a header row.
func Write(w io.Writer, txns []model.Transaction, accounts []model.Account) error {
	rows := Rows(txns, accounts)
	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header.
		_, err := io.WriteString(w, "date,processed_date,description,amount,holder,account_number,category,file_id,fingerprint\n")
		return err
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
