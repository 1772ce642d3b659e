package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-app/tally/internal/model"
)

func TestWrite(t *testing.T) {
	catID := uint64(1)
	txns := []model.Transaction{
		{
			ID: 1, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ProcessedDate: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			Description: "COFFEE, LARGE", Amount: decimal.RequireFromString("-4.5"), AccountID: 7,
			CategoryID: &catID, CategoryName: "Coffee", Fingerprint: "1_1_2", FileID: 1,
		},
		{
			ID: 2, Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), ProcessedDate: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			Description: "ORPHAN", Amount: decimal.NewFromInt(10), AccountID: 99,
			CategoryName: model.Uncategorized, Fingerprint: "1_2_3", FileID: 1,
		},
	}
	accts := []model.Account{{ID: 7, Holder: "J DOE", Number: "1234", Kind: model.AccountKindCredit}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, txns, accts))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,processed_date,description,amount,holder,account_number,category,file_id,fingerprint", lines[0])

	var rows []Row
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "COFFEE, LARGE", rows[0].Description)
	assert.Equal(t, "-4.50", rows[0].Amount)
	assert.Equal(t, "1234", rows[0].AccountNumber)
	assert.Equal(t, "Coffee", rows[0].Category)
	assert.Equal(t, "", rows[1].Holder)
	assert.Equal(t, "10.00", rows[1].Amount)
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, nil))
	assert.Equal(t, "date,processed_date,description,amount,holder,account_number,category,file_id,fingerprint\n", buf.String())
}
