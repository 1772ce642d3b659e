package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-app/tally/internal/profile"
)

func builtin(t *testing.T, id string) profile.Profile {
	t.Helper()
	p, ok := profile.Default().Get(id)
	require.True(t, ok, "profile %s", id)
	return p
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "", "c"}, Tokenize(" a , b,, c "))
	assert.Equal(t, []string{""}, Tokenize(""))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "AMAZON MKTP US", CleanDescription("  AMAZON   MKTP\tUS "))
}

func TestNormalize_Default(t *testing.T) {
	fields := Tokenize("2024-01-05, 2024-01-06, COFFEE   SHOP, J DOE, 1234, -4.50")
	d, err := Normalize(fields, builtin(t, "default"))
	require.NoError(t, err)

	assert.True(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).Equal(d.Date))
	assert.True(t, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC).Equal(d.ProcessedDate))
	assert.Equal(t, "COFFEE SHOP", d.Description)
	assert.Equal(t, "J DOE", d.Holder)
	assert.Equal(t, "1234", d.AccountNumber)
	assert.Equal(t, "-4.50", d.Amount.StringFixed(2))
}

func TestNormalize_Profiles(t *testing.T) {
	tests := []struct {
		profile    string
		line       string
		wantDate   time.Time
		wantDesc   string
		wantHolder string
		wantNumber string
		wantAmount string
	}{
		{
			profile: "amex", line: "03/15/2024,REF123,UBER TRIP,25.00",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "UBER TRIP",
			wantHolder: "American Express", wantNumber: "REF123", wantAmount: "-25.00",
		},
		{
			profile: "chase", line: "2024-03-15,2024-03-16,GROCER,Food,Sale,-60.10",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "GROCER",
			wantHolder: "Chase", wantNumber: "Chase Card", wantAmount: "-60.10",
		},
		{
			profile: "rbc", line: "Chequing,00123-4567,2024/03/15,,PAYROLL,1500.00,",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "PAYROLL",
			wantHolder: "RBC Client", wantNumber: "00123-4567", wantAmount: "1500.00",
		},
		{
			profile: "td", line: "03/15/2024,DEBIT,HYDRO BILL,80.00,,920.00",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "HYDRO BILL",
			wantHolder: "TD Client", wantNumber: "TD Account", wantAmount: "-80.00",
		},
		{
			profile: "td", line: "03/15/2024,CREDIT,REFUND,,20.00,940.00",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "REFUND",
			wantHolder: "TD Client", wantNumber: "TD Account", wantAmount: "0.00",
		},
		{
			profile: "cibc", line: "15/03/2024,PHARMACY,12.34,,500.00",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "PHARMACY",
			wantHolder: "CIBC Client", wantNumber: "CIBC Account", wantAmount: "-12.34",
		},
		{
			profile: "amex", line: "3/5/2024,REF9,TAXI,12.00",
			wantDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantDesc: "TAXI",
			wantHolder: "American Express", wantNumber: "REF9", wantAmount: "-12.00",
		},
		{
			profile: "rbc", line: "Chequing,00123-4567,2024/3/5,,DEPOSIT,50.00,",
			wantDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantDesc: "DEPOSIT",
			wantHolder: "RBC Client", wantNumber: "00123-4567", wantAmount: "50.00",
		},
		{
			profile: "td", line: "3/5/2024,DEBIT,PARKING,6.00,,914.00",
			wantDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantDesc: "PARKING",
			wantHolder: "TD Client", wantNumber: "TD Account", wantAmount: "-6.00",
		},
		{
			profile: "bmo", line: "3/5/2024,GAS STATION,-40.00,860.00",
			wantDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantDesc: "GAS STATION",
			wantHolder: "BMO Client", wantNumber: "BMO Account", wantAmount: "-40.00",
		},
		{
			profile: "cibc", line: "5/3/2024,BAKERY,7.25,,492.75",
			wantDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantDesc: "BAKERY",
			wantHolder: "CIBC Client", wantNumber: "CIBC Account", wantAmount: "-7.25",
		},
		{
			profile: "tangerine", line: "2024-03-15,OTHER,TRANSFER,memo,-100.00",
			wantDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantDesc: "TRANSFER",
			wantHolder: "Tangerine Client", wantNumber: "Tangerine Account", wantAmount: "-100.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.profile+"/"+tt.wantDesc, func(t *testing.T) {
			d, err := Normalize(Tokenize(tt.line), builtin(t, tt.profile))
			require.NoError(t, err)
			assert.True(t, tt.wantDate.Equal(d.Date), "date %s", d.Date)
			assert.True(t, tt.wantDate.Equal(d.ProcessedDate), "processed date %s", d.ProcessedDate)
			assert.Equal(t, tt.wantDesc, d.Description)
			assert.Equal(t, tt.wantHolder, d.Holder)
			assert.Equal(t, tt.wantNumber, d.AccountNumber)
			assert.Equal(t, tt.wantAmount, d.Amount.StringFixed(2))
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	p := builtin(t, "default")
	tests := []struct {
		name string
		line string
	}{
		{"too few columns", "2024-01-05,2024-01-06,COFFEE,J DOE,-4.50"},
		{"too many columns", "2024-01-05,2024-01-06,COFFEE,J DOE,1234,-4.50,extra"},
		{"bad date", "yesterday,2024-01-06,COFFEE,J DOE,1234,-4.50"},
		{"bad processed date", "2024-01-05,soon,COFFEE,J DOE,1234,-4.50"},
		{"bad amount", "2024-01-05,2024-01-06,COFFEE,J DOE,1234,lots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(Tokenize(tt.line), p)
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}

func TestNormalize_ProcessedDateParserOverride(t *testing.T) {
	p := builtin(t, "default")
	p.Parsers.Date = profile.LayoutDate("2006-01-02")
	p.Parsers.ProcessedDate = profile.LayoutDate("02/01/2006")

	d, err := Normalize(Tokenize("2024-01-05,06/01/2024,X,H,N,1"), p)
	require.NoError(t, err)
	assert.Equal(t, 6, d.ProcessedDate.Day())
	assert.Equal(t, time.January, d.ProcessedDate.Month())
}
