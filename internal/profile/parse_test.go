package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"2024-03-07", "03/07/2024", "2024/03/07", "3/7/2024", " 2024-03-07 ", "Mar 7, 2024"} {
		got, err := ParseDate(input)
		require.NoError(t, err, "input: %s", input)
		assert.True(t, want.Equal(got), "input %s: got %s", input, got)
	}

	_, err := ParseDate("not a date")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.50", "12.50"},
		{"-4.00", "-4.00"},
		{"$1,234.56", "1234.56"},
		{"(20.00)", "-20.00"},
		{" 7 ", "7.00"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got.StringFixed(2), "input: %s", tt.input)
	}

	for _, bad := range []string{"", "abc", "$"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, "expected error for input: %q", bad)
	}
}

func TestAmountTransforms(t *testing.T) {
	tests := []struct {
		name   string
		parser AmountParser
		input  string
		want   string
	}{
		{"plain keeps sign", PlainAmount, "-3.25", "-3.25"},
		{"negate charge", NegateAmount, "45.00", "-45.00"},
		{"negate credit", NegateAmount, "-10.00", "10.00"},
		{"withdrawal positive", WithdrawalAmount, "12.00", "-12.00"},
		{"withdrawal blank", WithdrawalAmount, "", "0.00"},
		{"withdrawal zero", WithdrawalAmount, "0", "0.00"},
		{"withdrawal negative", WithdrawalAmount, "-5.00", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parser(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestAmountParserByName(t *testing.T) {
	for _, name := range []string{"", "plain", "negate", "Withdrawal"} {
		p, err := AmountParserByName(name)
		require.NoError(t, err, "name: %s", name)
		assert.NotNil(t, p)
	}
	_, err := AmountParserByName("double")
	assert.Error(t, err)
}

func TestLayoutDate(t *testing.T) {
	parse := LayoutDate("02/01/2006")
	got, err := parse("07/03/2024")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 7, got.Day())

	_, err = parse("2024-03-07")
	assert.Error(t, err)
}
