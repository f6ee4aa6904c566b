package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare number", "42.50", "42.5"},
		{"dollar prefixed", "$1,234.56", "1234.56"},
		{"blank is zero", "", "0"},
		{"whitespace padded", "  99 ", "99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			assert.NoError(t, err)
			want, _ := decimal.NewFromString(tc.want)
			assert.True(t, want.Equal(got), "got %s want %s", got, want)
		})
	}
}

func TestParseAmount_ExcelErrorValue(t *testing.T) {
	_, err := ParseAmount("#REF!")
	assert.Error(t, err)
}

func TestParsePercent_ScalesValuesOverOne(t *testing.T) {
	got, err := ParsePercent("92")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.92).Equal(got))
}

func TestParsePercent_AlreadyNormalized(t *testing.T) {
	got, err := ParsePercent("0.87")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.87).Equal(got))
}

func TestParsePercent_TrailingPercentSign(t *testing.T) {
	got, err := ParsePercent("45%")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.45).Equal(got))
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromFloat(1234.5), "$1,234.50"},
		{decimal.NewFromInt(0), "$0.00"},
		{decimal.NewFromFloat(-42.1), "-$42.10"},
		{decimal.NewFromInt(1000000), "$1,000,000.00"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMoney(tc.in))
	}
}
