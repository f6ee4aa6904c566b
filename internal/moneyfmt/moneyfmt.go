// Package moneyfmt normalizes the duck-typed amount and percentage fields
// that arrive from spreadsheet cells: plain numbers, "$"-prefixed strings,
// comma-grouped thousands, or "%"-suffixed percentages.
package moneyfmt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a money cell. It accepts a bare number, a "$"-prefixed
// string, and comma-grouped thousands. Excel error values ("#REF!", "#N/A",
// ...) are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned, err := cleanNumeric(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return d, nil
}

// ParsePercent normalizes a percentage cell to the [0, 1] range. Numeric
// values greater than 1 are assumed to be already expressed out of 100 (e.g.
// 92 means 92%) and are divided down; string values may carry a trailing
// "%" which is stripped before the same rule is applied.
func ParsePercent(raw string) (decimal.Decimal, error) {
	cleaned, err := cleanNumeric(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing percent %q: %w", raw, err)
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		d = d.Div(decimal.NewFromInt(100))
	}
	return d, nil
}

// cleanNumeric strips currency symbols, thousands separators, percent signs,
// and whitespace from a numeric string. It returns an error for Excel error
// values such as "#REF!", "#DIV/0!", "#N/A", "#VALUE!".
func cleanNumeric(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if strings.HasPrefix(s, "#") {
		return "", fmt.Errorf("excel error value found: %s", s)
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "%", "")
	return s, nil
}

// FormatMoney renders a decimal the way the ledger writer displays money
// cells: "$#,##0.00".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(whole)
	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "$" + grouped + "." + frac
}

// groupThousands inserts comma separators every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
