// Package dateparse parses the handful of date shapes the engine has to
// accept: pay-period label text, "MM_DD_YY" tab names, ISO dates,
// "MM/DD[/YYYY]" cell values, and spreadsheet serial-number dates.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is December 30, 1899 — the day excelize/Excel serial date 0
// represents (one day before the traditional December 31, 1899 epoch, which
// absorbs Lotus 1-2-3's phantom 1900 leap day).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var periodRangePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s*-\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)`)
var periodUnderscorePattern = regexp.MustCompile(`^(\d{1,2})_(\d{1,2})_(\d{2,4})$`)

// ParsePayPeriodRange parses a pay-period display label of the form
// "MM/DD[/YY] - MM/DD[/YY]" or a single "MM_DD_YY" tab-name style token. If
// the label cannot be parsed, the caller should default to the trailing
// seven days, per spec.
func ParsePayPeriodRange(label string, now time.Time) (start, end time.Time, ok bool) {
	label = strings.TrimSpace(label)

	if m := periodRangePattern.FindStringSubmatch(label); m != nil {
		s, errS := parseShortDate(m[1], now.Year())
		e, errE := parseShortDate(m[2], now.Year())
		if errS == nil && errE == nil {
			return s, e, true
		}
	}

	if m := periodUnderscorePattern.FindStringSubmatch(label); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return d, d, true
	}

	return time.Time{}, time.Time{}, false
}

// DefaultTrailingWeek returns the trailing-seven-day window ending at end,
// used whenever a pay period's endpoints are undefined.
func DefaultTrailingWeek(end time.Time) (start, newEnd time.Time) {
	end = end.Truncate(24 * time.Hour)
	return end.AddDate(0, 0, -6), end
}

func parseShortDate(s string, defaultYear int) (time.Time, error) {
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 2:
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return time.Time{}, fmt.Errorf("invalid short date %q", s)
		}
		return time.Date(defaultYear, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	case 3:
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", s)
		}
		if year < 100 {
			year += 2000
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
}

var cellDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseCellDate parses a single date cell: ISO, "MM/DD[/YYYY]", "MM_DD_YY",
// or a bare spreadsheet serial number. A "MM/DD" value without a year is
// placed in the current year.
func ParseCellDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	if m := periodUnderscorePattern.FindStringSubmatch(raw); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	for _, format := range cellDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}

	if strings.Count(raw, "/") == 1 {
		if t, err := parseShortDate(raw, time.Now().Year()); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q", raw)
}

var monthHeaderFormats = []string{
	"Jan-06",
	"January-06",
	"Jan 06",
	"January 06",
	"Jan-2006",
	"January-2006",
	"Jan 2006",
	"January 2006",
	"01/2006",
	"1/2006",
	"2006-01",
	"2006-1",
}

// FormatDate renders a date the way the ledger writer displays date cells:
// "MM/DD/YYYY".
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

// ParseMonthHeader parses a month-column header such as "Dec-25" or
// "December 2025" into the first day of that month.
func ParseMonthHeader(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty month header")
	}
	for _, format := range monthHeaderFormats {
		if t, err := time.Parse(format, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse month header %q", s)
}
