package calc

import (
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// kpiBonusThreshold and kpiBonusAmount implement §4.8's flat bonus: a
// technician whose averaged Call-By-Call score exceeds 90% earns a flat $100.
var (
	kpiBonusThreshold = decimal.NewFromFloat(0.90)
	kpiBonusAmount    = decimal.NewFromInt(100)
)

// KPIResult is the output of the KPI Averager (C8) for one technician.
type KPIResult struct {
	Average decimal.Decimal
	Bonus   decimal.Decimal
}

// ComputeKPI averages the Call-By-Call percentages in entries falling inside
// period, excluding zero-percentage rows, per §4.8. An empty input (after
// exclusion) averages to zero. Scores above 90% earn a flat $100 bonus. KPI
// is never eligibility-gated.
func ComputeKPI(period models.PayPeriod, entries []models.KPIEntry) KPIResult {
	var sum decimal.Decimal
	count := 0

	for _, entry := range entries {
		if !period.Contains(entry.Date) {
			continue
		}
		if entry.Percentage.IsZero() {
			continue
		}
		sum = sum.Add(entry.Percentage)
		count++
	}

	average := decimal.Zero
	if count > 0 {
		average = sum.Div(decimal.NewFromInt(int64(count)))
	}

	bonus := decimal.Zero
	if average.GreaterThan(kpiBonusThreshold) {
		bonus = kpiBonusAmount
	}

	return KPIResult{Average: average, Bonus: bonus}
}

// Index is a process-wide, per-run cache of KPI entries keyed by the
// case-insensitive technician name, built once per run so every technician's
// KPI pass scans its own slice instead of the full input table. Its lifetime
// is one orchestrator run (C11 owns construction and discard).
type Index struct {
	byName map[string][]models.KPIEntry
}

// BuildIndex groups entries by technician name key.
func BuildIndex(entries []models.KPIEntry) *Index {
	idx := &Index{byName: make(map[string][]models.KPIEntry)}
	for _, entry := range entries {
		key := models.NameKey(entry.Technician)
		idx.byName[key] = append(idx.byName[key], entry)
	}
	return idx
}

// For returns the KPI entries belonging to t.
func (idx *Index) For(t models.Technician) []models.KPIEntry {
	return idx.byName[models.NameKey(t.Name)]
}
