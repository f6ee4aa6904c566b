package calc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
)

// leadSetBracket is one tier of the lead-set commission schedule (§4.6).
type leadSetBracket struct {
	min   decimal.Decimal
	max   decimal.Decimal // nil-equivalent: use hasMax
	hasMax bool
	rate  decimal.Decimal
	label string
}

var leadSetBrackets = []leadSetBracket{
	{min: decimal.NewFromInt(1), max: decimal.NewFromInt(10000), hasMax: true, rate: decimal.NewFromFloat(0.02), label: "1-10k"},
	{min: decimal.NewFromInt(10000), max: decimal.NewFromInt(30000), hasMax: true, rate: decimal.NewFromFloat(0.03), label: "10k-30k"},
	{min: decimal.NewFromInt(30000), hasMax: false, rate: decimal.NewFromFloat(0.04), label: "30k+"},
}

// LeadSetResult is the output of the Lead-Set Calculator (C6) for one
// technician.
type LeadSetResult struct {
	Lines []models.ComputedLine
	Total models.CategoryTotal
}

// ComputeLeadSet runs the tiered-bracket commission calculation (C6) per
// §4.6. Half-open intervals: [1,10000) -> 2%, [10000,30000) -> 3%,
// [30000,+inf) -> 4%.
func ComputeLeadSet(t models.Technician, entries []models.LeadEntry) LeadSetResult {
	result := LeadSetResult{Total: models.CategoryTotal{CategoryTag: models.CategoryLeadSet, Amount: decimal.Zero}}

	if !roster.Eligible(t, roster.CategoryLeadSet) {
		return result
	}

	for _, entry := range entries {
		if !nameMatches(entry.SoldByTechnician, t.Name) {
			continue
		}
		if !entry.Revenue.GreaterThan(decimal.Zero) {
			continue
		}

		bracket := bracketFor(entry.Revenue)
		commission := entry.Revenue.Mul(bracket.rate)

		notes := fmt.Sprintf("%s%% commission on $%s (%s)", bracket.rate.Mul(decimal.NewFromInt(100)).StringFixed(0), entry.Revenue.StringFixed(2), bracket.label)
		if strings.TrimSpace(entry.Notes) != "" {
			notes = notes + "; " + strings.TrimSpace(entry.Notes)
		}

		result.Lines = append(result.Lines, models.ComputedLine{
			Customer:       entry.Customer,
			BusinessUnit:   entry.BusinessUnit,
			CompletionDate: entry.CompletionDate,
			Amount:         commission,
			Notes:          notes,
			CategoryTag:    models.CategoryLeadSet,
		})
		result.Total.Count++
		result.Total.Amount = result.Total.Amount.Add(commission)
	}

	return result
}

// LeadSetSummary aggregates sale and commission for the ledger summary
// cells (leadSetSale, leadSetCommission), computed independently from the
// revenue entries so the sale total does not depend on line filtering.
func LeadSetSummary(lines []models.ComputedLine, entries []models.LeadEntry, t models.Technician) (sale, commission decimal.Decimal) {
	sale, commission = decimal.Zero, decimal.Zero
	for _, entry := range entries {
		if !nameMatches(entry.SoldByTechnician, t.Name) {
			continue
		}
		if !entry.Revenue.GreaterThan(decimal.Zero) {
			continue
		}
		sale = sale.Add(entry.Revenue)
	}
	for _, line := range lines {
		commission = commission.Add(line.Amount)
	}
	return sale, commission
}

func bracketFor(revenue decimal.Decimal) leadSetBracket {
	for _, b := range leadSetBrackets {
		if revenue.LessThan(b.min) {
			continue
		}
		if b.hasMax && !revenue.LessThan(b.max) {
			continue
		}
		return b
	}
	return leadSetBrackets[len(leadSetBrackets)-1]
}
