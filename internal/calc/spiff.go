package calc

import (
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/moneyfmt"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
)

// SpiffResult is the output of the Spiff/Bonus Calculator (C4) for one
// technician.
type SpiffResult struct {
	Lines []models.ComputedLine
	Total models.CategoryTotal
}

// ComputeSpiffBonus runs the Spiff/Bonus Calculator (C4) per §4.4: T
// qualifies when soldBy matches T and the assigned list contains T, or when
// soldBy is empty and the assigned list contains T.
func ComputeSpiffBonus(t models.Technician, entries []models.SpiffBonusEntry) SpiffResult {
	result := SpiffResult{Total: models.CategoryTotal{CategoryTag: models.CategorySpiff, Amount: decimal.Zero}}

	if !roster.Eligible(t, roster.CategorySpiffBonus) {
		return result
	}

	for _, entry := range entries {
		amount, err := moneyfmt.ParseAmount(entry.BonusAmount)
		if err != nil || !amount.GreaterThan(decimal.Zero) {
			continue
		}

		assignedContainsT := nameMatches(entry.AssignedTechnicians, t.Name)
		soldByMatches := nameMatches(entry.SoldBy, t.Name)
		soldByEmpty := isBlank(entry.SoldBy)

		qualifies := (soldByMatches && assignedContainsT) || (soldByEmpty && assignedContainsT)
		if !qualifies {
			continue
		}

		result.Lines = append(result.Lines, models.ComputedLine{
			Customer:       entry.Customer,
			BusinessUnit:   entry.JobBusinessUnit,
			CompletionDate: entry.CompletionDate,
			Amount:         amount,
			Notes:          entry.ItemName,
			CategoryTag:    models.CategorySpiff,
		})
		result.Total.Count++
		result.Total.Amount = result.Total.Amount.Add(amount)
	}

	return result
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
