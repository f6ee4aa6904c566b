package calc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
)

const (
	yardSignWithPicAmount = 25
	yardSignPlainAmount   = 10
)

// YardSignResult is the output of the Yard-Sign Calculator (C5) for one
// technician.
type YardSignResult struct {
	Lines []models.ComputedLine
	Total models.CategoryTotal
}

// ComputeYardSign runs the Yard-Sign Calculator (C5) per §4.5: $25 per
// install tagged "yard sign w/ pic" (case-insensitive), else $10.
func ComputeYardSign(t models.Technician, entries []models.YardSignEntry) YardSignResult {
	result := YardSignResult{Total: models.CategoryTotal{CategoryTag: models.CategoryYardSign, Amount: decimal.Zero}}

	if !roster.Eligible(t, roster.CategoryYardSign) {
		return result
	}

	for _, entry := range entries {
		if !nameMatches(entry.AssignedTechnicians, t.Name) {
			continue
		}

		amount := decimal.NewFromInt(yardSignPlainAmount)
		if strings.Contains(strings.ToLower(entry.Tags), "yard sign w/ pic") {
			amount = decimal.NewFromInt(yardSignWithPicAmount)
		}

		result.Lines = append(result.Lines, models.ComputedLine{
			Customer:       entry.Customer,
			BusinessUnit:   entry.BusinessUnit,
			CompletionDate: entry.CompletionDate,
			Amount:         amount,
			Notes:          entry.Tags,
			CategoryTag:    models.CategoryYardSign,
		})
		result.Total.Count++
		result.Total.Amount = result.Total.Amount.Add(amount)
	}

	return result
}
