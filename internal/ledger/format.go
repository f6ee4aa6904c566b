package ledger

import (
	"github.com/nikolai-cardinal/payroll-engine/internal/dateparse"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/moneyfmt"
)

// CellValues renders one ComputedLine's display-ready cell strings, in the
// canonical column order (customer, business unit, date, amount, notes,
// tag), per §4.10's display formats.
func CellValues(line models.ComputedLine) [6]string {
	return [6]string{
		line.Customer,
		line.BusinessUnit,
		dateparse.FormatDate(line.CompletionDate),
		moneyfmt.FormatMoney(line.Amount),
		line.Notes,
		string(line.CategoryTag),
	}
}
