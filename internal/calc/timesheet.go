package calc

import (
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// TimesheetResult is the output of the Timesheet Aggregator (C7) for one
// technician. It has no lines: hours are summed straight into the summary.
type TimesheetResult struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	PTOHours      decimal.Decimal
}

// ComputeTimesheet sums regular, overtime, and PTO hours for entries whose
// employeeName matches t.Name exactly (trimmed, case-insensitive), per §4.7.
// Timesheet is never eligibility-gated.
func ComputeTimesheet(t models.Technician, entries []models.TimesheetEntry) TimesheetResult {
	result := TimesheetResult{RegularHours: decimal.Zero, OvertimeHours: decimal.Zero, PTOHours: decimal.Zero}

	key := models.NameKey(t.Name)
	for _, entry := range entries {
		if models.NameKey(entry.EmployeeName) != key {
			continue
		}
		result.RegularHours = result.RegularHours.Add(entry.RegularHours)
		result.OvertimeHours = result.OvertimeHours.Add(entry.OvertimeHours)
		result.PTOHours = result.PTOHours.Add(entry.PTOHours)
	}

	return result
}
