package calc

import (
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// ServiceResult is the output of the Service Lookup (C9) for one technician.
type ServiceResult struct {
	CompletedRevenue decimal.Decimal
	TotalSales       decimal.Decimal
	Found            bool
}

// ComputeService copies completedRevenue and totalSales for the matching
// technician row, per §4.9. A missing row leaves the caller's existing
// summary fields unchanged (Found reports false, values are zero).
func ComputeService(t models.Technician, entries []models.ServiceEntry) ServiceResult {
	key := models.NameKey(t.Name)
	for _, entry := range entries {
		if models.NameKey(entry.Technician) != key {
			continue
		}
		return ServiceResult{
			CompletedRevenue: entry.CompletedRevenue,
			TotalSales:       entry.TotalSales,
			Found:            true,
		}
	}
	return ServiceResult{}
}
