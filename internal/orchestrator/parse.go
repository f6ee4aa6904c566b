package orchestrator

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/dateparse"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/moneyfmt"
	"github.com/nikolai-cardinal/payroll-engine/internal/schema"
	"github.com/nikolai-cardinal/payroll-engine/internal/sheetsource"
)

func buildPBPMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.PBPFields)
}

func buildSpiffMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.SpiffFields)
}

func buildYardSignMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.YardSignFields)
}

func buildLeadSetMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.LeadSetFields)
}

func buildTimesheetMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.TimesheetFields)
}

func buildServiceMapping(header []string) schema.Mapping {
	return schema.BuildMapping(header, sheetsource.ServiceFields)
}

// cellDate parses a date cell via dateparse. An unparseable cell yields the
// zero time rather than failing the whole table; the row itself is kept and
// nothing is logged.
func cellDate(raw string) time.Time {
	t, err := dateparse.ParseCellDate(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parsePBPRows(rows [][]string) ([]models.PBPEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildPBPMapping(rows[0])

	entries := make([]models.PBPEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		entries = append(entries, models.PBPEntry{
			Customer:               schema.CellAt(row, mapping.Column("customer")),
			JobBusinessUnit:        schema.CellAt(row, mapping.Column("businessUnit")),
			CompletionDate:         cellDate(schema.CellAt(row, mapping.Column("completionDate"))),
			PrimaryTechnician:      schema.CellAt(row, mapping.Column("primaryTechnician")),
			AssignedTechniciansRaw: schema.CellAt(row, mapping.Column("assignedTechnicians")),
			ItemName:               schema.CellAt(row, mapping.Column("itemName")),
			CrossSaleGroup:         schema.CellAt(row, mapping.Column("crossSaleGroup")),
		})
	}
	return entries, nil
}

func parseSpiffRows(rows [][]string) ([]models.SpiffBonusEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildSpiffMapping(rows[0])

	entries := make([]models.SpiffBonusEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		entries = append(entries, models.SpiffBonusEntry{
			Customer:            schema.CellAt(row, mapping.Column("customer")),
			JobBusinessUnit:     schema.CellAt(row, mapping.Column("businessUnit")),
			CompletionDate:      cellDate(schema.CellAt(row, mapping.Column("completionDate"))),
			SoldBy:              schema.CellAt(row, mapping.Column("soldBy")),
			AssignedTechnicians: schema.CellAt(row, mapping.Column("assignedTechnicians")),
			ItemName:            schema.CellAt(row, mapping.Column("itemName")),
			BonusAmount:         schema.CellAt(row, mapping.Column("bonusAmount")),
		})
	}
	return entries, nil
}

func parseYardSignRows(rows [][]string) ([]models.YardSignEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildYardSignMapping(rows[0])

	entries := make([]models.YardSignEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		entries = append(entries, models.YardSignEntry{
			Customer:            schema.CellAt(row, mapping.Column("customer")),
			JobNumber:           schema.CellAt(row, mapping.Column("jobNumber")),
			BusinessUnit:        schema.CellAt(row, mapping.Column("businessUnit")),
			CompletionDate:      cellDate(schema.CellAt(row, mapping.Column("completionDate"))),
			JobsTotal:           schema.CellAt(row, mapping.Column("jobsTotal")),
			Tags:                schema.CellAt(row, mapping.Column("tags")),
			AssignedTechnicians: schema.CellAt(row, mapping.Column("assignedTechnicians")),
		})
	}
	return entries, nil
}

func parseLeadSetRows(rows [][]string) ([]models.LeadEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildLeadSetMapping(rows[0])

	entries := make([]models.LeadEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		revenue, err := moneyfmt.ParseAmount(schema.CellAt(row, mapping.Column("revenue")))
		if err != nil {
			revenue = decimal.Zero
		}
		entries = append(entries, models.LeadEntry{
			Customer:         schema.CellAt(row, mapping.Column("customer")),
			BusinessUnit:     schema.CellAt(row, mapping.Column("businessUnit")),
			CompletionDate:   cellDate(schema.CellAt(row, mapping.Column("completionDate"))),
			Revenue:          revenue,
			Notes:            schema.CellAt(row, mapping.Column("notes")),
			SoldByTechnician: schema.CellAt(row, mapping.Column("soldByTechnician")),
		})
	}
	return entries, nil
}

func parseTimesheetRows(rows [][]string) ([]models.TimesheetEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildTimesheetMapping(rows[0])

	entries := make([]models.TimesheetEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		regular, _ := moneyfmt.ParseAmount(schema.CellAt(row, mapping.Column("regularHours")))
		overtime, _ := moneyfmt.ParseAmount(schema.CellAt(row, mapping.Column("overtimeHours")))
		pto := decimal.Zero
		if col := mapping.Column("ptoHours"); col != schema.NotMapped {
			pto, _ = moneyfmt.ParseAmount(schema.CellAt(row, col))
		}
		entries = append(entries, models.TimesheetEntry{
			EmployeeName:  schema.CellAt(row, mapping.Column("employeeName")),
			Date:          cellDate(schema.CellAt(row, mapping.Column("date"))),
			RegularHours:  regular,
			OvertimeHours: overtime,
			PTOHours:      pto,
		})
	}
	return entries, nil
}

func parseServiceRows(rows [][]string) ([]models.ServiceEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	mapping := buildServiceMapping(rows[0])

	entries := make([]models.ServiceEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		sales, _ := moneyfmt.ParseAmount(schema.CellAt(row, mapping.Column("totalSales")))
		revenue, _ := moneyfmt.ParseAmount(schema.CellAt(row, mapping.Column("completedRevenue")))
		jobs, _ := strconv.Atoi(strings.TrimSpace(schema.CellAt(row, mapping.Column("completedJobs"))))
		entries = append(entries, models.ServiceEntry{
			Technician:       schema.CellAt(row, mapping.Column("technician")),
			TotalSales:       sales,
			CompletedRevenue: revenue,
			CompletedJobs:    jobs,
		})
	}
	return entries, nil
}

// parseKPIRows reads the fixed-position KPI source columns (§6): column
// 1=technician, 14=date, 16=percentage. There is no header row to map.
func parseKPIRows(rows [][]string) []models.KPIEntry {
	entries := make([]models.KPIEntry, 0, len(rows))
	for _, row := range rows {
		if allBlank(row) {
			continue
		}
		name := cellAtFixed(row, 0)
		if name == "" {
			continue
		}
		pct, err := moneyfmt.ParsePercent(cellAtFixed(row, 15))
		if err != nil {
			continue
		}
		entries = append(entries, models.KPIEntry{
			Technician: name,
			Date:       cellDate(cellAtFixed(row, 13)),
			Percentage: pct,
		})
	}
	return entries
}

func cellAtFixed(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func allBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
