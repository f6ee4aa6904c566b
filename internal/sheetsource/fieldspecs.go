package sheetsource

import "github.com/nikolai-cardinal/payroll-engine/internal/schema"

// RosterFields maps the canonical roster table ("Main", formerly "Hourly +
// Spiff Pay"). Columns are 1-indexed in §6; fallbacks here are the
// corresponding zero-indexed positions for a workbook that carries no header
// row at all.
var RosterFields = []schema.FieldSpec{
	{Field: "name", Patterns: []string{"name", "technician"}, Fallback: 0},
	{Field: "department", Patterns: []string{"department", "dept"}, Fallback: 1},
	{Field: "position", Patterns: []string{"position", "title", "role"}, Fallback: 2},
	{Field: "baseRate", Patterns: []string{"base rate", "hourly rate", "rate"}, Fallback: 3},
	{Field: "exempt", Patterns: []string{"exempt"}, Fallback: 4},
	{Field: "commissionOverride", Patterns: []string{"commission", "commission override", "commission %"}, Fallback: 7},
	{Field: "pay", Patterns: []string{"pay", "total pay"}, Fallback: 8},
	{Field: "approvalStatus", Patterns: []string{"action", "approval", "approved"}, Fallback: 9},
}

// PBPFields maps the PBP job input table.
var PBPFields = []schema.FieldSpec{
	{Field: "customer", Patterns: []string{"customer", "client"}, Fallback: -1},
	{Field: "businessUnit", Patterns: []string{"business unit", "job business unit"}, Fallback: -1},
	{Field: "completionDate", Patterns: []string{"completion date", "completed", "date"}, Fallback: -1},
	{Field: "primaryTechnician", Patterns: []string{"primary technician", "primary tech", "sold by"}, Fallback: -1},
	{Field: "assignedTechnicians", Patterns: []string{"assigned technicians", "assigned techs", "team"}, Fallback: -1},
	{Field: "itemName", Patterns: []string{"item name", "item", "line item"}, Fallback: -1},
	{Field: "crossSaleGroup", Patterns: []string{"cross sale group", "cross-sale group", "cross sale"}, Fallback: -1},
}

// SpiffFields maps the Spiff/Bonus job input table.
var SpiffFields = []schema.FieldSpec{
	{Field: "customer", Patterns: []string{"customer", "client"}, Fallback: -1},
	{Field: "businessUnit", Patterns: []string{"business unit", "job business unit"}, Fallback: -1},
	{Field: "completionDate", Patterns: []string{"completion date", "completed", "date"}, Fallback: -1},
	{Field: "soldBy", Patterns: []string{"sold by"}, Fallback: -1},
	{Field: "assignedTechnicians", Patterns: []string{"assigned technicians", "assigned techs"}, Fallback: -1},
	{Field: "itemName", Patterns: []string{"item name", "item"}, Fallback: -1},
	{Field: "bonusAmount", Patterns: []string{"bonus amount", "bonus", "amount"}, Fallback: -1},
}

// YardSignFields maps the Yard Sign install input table.
var YardSignFields = []schema.FieldSpec{
	{Field: "customer", Patterns: []string{"customer", "client"}, Fallback: -1},
	{Field: "jobNumber", Patterns: []string{"job number", "job #", "job"}, Fallback: -1},
	{Field: "businessUnit", Patterns: []string{"business unit"}, Fallback: -1},
	{Field: "completionDate", Patterns: []string{"completion date", "completed", "date"}, Fallback: -1},
	{Field: "jobsTotal", Patterns: []string{"jobs total", "total"}, Fallback: -1},
	{Field: "tags", Patterns: []string{"tags", "tag"}, Fallback: -1},
	{Field: "assignedTechnicians", Patterns: []string{"assigned technicians", "assigned techs", "technician"}, Fallback: -1},
}

// LeadSetFields maps the Lead Set revenue input table.
var LeadSetFields = []schema.FieldSpec{
	{Field: "customer", Patterns: []string{"customer", "client"}, Fallback: -1},
	{Field: "businessUnit", Patterns: []string{"business unit"}, Fallback: -1},
	{Field: "completionDate", Patterns: []string{"completion date", "completed", "date"}, Fallback: -1},
	{Field: "revenue", Patterns: []string{"revenue", "sale amount", "sale"}, Fallback: -1},
	{Field: "notes", Patterns: []string{"notes", "note"}, Fallback: -1},
	{Field: "soldByTechnician", Patterns: []string{"sold by", "technician"}, Fallback: -1},
}

// TimesheetFields maps the Time Sheet hours input table.
var TimesheetFields = []schema.FieldSpec{
	{Field: "employeeName", Patterns: []string{"employee", "employee name", "name"}, Fallback: -1},
	{Field: "date", Patterns: []string{"date"}, Fallback: -1},
	{Field: "regularHours", Patterns: []string{"regular hours", "reg hours", "regular"}, Fallback: -1},
	{Field: "overtimeHours", Patterns: []string{"overtime hours", "ot hours", "overtime"}, Fallback: -1},
	{Field: "ptoHours", Patterns: []string{"pto hours", "pto"}, Fallback: -1},
}

// ServiceFields maps the Service revenue input table.
var ServiceFields = []schema.FieldSpec{
	{Field: "technician", Patterns: []string{"technician", "name"}, Fallback: -1},
	{Field: "totalSales", Patterns: []string{"total sales", "sales"}, Fallback: -1},
	{Field: "completedRevenue", Patterns: []string{"completed revenue", "revenue"}, Fallback: -1},
	{Field: "completedJobs", Patterns: []string{"completed jobs", "jobs"}, Fallback: -1},
}

// KPI source columns are fixed by position rather than header text (§6:
// column 1=technician name, column 14=date, column 16=percentage), so no
// FieldSpec table is needed.
