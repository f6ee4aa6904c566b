// Package models holds the pure data types shared across the compensation
// engine: technicians, the pay period window, the per-category input rows,
// and the per-technician output ledger.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Class is a technician's skill tier. ClassUnknown technicians start a PBP
// job with no paying role; team refinement can still give them one (a solo
// job, or an unknown-class primary promoted to Lead).
type Class int

const (
	ClassUnknown Class = iota
	Class1
	Class2
	Class3
	Class4
)

// Role is the paying role assigned to a technician on a single PBP job.
type Role int

const (
	RoleNone Role = iota
	RoleAssistant
	RoleLead
)

// Technician is the roster record resolved by the Roster & Eligibility
// Resolver (C1). Name is the unique, case-insensitive match key.
type Technician struct {
	ID                   uuid.UUID
	Name                 string
	Department           string
	Position             string
	BaseHourlyRate       decimal.Decimal
	CommissionPctOverride decimal.NullDecimal
	Exempt               bool
	Class                Class
	SplitDefault         decimal.Decimal // 0, 35, or 65
	ApprovalStatus       string          // observational only, never gates computation
}

// NameKey returns the case-insensitive, whitespace-trimmed key used for name
// matching throughout the engine.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsApprenticeZeroPercent reports whether t is an apprentice with an explicit
// 0% commission override, which short-circuits every eligibility-gated
// category to zero regardless of other inputs.
func (t Technician) IsApprenticeZeroPercent() bool {
	if !isApprenticeTitle(t.Position) {
		return false
	}
	return t.CommissionPctOverride.Valid && t.CommissionPctOverride.Decimal.IsZero()
}

func isApprenticeTitle(position string) bool {
	p := strings.ToLower(position)
	return strings.Contains(p, "assist") || strings.Contains(p, "apprentice") || strings.Contains(p, "helper")
}

// Category identifies the compensation category a ComputedLine or
// CategoryTotal belongs to. These tag values are also used as the
// replace-by-tag key in the ledger writer (C10).
type Category string

const (
	CategorySpiff     Category = "Spiff"
	CategoryPBP       Category = "PBP"
	CategoryKPI       Category = "KPI"
	CategoryYardSign  Category = "Yard Sign"
	CategoryTimesheet Category = "Timesheet"
	CategoryService   Category = "Service"
	CategoryLeadSet   Category = "Lead Set"
)

// PayPeriod is the dated window that drives all time-filtered categories.
type PayPeriod struct {
	Label     string
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether d falls within [StartDate, EndDate], inclusive.
func (p PayPeriod) Contains(d time.Time) bool {
	start := p.StartDate.Truncate(24 * time.Hour)
	end := p.EndDate.Truncate(24 * time.Hour)
	day := d.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}

// RosterRow is a single row read from the canonical roster table ("Main",
// formerly "Hourly + Spiff Pay").
type RosterRow struct {
	Name                  string
	Department            string
	Position              string
	BaseRate              string
	Exempt                string
	CommissionOverridePct string
	Pay                   string
	ApprovalStatus        string
}

// PBPEntry is one row of pay-by-performance job input.
type PBPEntry struct {
	Customer               string
	JobBusinessUnit        string
	CompletionDate         time.Time
	PrimaryTechnician      string
	AssignedTechniciansRaw string
	ItemName               string
	CrossSaleGroup         string
}

// SpiffBonusEntry is one row of spiff/bonus job input.
type SpiffBonusEntry struct {
	Customer            string
	JobBusinessUnit      string
	CompletionDate       time.Time
	SoldBy               string
	AssignedTechnicians  string
	ItemName             string
	BonusAmount          string
}

// YardSignEntry is one row of yard-sign install input.
type YardSignEntry struct {
	Customer            string
	JobNumber           string
	BusinessUnit        string
	CompletionDate      time.Time
	JobsTotal           string
	Tags                string
	AssignedTechnicians string
}

// LeadEntry is one row of lead-set revenue input.
type LeadEntry struct {
	Customer         string
	BusinessUnit     string
	CompletionDate   time.Time
	Revenue          decimal.Decimal
	Notes            string
	SoldByTechnician string
}

// TimesheetEntry is one row of timesheet hours input.
type TimesheetEntry struct {
	EmployeeName  string
	Date          time.Time
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	PTOHours      decimal.Decimal
}

// KPIEntry is one row of Call-By-Call percentage input, already normalized
// into [0, 1].
type KPIEntry struct {
	Technician string
	Date       time.Time
	Percentage decimal.Decimal
}

// ServiceEntry is one row of service revenue input.
type ServiceEntry struct {
	Technician       string
	TotalSales       decimal.Decimal
	CompletedRevenue decimal.Decimal
	CompletedJobs    int
}

// ComputedLine is a single category output row for one technician.
type ComputedLine struct {
	Customer       string
	BusinessUnit   string
	CompletionDate time.Time
	Amount         decimal.Decimal
	Notes          string
	CategoryTag    Category
}

// CategoryTotal is the per-category aggregate for one technician.
type CategoryTotal struct {
	CategoryTag Category
	Count       int
	Amount      decimal.Decimal
}

// Summary holds the named summary cells of a technician's ledger.
type Summary struct {
	HourlyRate         decimal.Decimal
	TotalHourlyPay     decimal.Decimal
	RegularHours       decimal.Decimal
	OvertimeHours      decimal.Decimal
	PTOHours           decimal.Decimal
	Bonus              decimal.Decimal
	YardSignSpiff      decimal.Decimal
	TotalInstallPay    decimal.Decimal
	LeadSetSale        decimal.Decimal
	LeadSetCommission  decimal.Decimal
	CallByCallScore    decimal.Decimal
	KPIBonus           decimal.Decimal
	CompletedRevenue   decimal.Decimal
	TotalSales         decimal.Decimal
	TotalPay           decimal.Decimal
}

// TechnicianLedger is the full per-technician output: ordered lines plus the
// summary section. The invariant enforced by the Ledger Writer (C10) is that
// for every category tag, the sum of that tag's line amounts equals the
// corresponding summary amount.
type TechnicianLedger struct {
	TechnicianName string
	Lines          []ComputedLine
	Summary        Summary
}
