// Package roster implements the Roster & Eligibility Resolver (C1): name
// resolution, class inference, and per-category eligibility rules.
package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendc/go-deepcopy"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// ErrNotFound is returned by Resolve when no roster row matches the name.
var ErrNotFound = fmt.Errorf("technician not found")

// Resolver holds the loaded roster, keyed by case-insensitive, trimmed name.
type Resolver struct {
	byName map[string]*models.Technician
	order  []string
}

var classPattern = regexp.MustCompile(`(?i)class\s*([1-4])`)

// New builds a Resolver from roster rows, inferring class and default split
// for each technician per §4.1.
func New(rows []models.RosterRow) (*Resolver, error) {
	r := &Resolver{byName: make(map[string]*models.Technician, len(rows))}

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		class, splitDefault := inferClassAndSplit(row.Position)

		baseRate, err := parseDecimal(row.BaseRate)
		if err != nil {
			return nil, fmt.Errorf("roster row %q base rate: %w", name, err)
		}

		var commission decimal.NullDecimal
		if strings.TrimSpace(row.CommissionOverridePct) != "" {
			pct, err := parseDecimal(row.CommissionOverridePct)
			if err != nil {
				return nil, fmt.Errorf("roster row %q commission override: %w", name, err)
			}
			commission = decimal.NullDecimal{Decimal: pct, Valid: true}
		}

		tech := &models.Technician{
			ID:                    uuid.New(),
			Name:                  name,
			Department:            strings.TrimSpace(row.Department),
			Position:              strings.TrimSpace(row.Position),
			BaseHourlyRate:        baseRate,
			CommissionPctOverride: commission,
			Exempt:                strings.EqualFold(strings.TrimSpace(row.Exempt), "true") || strings.TrimSpace(row.Exempt) == "1",
			Class:                 class,
			SplitDefault:          splitDefault,
			ApprovalStatus:        strings.TrimSpace(row.ApprovalStatus),
		}

		key := models.NameKey(name)
		r.byName[key] = tech
		r.order = append(r.order, key)
	}

	return r, nil
}

// Names returns the resolver's technicians in roster order.
func (r *Resolver) Names() []string {
	names := make([]string, len(r.order))
	for i, key := range r.order {
		names[i] = r.byName[key].Name
	}
	return names
}

// Resolve looks up a technician by case-insensitive, trimmed name and
// returns a defensive deep copy so calculators can never mutate the shared
// roster state.
func (r *Resolver) Resolve(name string) (models.Technician, error) {
	t, ok := r.byName[models.NameKey(name)]
	if !ok {
		return models.Technician{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	var cloned models.Technician
	if err := deepcopy.Copy(&cloned, t); err != nil {
		// deepcopy only fails on unsupported field kinds, which Technician
		// does not have; fall back to a direct struct copy rather than
		// propagate an error for a value type that is safe to copy by value.
		cloned = *t
	}
	return cloned, nil
}

// Class returns t's skill tier.
func Class(t models.Technician) models.Class {
	return t.Class
}

// Category names the compensation categories gated by eligibility rules.
type Category int

const (
	CategoryPBP Category = iota
	CategorySpiffBonus
	CategoryYardSign
	CategoryLeadSet
	CategoryTimesheet
	CategoryKPI
)

// Eligible reports whether t may earn in the given category, per §4.1:
// Class 1 is excluded from Spiff/Bonus, PBP, Yard Sign, and Lead Set, as is
// an apprentice with a 0% commission override. Timesheet and KPI are always
// eligible. Eligibility failure is not an error — callers must produce an
// empty, zero-total result rather than fail the run.
func Eligible(t models.Technician, category Category) bool {
	switch category {
	case CategoryTimesheet, CategoryKPI:
		return true
	case CategoryPBP, CategorySpiffBonus, CategoryYardSign, CategoryLeadSet:
		if t.Class == models.Class1 {
			return false
		}
		if t.IsApprenticeZeroPercent() {
			return false
		}
		return true
	default:
		return true
	}
}

func inferClassAndSplit(position string) (models.Class, decimal.Decimal) {
	if m := classPattern.FindStringSubmatch(position); m != nil {
		switch m[1] {
		case "1":
			return models.Class1, decimal.Zero
		case "2":
			return models.Class2, decimal.NewFromInt(35)
		case "3":
			return models.Class3, decimal.NewFromInt(65)
		case "4":
			return models.Class4, decimal.NewFromInt(65)
		}
	}

	p := strings.ToLower(position)
	switch {
	case strings.Contains(p, "lead") || strings.Contains(p, "senior"):
		return models.ClassUnknown, decimal.NewFromInt(65)
	case strings.Contains(p, "assist") || strings.Contains(p, "apprentice") || strings.Contains(p, "helper"):
		return models.ClassUnknown, decimal.NewFromInt(35)
	default:
		return models.ClassUnknown, decimal.Zero
	}
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "%", "")
	return decimal.NewFromString(raw)
}
