package calc

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
)

var pbpAmountPattern = regexp.MustCompile(`(?i)pbp\s*(\d+(?:\.\d+)?)`)
var trailingPctPattern = regexp.MustCompile(`\(\s*\d+(?:\.\d+)?\s*%\s*\)\s*$`)

// pbpRole is the role a technician occupies on a single job, before the
// payout filter (eligibility / apprentice short-circuit) is applied.
type pbpRole struct {
	name  string
	class models.Class
	role  models.Role
}

// PBPResult is the output of the PBP Calculator (C3) for one technician.
type PBPResult struct {
	Lines []models.ComputedLine
	Total models.CategoryTotal
}

// PBPWarning records a non-fatal parsing ambiguity surfaced while splitting
// an assigned-technicians cell into names (§4.3 step 4).
type PBPWarning struct {
	Entry   int
	Message string
}

// ComputePBP runs the PBP Calculator (C3) for technician t across entries,
// per the algorithm and split table in §4.3.
func ComputePBP(t models.Technician, entries []models.PBPEntry, resolve func(name string) (models.Technician, bool)) (PBPResult, []PBPWarning) {
	result := PBPResult{Total: models.CategoryTotal{CategoryTag: models.CategoryPBP, Amount: decimal.Zero}}
	var warnings []PBPWarning

	if t.IsApprenticeZeroPercent() {
		return result, warnings
	}

	seen := make(map[string]bool)

	for idx, entry := range entries {
		amount, ok := extractPBPAmount(entry.CrossSaleGroup)
		if !ok {
			continue
		}

		names, warn := splitAssignedNames(entry.AssignedTechniciansRaw)
		if warn != "" {
			warnings = append(warnings, PBPWarning{Entry: idx, Message: warn})
		}
		names = ensurePrimaryIncluded(names, entry.PrimaryTechnician)

		involved := nameMatches(entry.PrimaryTechnician, t.Name)
		for _, n := range names {
			if nameMatches(n, t.Name) {
				involved = true
				break
			}
		}
		if !involved {
			continue
		}

		dedupeKey := strings.Join([]string{
			strings.ToLower(strings.TrimSpace(entry.Customer)),
			entry.CompletionDate.Format("2006-01-02"),
			strings.ToLower(strings.TrimSpace(entry.ItemName)),
			amount.String(),
		}, "|")
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true

		roles := assignInitialRoles(names, entry.PrimaryTechnician, resolve)
		roles = refineTeamRoles(roles, entry.PrimaryTechnician)

		leadCount, assistantCount := 0, 0
		for _, r := range roles {
			switch r.role {
			case models.RoleLead:
				leadCount++
			case models.RoleAssistant:
				assistantCount++
			}
		}
		total := leadCount + assistantCount

		var myRole models.Role
		for _, r := range roles {
			if nameMatches(r.name, t.Name) {
				myRole = r.role
				break
			}
		}
		if myRole == models.RoleNone {
			continue
		}

		splitPct := splitPercent(myRole, leadCount, assistantCount, total)
		if splitPct.IsZero() {
			continue
		}

		share := amount.Mul(splitPct).Div(decimal.NewFromInt(100))

		payout := share
		if !roster.Eligible(t, roster.CategoryPBP) {
			payout = decimal.Zero
		}

		notes := strings.TrimSpace(entry.ItemName)
		result.Lines = append(result.Lines, models.ComputedLine{
			Customer:       entry.Customer,
			BusinessUnit:   entry.JobBusinessUnit,
			CompletionDate: entry.CompletionDate,
			Amount:         payout,
			Notes:          notes,
			CategoryTag:    models.CategoryPBP,
		})
		result.Total.Count++
		result.Total.Amount = result.Total.Amount.Add(payout)
	}

	return result, warnings
}

// extractPBPAmount pulls the PBP dollar amount out of the crossSaleGroup
// cell via the `pbp\s*(\d+(\.\d+)?)` pattern, skipping non-positive amounts.
func extractPBPAmount(crossSaleGroup string) (decimal.Decimal, bool) {
	m := pbpAmountPattern.FindStringSubmatch(crossSaleGroup)
	if m == nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		return decimal.Zero, false
	}
	return amount, true
}

// splitAssignedNames parses the assigned-technicians cell into a set of
// unique names, per §4.3 step 4.
func splitAssignedNames(raw string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}

	var tokens []string
	warning := ""

	if strings.Contains(raw, ",") {
		for _, part := range strings.Split(raw, ",") {
			name := cleanName(part)
			if name != "" {
				tokens = append(tokens, name)
			}
		}
	} else {
		fields := strings.Fields(raw)
		var cleanedFields []string
		for _, f := range fields {
			f = stripTrailingPct(f)
			if f != "" {
				cleanedFields = append(cleanedFields, f)
			}
		}
		if len(cleanedFields) <= 2 {
			tokens = append(tokens, strings.Join(cleanedFields, " "))
		} else if len(cleanedFields)%2 == 0 {
			for i := 0; i < len(cleanedFields); i += 2 {
				tokens = append(tokens, cleanedFields[i]+" "+cleanedFields[i+1])
			}
		} else {
			warning = "odd token count in assigned-technicians cell; treating each token as a separate name"
			tokens = append(tokens, cleanedFields...)
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, n := range tokens {
		key := models.NameKey(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, n)
	}
	return unique, warning
}

func cleanName(s string) string {
	return stripTrailingPct(strings.TrimSpace(s))
}

func stripTrailingPct(s string) string {
	s = trailingPctPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// nameMatches reports whether a and b refer to the same technician under
// §4.3 step 2's "case-insensitive substring" involvement rule: either name
// may be the fuller form (e.g. a roster entry of "John" matching an assigned
// cell of "John Smith", or vice versa).
func nameMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func ensurePrimaryIncluded(names []string, primary string) []string {
	primary = strings.TrimSpace(primary)
	if primary == "" {
		return names
	}
	for _, n := range names {
		if nameMatches(n, primary) {
			return names
		}
	}
	return append(names, primary)
}

// assignInitialRoles assigns each involved technician an initial role by
// class, per §4.3 step 5.
func assignInitialRoles(names []string, primary string, resolve func(string) (models.Technician, bool)) []pbpRole {
	roles := make([]pbpRole, 0, len(names))
	for _, n := range names {
		tech, found := resolve(n)
		class := models.ClassUnknown
		if found {
			class = tech.Class
		}

		var role models.Role
		switch class {
		case models.Class3, models.Class4:
			role = models.RoleLead
		case models.Class2:
			role = models.RoleAssistant
		case models.Class1:
			role = models.RoleAssistant
		default:
			role = models.RoleNone
		}

		roles = append(roles, pbpRole{name: n, class: class, role: role})
	}
	return roles
}

// refineTeamRoles applies the team refinement rules in §4.3 step 6.
func refineTeamRoles(roles []pbpRole, primary string) []pbpRole {
	if len(roles) == 0 {
		return roles
	}

	leadCount, assistantCount := 0, 0
	for _, r := range roles {
		switch r.role {
		case models.RoleLead:
			leadCount++
		case models.RoleAssistant:
			assistantCount++
		}
	}

	if len(roles) == 1 {
		switch roles[0].class {
		case models.Class2, models.Class3, models.Class4:
			roles[0].role = models.RoleLead
		default:
			roles[0].role = models.RoleAssistant
		}
		return roles
	}

	if assistantCount > 0 && leadCount == 0 {
		promoted := false
		for i := range roles {
			if nameMatches(roles[i].name, primary) {
				roles[i].role = models.RoleLead
				promoted = true
				break
			}
		}
		if !promoted && assistantCount == 1 {
			for i := range roles {
				if roles[i].role == models.RoleAssistant {
					roles[i].role = models.RoleLead
					break
				}
			}
		}
	}

	leadCount, assistantCount = 0, 0
	hasClass3Plus := false
	for _, r := range roles {
		if r.class == models.Class3 || r.class == models.Class4 {
			hasClass3Plus = true
		}
	}
	if !hasClass3Plus {
		highestIsClass2 := false
		for _, r := range roles {
			if r.class == models.Class2 {
				highestIsClass2 = true
			}
		}
		if highestIsClass2 {
			for i := range roles {
				if roles[i].class == models.Class2 {
					roles[i].role = models.RoleLead
				}
			}
		}
	}

	return roles
}

// splitPercent returns the percentage awarded to role given the job's
// leadCount/assistantCount/total composition, per the §4.3 split table. The
// table's numeric inconsistencies in mixed 3- and 4-person cases are
// preserved verbatim (§9 Open Questions).
func splitPercent(role models.Role, leadCount, assistantCount, total int) decimal.Decimal {
	type key struct {
		total, leads, assistants int
	}
	table := map[key][2]string{
		{1, 1, 0}: {"100", ""},
		{1, 0, 1}: {"", "100"},
		{2, 1, 1}: {"65", "35"},
		{2, 2, 0}: {"50", ""},
		{2, 0, 2}: {"", "50"},
		{3, 1, 2}: {"46", "27"},
		{3, 2, 1}: {"38", "24"},
		{3, 3, 0}: {"33.33", ""},
		{3, 0, 3}: {"", "33.33"},
		{4, 2, 2}: {"30", "20"},
		{4, 3, 1}: {"30", "10"},
		{4, 4, 0}: {"25", ""},
		{4, 0, 4}: {"", "25"},
	}

	if row, ok := table[key{total, leadCount, assistantCount}]; ok {
		var raw string
		if role == models.RoleLead {
			raw = row[0]
		} else {
			raw = row[1]
		}
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(total)))
}
