package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

func pbpResolver(classByName map[string]models.Class) func(string) (models.Technician, bool) {
	return func(name string) (models.Technician, bool) {
		for n, class := range classByName {
			if nameMatches(n, name) {
				return models.Technician{Name: n, Class: class}, true
			}
		}
		return models.Technician{}, false
	}
}

func TestComputePBP_SoloJobTakesFullShare(t *testing.T) {
	tech := models.Technician{Name: "Jordan Park", Class: models.Class3}
	resolve := pbpResolver(map[string]models.Class{"Jordan Park": models.Class3})

	entries := []models.PBPEntry{
		{
			Customer:               "Acme Co",
			CompletionDate:         time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			PrimaryTechnician:      "Jordan Park",
			AssignedTechniciansRaw: "Jordan Park",
			ItemName:               "Furnace",
			CrossSaleGroup:         "PBP 500",
		},
	}

	result, warnings := ComputePBP(tech, entries, resolve)
	assert.Empty(t, warnings)
	assert.Len(t, result.Lines, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(result.Lines[0].Amount))
}

func TestComputePBP_TwoPersonLeadAssistantSplit(t *testing.T) {
	resolve := pbpResolver(map[string]models.Class{
		"Jordan Park": models.Class3,
		"Sam Lee":     models.Class2,
	})
	entries := []models.PBPEntry{
		{
			Customer:               "Acme Co",
			CompletionDate:         time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			PrimaryTechnician:      "Jordan Park",
			AssignedTechniciansRaw: "Jordan Park, Sam Lee",
			ItemName:               "Furnace",
			CrossSaleGroup:         "PBP 1000",
		},
	}

	lead := models.Technician{Name: "Jordan Park", Class: models.Class3}
	leadResult, _ := ComputePBP(lead, entries, resolve)
	assert.Len(t, leadResult.Lines, 1)
	assert.True(t, decimal.NewFromInt(650).Equal(leadResult.Lines[0].Amount), "lead gets 65%%")

	assistant := models.Technician{Name: "Sam Lee", Class: models.Class2}
	assistantResult, _ := ComputePBP(assistant, entries, resolve)
	assert.Len(t, assistantResult.Lines, 1)
	assert.True(t, decimal.NewFromInt(350).Equal(assistantResult.Lines[0].Amount), "assistant gets 35%%")
}

func TestComputePBP_ThreePersonSplit(t *testing.T) {
	resolve := pbpResolver(map[string]models.Class{
		"Jordan Park": models.Class4,
		"Sam Lee":     models.Class2,
		"Alex Rivera": models.Class2,
	})
	entries := []models.PBPEntry{
		{
			Customer:               "Acme Co",
			CompletionDate:         time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			PrimaryTechnician:      "Jordan Park",
			AssignedTechniciansRaw: "Jordan Park, Sam Lee, Alex Rivera",
			ItemName:               "Furnace",
			CrossSaleGroup:         "PBP 1000",
		},
	}

	lead := models.Technician{Name: "Jordan Park", Class: models.Class4}
	leadResult, _ := ComputePBP(lead, entries, resolve)
	assert.True(t, decimal.NewFromInt(460).Equal(leadResult.Lines[0].Amount))

	assistant := models.Technician{Name: "Sam Lee", Class: models.Class2}
	assistantResult, _ := ComputePBP(assistant, entries, resolve)
	assert.True(t, decimal.NewFromInt(270).Equal(assistantResult.Lines[0].Amount))
}

func TestComputePBP_ApprenticeZeroPercentExcluded(t *testing.T) {
	tech := models.Technician{
		Name:                  "Casey Apprentice",
		Position:              "Apprentice",
		Class:                 models.ClassUnknown,
		CommissionPctOverride: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
	}
	resolve := pbpResolver(map[string]models.Class{"Casey Apprentice": models.ClassUnknown})
	entries := []models.PBPEntry{
		{
			Customer:               "Acme Co",
			PrimaryTechnician:      "Casey Apprentice",
			AssignedTechniciansRaw: "Casey Apprentice",
			CrossSaleGroup:         "PBP 500",
		},
	}

	result, _ := ComputePBP(tech, entries, resolve)
	assert.Empty(t, result.Lines)
}

func TestComputePBP_ClassOneTeammateZeroedButStillCountsTowardSplit(t *testing.T) {
	resolve := pbpResolver(map[string]models.Class{
		"John Doe": models.Class4,
		"Ann Lee":  models.Class1,
	})
	entries := []models.PBPEntry{
		{
			Customer:               "Acme Co",
			CompletionDate:         time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			PrimaryTechnician:      "John Doe",
			AssignedTechniciansRaw: "John Doe, Ann Lee",
			ItemName:               "Furnace",
			CrossSaleGroup:         "PBP 200",
		},
	}

	lead := models.Technician{Name: "John Doe", Class: models.Class4}
	leadResult, _ := ComputePBP(lead, entries, resolve)
	assert.Len(t, leadResult.Lines, 1)
	assert.True(t, decimal.NewFromInt(130).Equal(leadResult.Lines[0].Amount), "lead's 65%% split reflects a two-person team, not a solo job")

	teammate := models.Technician{Name: "Ann Lee", Class: models.Class1}
	teammateResult, _ := ComputePBP(teammate, entries, resolve)
	assert.Len(t, teammateResult.Lines, 1, "ineligible teammate still gets a line, just a zeroed one")
	assert.True(t, decimal.Zero.Equal(teammateResult.Lines[0].Amount))
}

func TestComputePBP_NoPBPAmountSkipsEntry(t *testing.T) {
	tech := models.Technician{Name: "Jordan Park", Class: models.Class3}
	resolve := pbpResolver(map[string]models.Class{"Jordan Park": models.Class3})
	entries := []models.PBPEntry{
		{PrimaryTechnician: "Jordan Park", AssignedTechniciansRaw: "Jordan Park", CrossSaleGroup: "no amount here"},
	}

	result, _ := ComputePBP(tech, entries, resolve)
	assert.Empty(t, result.Lines)
}

func TestComputePBP_DuplicateEntrySkipped(t *testing.T) {
	tech := models.Technician{Name: "Jordan Park", Class: models.Class3}
	resolve := pbpResolver(map[string]models.Class{"Jordan Park": models.Class3})
	date := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.PBPEntry{
		{Customer: "Acme", CompletionDate: date, ItemName: "Furnace", PrimaryTechnician: "Jordan Park", AssignedTechniciansRaw: "Jordan Park", CrossSaleGroup: "PBP 500"},
		{Customer: "Acme", CompletionDate: date, ItemName: "Furnace", PrimaryTechnician: "Jordan Park", AssignedTechniciansRaw: "Jordan Park", CrossSaleGroup: "PBP 500"},
	}

	result, _ := ComputePBP(tech, entries, resolve)
	assert.Len(t, result.Lines, 1)
}
