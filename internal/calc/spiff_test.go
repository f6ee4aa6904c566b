package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

func techForSpiff(name string, class models.Class) models.Technician {
	return models.Technician{Name: name, Class: class, BaseHourlyRate: decimal.NewFromInt(20)}
}

func TestComputeSpiffBonus_QualifiesBySoldByAndAssigned(t *testing.T) {
	tech := techForSpiff("Alex Rivera", models.Class3)
	entries := []models.SpiffBonusEntry{
		{
			Customer:            "Jane Doe",
			JobBusinessUnit:     "HVAC",
			CompletionDate:      time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			SoldBy:              "Alex Rivera",
			AssignedTechnicians: "Alex Rivera, Sam Lee",
			ItemName:            "Smart Thermostat",
			BonusAmount:         "50",
		},
	}

	result := ComputeSpiffBonus(tech, entries)

	assert.Len(t, result.Lines, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(result.Total.Amount))
	assert.Equal(t, models.CategorySpiff, result.Lines[0].CategoryTag)
}

func TestComputeSpiffBonus_QualifiesByEmptySoldBy(t *testing.T) {
	tech := techForSpiff("Sam Lee", models.Class2)
	entries := []models.SpiffBonusEntry{
		{Customer: "X", SoldBy: "", AssignedTechnicians: "Sam Lee", BonusAmount: "25"},
	}

	result := ComputeSpiffBonus(tech, entries)
	assert.Len(t, result.Lines, 1)
}

func TestComputeSpiffBonus_NotAssignedSkips(t *testing.T) {
	tech := techForSpiff("Sam Lee", models.Class2)
	entries := []models.SpiffBonusEntry{
		{Customer: "X", SoldBy: "Alex Rivera", AssignedTechnicians: "Alex Rivera", BonusAmount: "25"},
	}

	result := ComputeSpiffBonus(tech, entries)
	assert.Empty(t, result.Lines)
	assert.True(t, result.Total.Amount.IsZero())
}

func TestComputeSpiffBonus_Class1Ineligible(t *testing.T) {
	tech := techForSpiff("Pat Class1", models.Class1)
	entries := []models.SpiffBonusEntry{
		{Customer: "X", SoldBy: "Pat Class1", AssignedTechnicians: "Pat Class1", BonusAmount: "25"},
	}

	result := ComputeSpiffBonus(tech, entries)
	assert.Empty(t, result.Lines)
}

func TestComputeSpiffBonus_ZeroOrInvalidAmountSkipped(t *testing.T) {
	tech := techForSpiff("Sam Lee", models.Class2)
	entries := []models.SpiffBonusEntry{
		{Customer: "X", SoldBy: "", AssignedTechnicians: "Sam Lee", BonusAmount: "0"},
		{Customer: "Y", SoldBy: "", AssignedTechnicians: "Sam Lee", BonusAmount: "not-a-number"},
	}

	result := ComputeSpiffBonus(tech, entries)
	assert.Empty(t, result.Lines)
}
