package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

func TestComputeKPI_AverageAndBonus(t *testing.T) {
	period := models.PayPeriod{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	entries := []models.KPIEntry{
		{Technician: "Jordan Park", Date: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), Percentage: decimal.NewFromFloat(0.95)},
		{Technician: "Jordan Park", Date: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC), Percentage: decimal.NewFromFloat(0.91)},
		{Technician: "Jordan Park", Date: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC), Percentage: decimal.Zero},
		{Technician: "Jordan Park", Date: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), Percentage: decimal.NewFromFloat(0.50)},
	}

	result := ComputeKPI(period, entries)

	assert.True(t, decimal.NewFromFloat(0.93).Equal(result.Average))
	assert.True(t, decimal.NewFromInt(100).Equal(result.Bonus))
}

func TestComputeKPI_AtOrBelowThresholdNoBonus(t *testing.T) {
	period := models.PayPeriod{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	entries := []models.KPIEntry{
		{Technician: "Jordan Park", Date: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), Percentage: decimal.NewFromFloat(0.90)},
	}

	result := ComputeKPI(period, entries)
	assert.True(t, decimal.NewFromFloat(0.90).Equal(result.Average))
	assert.True(t, result.Bonus.IsZero())
}

func TestComputeKPI_EmptyAveragesToZero(t *testing.T) {
	period := models.PayPeriod{StartDate: time.Now(), EndDate: time.Now()}
	result := ComputeKPI(period, nil)
	assert.True(t, result.Average.IsZero())
	assert.True(t, result.Bonus.IsZero())
}

func TestIndex_GroupsByTechnician(t *testing.T) {
	entries := []models.KPIEntry{
		{Technician: "Jordan Park", Percentage: decimal.NewFromFloat(0.9)},
		{Technician: "jordan park", Percentage: decimal.NewFromFloat(0.8)},
		{Technician: "Sam Lee", Percentage: decimal.NewFromFloat(0.7)},
	}
	idx := BuildIndex(entries)

	jordan := idx.For(models.Technician{Name: "Jordan Park"})
	assert.Len(t, jordan, 2)

	sam := idx.For(models.Technician{Name: "Sam Lee"})
	assert.Len(t, sam, 1)

	assert.Empty(t, idx.For(models.Technician{Name: "Nobody"}))
}
