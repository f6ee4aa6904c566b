package sheetsource

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nikolai-cardinal/payroll-engine/internal/ledger"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

func TestMemoryBackend_ListRosterReturnsDefensiveCopy(t *testing.T) {
	b := NewMemoryBackend()
	b.Roster = []models.RosterRow{{Name: "Jordan Park"}}

	rows, err := b.ListRoster(context.Background())
	assert.NoError(t, err)
	rows[0].Name = "Mutated"

	again, err := b.ListRoster(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Jordan Park", again[0].Name)
}

func TestMemoryBackend_ReadTable_NotFound(t *testing.T) {
	b := NewMemoryBackend()
	_, err := b.ReadTable(context.Background(), TablePBP)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestMemoryBackend_ReadTable_ReturnsRegisteredRows(t *testing.T) {
	b := NewMemoryBackend()
	b.Tables[TableSpiffBonus] = [][]string{{"Customer", "Sold By"}, {"Acme", "Jordan Park"}}

	rows, err := b.ReadTable(context.Background(), TableSpiffBonus)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMemoryBackend_WriteLedger_MergesBlocksWithoutDisturbingOtherTags(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	first := map[models.Category]ledger.Block{
		models.CategorySpiff: {Tag: models.CategorySpiff, Lines: []models.ComputedLine{{CategoryTag: models.CategorySpiff, Amount: decimal.NewFromInt(50)}}},
	}
	firstSummary := models.Summary{Bonus: decimal.NewFromInt(50)}
	assert.NoError(t, b.WriteLedger(ctx, "Jordan Park", first, firstSummary))

	second := map[models.Category]ledger.Block{
		models.CategoryPBP: {Tag: models.CategoryPBP, Lines: []models.ComputedLine{{CategoryTag: models.CategoryPBP, Amount: decimal.NewFromInt(500)}}},
	}
	secondSummary := models.Summary{Bonus: decimal.NewFromInt(50), TotalInstallPay: decimal.NewFromInt(500)}
	assert.NoError(t, b.WriteLedger(ctx, "Jordan Park", second, secondSummary))

	got := b.Ledgers["Jordan Park"]
	assert.Len(t, got.Lines, 2)
	assert.True(t, decimal.NewFromInt(50).Equal(got.Summary.Bonus))
	assert.True(t, decimal.NewFromInt(500).Equal(got.Summary.TotalInstallPay))
}

func TestMemoryBackend_WriteLedger_ReplacesStaleSummaryOnEachRun(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	first := map[models.Category]ledger.Block{
		models.CategoryKPI: {Tag: models.CategoryKPI},
	}
	firstSummary := models.Summary{KPIBonus: decimal.NewFromInt(100), CallByCallScore: decimal.NewFromFloat(0.9)}
	assert.NoError(t, b.WriteLedger(ctx, "Jordan Park", first, firstSummary))
	assert.True(t, decimal.NewFromInt(100).Equal(b.Ledgers["Jordan Park"].Summary.KPIBonus))

	second := map[models.Category]ledger.Block{
		models.CategoryKPI: {Tag: models.CategoryKPI},
	}
	secondSummary := models.Summary{KPIBonus: decimal.Zero, CallByCallScore: decimal.NewFromFloat(0.5)}
	assert.NoError(t, b.WriteLedger(ctx, "Jordan Park", second, secondSummary))

	got := b.Ledgers["Jordan Park"]
	assert.True(t, decimal.Zero.Equal(got.Summary.KPIBonus), "summary must reflect the latest run, not a stale prior one")
	assert.True(t, decimal.NewFromFloat(0.5).Equal(got.Summary.CallByCallScore))
}

func TestMemoryBackend_UpdateRosterPayAndPayPeriodText(t *testing.T) {
	b := NewMemoryBackend()
	b.PayPeriod = "06/01 - 06/07"
	ctx := context.Background()

	assert.NoError(t, b.UpdateRosterPay(ctx, "Jordan Park", decimal.NewFromInt(900)))
	assert.True(t, decimal.NewFromInt(900).Equal(b.RosterPay["Jordan Park"]))

	text, err := b.PayPeriodText(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "06/01 - 06/07", text)
}
