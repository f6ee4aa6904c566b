package archive

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

func TestRecordID_DeterministicAcrossCalls(t *testing.T) {
	r := Record{
		RunAt:      time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC),
		PayPeriod:  "06/01/2026 - 06/07/2026",
		Technician: "Jordan Park",
		Category:   models.CategoryPBP,
	}

	assert.Equal(t, recordID(r), recordID(r))
}

func TestRecordID_DiffersByTechnicianOrCategory(t *testing.T) {
	base := Record{
		RunAt:      time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC),
		PayPeriod:  "06/01/2026 - 06/07/2026",
		Technician: "Jordan Park",
		Category:   models.CategoryPBP,
	}
	other := base
	other.Technician = "Sam Lee"

	assert.NotEqual(t, recordID(base), recordID(other))

	otherCategory := base
	otherCategory.Category = models.CategorySpiff

	assert.NotEqual(t, recordID(base), recordID(otherCategory))
}

func TestWriteBatch_CountsInsertedAndSkipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := &Store{db: db}
	records := []Record{
		{RunAt: time.Now(), PayPeriod: "p1", Technician: "Jordan Park", Category: models.CategoryPBP, Amount: decimal.NewFromInt(500), TotalPay: decimal.NewFromInt(900)},
		{RunAt: time.Now(), PayPeriod: "p1", Technician: "Sam Lee", Category: models.CategoryPBP, Amount: decimal.NewFromInt(0), TotalPay: decimal.NewFromInt(0)},
	}

	insertSQL := regexp.QuoteMeta(`
INSERT INTO payroll_category_totals (id, run_at, pay_period, technician, category, amount, total_pay)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`)

	mock.ExpectExec(insertSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertSQL).WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, skipped, err := store.WriteBatch(context.Background(), records)
	assert.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_ExecutesCreateTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := &Store{db: db}
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS payroll_category_totals`)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
