// Package archive persists a run's aggregate category totals to Postgres.
// It is an append-only external collaborator (§1/§6): it never reads back
// into computation, and a failure here never aborts a run already written
// to the workbook.
package archive

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// Store writes per-run CategoryTotal rows to a Postgres archive table.
type Store struct {
	db *sql.DB
}

// Open connects to the archive database and verifies the connection with a
// ping, following the teacher's cmd/import-ledger connect-then-ping idiom.
func Open(dbURL string) (*Store, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging archive database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the archive table if it does not already exist, so a
// fresh database needs no separate migration step to run `archive`.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS payroll_category_totals (
	id          TEXT PRIMARY KEY,
	run_at      TIMESTAMPTZ NOT NULL,
	pay_period  TEXT NOT NULL,
	technician  TEXT NOT NULL,
	category    TEXT NOT NULL,
	amount      TEXT NOT NULL,
	total_pay   TEXT NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring archive schema: %w", err)
	}
	return nil
}

// Record is one technician/category aggregate from a completed run.
type Record struct {
	RunAt      time.Time
	PayPeriod  string
	Technician string
	Category   models.Category
	Amount     decimal.Decimal
	TotalPay   decimal.Decimal
}

// WriteBatch appends every record, skipping (not failing) rows whose
// deterministic id already exists, so writing the same records twice is
// idempotent. The id includes RunAt, so records stamped with a different run
// time are inserted as new rows.
func (s *Store) WriteBatch(ctx context.Context, records []Record) (inserted, skipped int, err error) {
	for _, r := range records {
		id := recordID(r)
		res, execErr := s.db.ExecContext(ctx, `
INSERT INTO payroll_category_totals (id, run_at, pay_period, technician, category, amount, total_pay)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`,
			id, r.RunAt, r.PayPeriod, r.Technician, string(r.Category), r.Amount.String(), r.TotalPay.String())
		if execErr != nil {
			return inserted, skipped, fmt.Errorf("archiving %s/%s: %w", r.Technician, r.Category, execErr)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped, nil
}

// recordID derives a stable id from a record's identifying fields, the same
// hash-of-row approach the teacher uses for its ledger-import dedup key.
func recordID(r Record) string {
	input := fmt.Sprintf("%s|%s|%s|%s", r.PayPeriod, r.Technician, r.Category, r.RunAt.Format(time.RFC3339))
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}
