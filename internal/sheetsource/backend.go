// Package sheetsource implements the external tabular data provider named in
// §6: a logical read/write surface over the roster, category input tables,
// and per-technician ledgers, independent of what actually stores the data.
package sheetsource

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/ledger"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// Table names accepted by ReadTable, matching §6.
const (
	TablePBP        = "PBP"
	TableSpiffBonus = "Spiff/Bonus"
	TableYardSign   = "Yard Sign"
	TableTimesheet  = "Time Sheet"
	TableLeadSet    = "Lead Set"
	TableService    = "Service"
	TableKPI        = "KPI"
)

// Backend is the logical tabular data provider the orchestrator runs
// against. Implementations back it with a real workbook, an in-memory fake,
// or anything else that can satisfy list/read/write semantics.
type Backend interface {
	// ListRoster returns every row of the canonical roster table.
	ListRoster(ctx context.Context) ([]models.RosterRow, error)
	// ReadTable returns the raw rows (including header) of one of the
	// category input tables named by the Table* constants.
	ReadTable(ctx context.Context, name string) ([][]string, error)
	// WriteLedger merges blocks into the named technician's ledger,
	// replacing only the rows tagged by each block and leaving every other
	// row untouched, and atomically replaces the ledger's summary section
	// with summary. Every run recomputes every category, so the full
	// summary is always fresh and safe to overwrite wholesale.
	WriteLedger(ctx context.Context, techName string, blocks map[models.Category]ledger.Block, summary models.Summary) error
	// UpdateRosterPay mirrors a technician's derived Total Pay back to the
	// roster-level Pay column.
	UpdateRosterPay(ctx context.Context, techName string, totalPay decimal.Decimal) error
	// PayPeriodText returns the pay period's display text cell.
	PayPeriodText(ctx context.Context) (string, error)
}
