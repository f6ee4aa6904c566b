package sheetsource

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/ledger"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// MemoryBackend is an in-memory Backend used by tests and by the CLI's
// print-summary --dry-run mode: no workbook is touched.
type MemoryBackend struct {
	mu sync.Mutex

	Roster     []models.RosterRow
	Tables     map[string][][]string
	PayPeriod  string
	Ledgers    map[string]models.TechnicianLedger
	RosterPay  map[string]decimal.Decimal
}

// NewMemoryBackend builds an empty MemoryBackend; callers populate Roster,
// Tables, and PayPeriod directly before a run.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		Tables:    make(map[string][][]string),
		Ledgers:   make(map[string]models.TechnicianLedger),
		RosterPay: make(map[string]decimal.Decimal),
	}
}

func (b *MemoryBackend) ListRoster(ctx context.Context) ([]models.RosterRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.RosterRow, len(b.Roster))
	copy(out, b.Roster)
	return out, nil
}

func (b *MemoryBackend) ReadTable(ctx context.Context, name string) ([][]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows, ok := b.Tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: table %q", ErrTableNotFound, name)
	}
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (b *MemoryBackend) WriteLedger(ctx context.Context, techName string, blocks map[models.Category]ledger.Block, summary models.Summary) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := ledger.NewWriter(techName)
	if existing, had := b.Ledgers[techName]; had {
		lines := existing.Lines
		for i := 0; i < len(lines); {
			j := i
			for j < len(lines) && lines[j].CategoryTag == lines[i].CategoryTag {
				j++
			}
			w.WriteBlock(ledger.Block{Tag: lines[i].CategoryTag, Lines: lines[i:j]})
			i = j
		}
	}
	for _, block := range blocks {
		w.WriteBlock(block)
	}
	w.SetSummary(func(s *models.Summary) { *s = summary })
	b.Ledgers[techName] = w.Ledger()
	return nil
}

func (b *MemoryBackend) UpdateRosterPay(ctx context.Context, techName string, totalPay decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.RosterPay[techName] = totalPay
	return nil
}

func (b *MemoryBackend) PayPeriodText(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.PayPeriod, nil
}

// ErrTableNotFound is returned by ReadTable when no fixture rows were
// registered for the requested table name.
var ErrTableNotFound = fmt.Errorf("table not found")
