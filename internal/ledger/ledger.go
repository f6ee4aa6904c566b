// Package ledger implements the Per-Technician Ledger Writer (C10): a
// list/replace-by-tag contract over a technician's ordered output lines and
// summary cells, so a re-run only touches the rows it owns.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/nikolai-cardinal/payroll-engine/internal/models"
)

// Block is one category's computed output, ready to be merged into a
// ledger: its lines and the aggregate they must sum to.
type Block struct {
	Tag   models.Category
	Lines []models.ComputedLine
	Total decimal.Decimal
}

// Writer accumulates blocks into a single TechnicianLedger, enforcing the
// invariant that for every tag written, the ledger's lines for that tag are
// exactly the new set (order preserved). Summary cells are set separately
// through SetSummary; WriteBlock does not touch them.
type Writer struct {
	name    string
	lines   []models.ComputedLine
	summary models.Summary
}

// NewWriter starts a ledger for the named technician.
func NewWriter(name string) *Writer {
	return &Writer{name: name}
}

// WriteBlock replaces every existing line tagged with block.Tag, in place if
// the tag already occupies a contiguous run, or appended at the end
// otherwise — preserving the surrounding, unrelated categories' rows and
// their relative order.
func (w *Writer) WriteBlock(block Block) {
	start, end := w.tagRange(block.Tag)

	if start == -1 {
		w.lines = append(w.lines, block.Lines...)
		return
	}

	merged := make([]models.ComputedLine, 0, len(w.lines)-(end-start)+len(block.Lines))
	merged = append(merged, w.lines[:start]...)
	merged = append(merged, block.Lines...)
	merged = append(merged, w.lines[end:]...)
	w.lines = merged
}

// tagRange returns the [start, end) index range of the contiguous run of
// lines tagged with tag, or (-1, -1) if tag has no lines yet.
func (w *Writer) tagRange(tag models.Category) (int, int) {
	start := -1
	end := -1
	for i, line := range w.lines {
		if line.CategoryTag == tag {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	return start, end
}

// SetSummary applies fn to the ledger's summary section. Each calculator's
// orchestrator step is responsible for calling this with the fields it owns,
// so the ledger never guesses which summary cells a category affects.
func (w *Writer) SetSummary(fn func(*models.Summary)) {
	fn(&w.summary)
}

// Ledger returns the accumulated ledger.
func (w *Writer) Ledger() models.TechnicianLedger {
	return models.TechnicianLedger{
		TechnicianName: w.name,
		Lines:          w.lines,
		Summary:        w.summary,
	}
}

// CategoryTotal builds the CategoryTotal for a block, matching the ledger
// invariant that count/amount mirror the written lines.
func CategoryTotal(tag models.Category, lines []models.ComputedLine) models.CategoryTotal {
	total := models.CategoryTotal{CategoryTag: tag, Amount: decimal.Zero}
	for _, line := range lines {
		total.Count++
		total.Amount = total.Amount.Add(line.Amount)
	}
	return total
}
