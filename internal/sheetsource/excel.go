package sheetsource

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nikolai-cardinal/payroll-engine/internal/ledger"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/moneyfmt"
	"github.com/nikolai-cardinal/payroll-engine/internal/schema"
)

// rosterSheet is the canonical roster tab, formerly "Hourly + Spiff Pay".
const rosterSheet = "Main"

// payPeriodCell is the fixed cell holding the pay-period display text (§6).
const payPeriodCell = "F1"

// tableSheets maps a logical table name to its workbook tab.
var tableSheets = map[string]string{
	TablePBP:        "PBP",
	TableSpiffBonus: "Spiff/Bonus",
	TableYardSign:   "Yard Sign",
	TableTimesheet:  "Time Sheet",
	TableLeadSet:    "Lead Set",
	TableService:    "Service",
}

// ExcelBackend is a Backend over an excelize workbook on disk. Each ReadTable
// call does one bulk GetRows of the whole sheet (results are not cached
// between calls); writes target each technician's own ledger sheet, named
// after the technician.
type ExcelBackend struct {
	mu   sync.Mutex
	path string
	f    *excelize.File

	// kpiPath, if set, is a separate workbook holding the external KPI
	// source table (§6), opened lazily on first ReadTable(TableKPI) call.
	kpiPath string
	kpiFile *excelize.File
}

// OpenExcelBackend opens the primary workbook at path. If the
// EXCEL_WORKBOOK_PASSWORD environment variable is set, the workbook is
// opened with that password (excelize's AES-protected workbook support).
func OpenExcelBackend(path, kpiPath string) (*ExcelBackend, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %q: %w", path, err)
	}
	return &ExcelBackend{path: path, f: f, kpiPath: kpiPath}, nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if password := os.Getenv("EXCEL_WORKBOOK_PASSWORD"); password != "" {
		return excelize.OpenFile(path, excelize.Options{Password: password})
	}
	return excelize.OpenFile(path)
}

// Close releases the underlying workbook handles.
func (b *ExcelBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	if b.f != nil {
		err = b.f.Close()
	}
	if b.kpiFile != nil {
		if kerr := b.kpiFile.Close(); kerr != nil && err == nil {
			err = kerr
		}
	}
	return err
}

func (b *ExcelBackend) ListRoster(ctx context.Context) ([]models.RosterRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, err := b.f.GetRows(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading roster sheet %q: %w", rosterSheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	mapping := schema.BuildMapping(rows[0], RosterFields)

	out := make([]models.RosterRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := schema.CellAt(row, mapping.Column("name"))
		if name == "" {
			continue
		}
		out = append(out, models.RosterRow{
			Name:                  name,
			Department:            schema.CellAt(row, mapping.Column("department")),
			Position:              schema.CellAt(row, mapping.Column("position")),
			BaseRate:              schema.CellAt(row, mapping.Column("baseRate")),
			Exempt:                schema.CellAt(row, mapping.Column("exempt")),
			CommissionOverridePct: schema.CellAt(row, mapping.Column("commissionOverride")),
			Pay:                   schema.CellAt(row, mapping.Column("pay")),
			ApprovalStatus:        schema.CellAt(row, mapping.Column("approvalStatus")),
		})
	}
	return out, nil
}

func (b *ExcelBackend) ReadTable(ctx context.Context, name string) ([][]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == TableKPI {
		return b.readKPITable()
	}

	sheetName, ok := tableSheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: table %q", ErrTableNotFound, name)
	}

	rows, err := b.f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", name, err)
	}
	return rows, nil
}

func (b *ExcelBackend) readKPITable() ([][]string, error) {
	if b.kpiPath == "" {
		return nil, fmt.Errorf("%w: no KPI workbook configured", ErrTableNotFound)
	}
	if b.kpiFile == nil {
		f, err := openWorkbook(b.kpiPath)
		if err != nil {
			return nil, fmt.Errorf("opening KPI workbook %q: %w", b.kpiPath, err)
		}
		b.kpiFile = f
	}
	sheets := b.kpiFile.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("KPI workbook has no sheets")
	}
	rows, err := b.kpiFile.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading KPI sheet: %w", err)
	}
	return rows, nil
}

// WriteLedger writes each block into the technician's ledger sheet, named
// after the technician (trimmed, cut to Excel's 31-character sheet-name
// limit). A block whose tag already has rows is written starting at that
// tag's first row; a block for a new tag is written below every existing
// row. Existing rows outside the touched categories are left alone because
// the write re-derives the full block list from blocks itself and only
// rewrites the category rows it locates. summary also
// drives the fixed summary rows (§6) that have no line-level block of their
// own: hourly rate, regular/overtime hours, total hourly pay, total sales,
// and total pay. Each tagged row (11-16) gets only its block's Total; the
// LeadSetSale, CallByCallScore and PTOHours summary fields have no cell in
// this layout and are not written.
func (b *ExcelBackend) WriteLedger(ctx context.Context, techName string, blocks map[models.Category]ledger.Block, summary models.Summary) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sheetName := ledgerSheetName(techName)
	if !b.hasSheet(sheetName) {
		idx, cerr := b.f.NewSheet(sheetName)
		if cerr != nil {
			return fmt.Errorf("creating ledger sheet for %q: %w", techName, cerr)
		}
		b.f.SetActiveSheet(idx)
	}

	existingRows, err := b.f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("reading existing ledger for %q: %w", techName, err)
	}

	lineRow := 2 // row 1 reserved for headers
	if len(existingRows) >= lineRow {
		lineRow = len(existingRows) + 1 // new category blocks go below every existing row
	}
	tagRuns := findTagRuns(existingRows)

	for tag, block := range blocks {
		run, hasRun := tagRuns[tag]
		writeAt := lineRow
		if hasRun {
			writeAt = run.start
		} else {
			lineRow += len(block.Lines)
		}
		if err := b.writeLines(sheetName, writeAt, block.Lines); err != nil {
			return fmt.Errorf("writing %s block for %q: %w", tag, techName, err)
		}
		if err := b.writeSummaryCell(sheetName, tag, block.Total); err != nil {
			return fmt.Errorf("writing %s summary for %q: %w", tag, techName, err)
		}
	}

	if err := b.writeFixedSummaryRows(sheetName, summary); err != nil {
		return fmt.Errorf("writing summary rows for %q: %w", techName, err)
	}

	return nil
}

// writeFixedSummaryRows writes the summary rows that aren't keyed by a
// category tag's block (§6): hourly rate (4), regular/overtime hours (6, 7),
// total hourly pay (9), total sales (17), and total pay (18).
func (b *ExcelBackend) writeFixedSummaryRows(sheetName string, summary models.Summary) error {
	rows := []struct {
		row   int
		value decimal.Decimal
		money bool
	}{
		{4, summary.HourlyRate, true},
		{6, summary.RegularHours, false},
		{7, summary.OvertimeHours, false},
		{9, summary.TotalHourlyPay, true},
		{17, summary.TotalSales, true},
		{18, summary.TotalPay, true},
	}
	for _, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(2, r.row)
		if err != nil {
			return err
		}
		value := r.value.StringFixed(2)
		if r.money {
			value = moneyfmt.FormatMoney(r.value)
		}
		if err := b.f.SetCellValue(sheetName, cellRef, value); err != nil {
			return err
		}
	}
	return nil
}

func (b *ExcelBackend) hasSheet(name string) bool {
	for _, s := range b.f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

func (b *ExcelBackend) writeLines(sheetName string, startRow int, lines []models.ComputedLine) error {
	for i, line := range lines {
		row := startRow + i
		values := ledger.CellValues(line)
		for col, value := range values {
			cellRef, err := excelize.CoordinatesToCellName(5+col, row)
			if err != nil {
				return err
			}
			if err := b.f.SetCellValue(sheetName, cellRef, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *ExcelBackend) writeSummaryCell(sheetName string, tag models.Category, total decimal.Decimal) error {
	row, ok := summaryRowFor(tag)
	if !ok {
		return nil
	}
	cellRef, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return err
	}
	return b.f.SetCellValue(sheetName, cellRef, moneyfmt.FormatMoney(total))
}

func (b *ExcelBackend) UpdateRosterPay(ctx context.Context, techName string, totalPay decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, err := b.f.GetRows(rosterSheet)
	if err != nil {
		return fmt.Errorf("reading roster sheet: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %q", ErrTableNotFound, rosterSheet)
	}
	mapping := schema.BuildMapping(rows[0], RosterFields)
	payCol := mapping.Column("pay")
	if payCol == schema.NotMapped {
		return fmt.Errorf("roster pay column not mapped")
	}

	key := models.NameKey(techName)
	for rowIdx, row := range rows[1:] {
		if models.NameKey(schema.CellAt(row, mapping.Column("name"))) != key {
			continue
		}
		cellRef, err := excelize.CoordinatesToCellName(payCol+1, rowIdx+2)
		if err != nil {
			return err
		}
		return b.f.SetCellValue(rosterSheet, cellRef, moneyfmt.FormatMoney(totalPay))
	}
	return fmt.Errorf("%w: technician %q not in roster", ErrTableNotFound, techName)
}

func (b *ExcelBackend) PayPeriodText(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	text, err := b.f.GetCellValue(rosterSheet, payPeriodCell)
	if err != nil {
		return "", fmt.Errorf("reading pay period cell: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Save writes the workbook back to its original path.
func (b *ExcelBackend) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.f.Save()
}

// ledgerSheetName derives an Excel-safe sheet name from a technician's
// display name.
func ledgerSheetName(techName string) string {
	name := strings.TrimSpace(techName)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

type tagRun struct {
	start, end int
}

// findTagRuns scans an existing ledger sheet's rows (customer, business
// unit, date, amount, notes, tag in columns 5-10 per §6) for the first and
// last row carrying each category tag, so WriteLedger can update in place.
// Rows of other tags lying between the two are not detected.
func findTagRuns(rows [][]string) map[models.Category]tagRun {
	runs := make(map[models.Category]tagRun)
	if len(rows) <= 1 {
		return runs
	}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) < 10 {
			continue
		}
		tag := models.Category(strings.TrimSpace(row[9]))
		if tag == "" {
			continue
		}
		if run, ok := runs[tag]; ok {
			run.end = rowNum
			runs[tag] = run
		} else {
			runs[tag] = tagRun{start: rowNum, end: rowNum}
		}
	}
	return runs
}

// summaryRowFor maps a category tag to its fixed summary row (§6).
func summaryRowFor(tag models.Category) (int, bool) {
	switch tag {
	case models.CategorySpiff:
		return 11, true
	case models.CategoryYardSign:
		return 12, true
	case models.CategoryPBP:
		return 13, true
	case models.CategoryLeadSet:
		return 14, true
	case models.CategoryKPI:
		return 15, true
	case models.CategoryService:
		return 16, true
	default:
		return 0, false
	}
}
