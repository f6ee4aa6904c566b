// Package orchestrator implements the Batch Orchestrator (C11): it drives
// the fixed category pipeline across the roster, tracks per-category status,
// and derives each technician's Total Pay.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/nikolai-cardinal/payroll-engine/internal/calc"
	"github.com/nikolai-cardinal/payroll-engine/internal/ledger"
	"github.com/nikolai-cardinal/payroll-engine/internal/metrics"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
	"github.com/nikolai-cardinal/payroll-engine/internal/sheetsource"
)

// State is a category's lifecycle state for one technician, per §4.11.
type State int

const (
	Pending State = iota
	Processing
	Complete
	Skipped
	Error
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Processing:
		return "Processing"
	case Complete:
		return "Complete"
	case Skipped:
		return "Skipped"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// worse reports whether b outranks a on the Complete < Skipped < Error scale
// used to derive a technician's overall status (§7).
func worse(a, b State) bool {
	rank := func(s State) int {
		switch s {
		case Complete:
			return 0
		case Skipped:
			return 1
		case Error:
			return 2
		default:
			return 0
		}
	}
	return rank(b) > rank(a)
}

// CategoryStatus records one category's outcome for one technician, plus the
// category's own monetary contribution (zero unless Complete).
type CategoryStatus struct {
	Category models.Category
	State    State
	Note     string
	Amount   decimal.Decimal
}

// TechnicianResult is the per-technician outcome of a run.
type TechnicianResult struct {
	Technician string
	Statuses   []CategoryStatus
	Overall    State
	TotalPay   decimal.Decimal
}

// categoryTimeout is the soft per-category ceiling (§5): a category still
// running past this is recorded as Error and skipped.
const categoryTimeout = 20 * time.Second

// categoryOrder is the fixed pipeline order (§4.11): later categories may
// depend on earlier summary values feeding into Total Pay.
var categoryOrder = []models.Category{
	models.CategorySpiff,
	models.CategoryPBP,
	models.CategoryKPI,
	models.CategoryYardSign,
	models.CategoryTimesheet,
	models.CategoryService,
	models.CategoryLeadSet,
}

// Orchestrator drives the category pipeline over a backend and roster.
type Orchestrator struct {
	Backend sheetsource.Backend
	Roster  *roster.Resolver
	Period  models.PayPeriod
	Log     *logrus.Logger

	kpiOnce  sync.Once
	kpiIndex *calc.Index
	kpiErr   error

	mu       sync.Mutex
	techLock map[string]*sync.Mutex
}

// New builds an Orchestrator over backend, the resolved roster, and the
// run's pay period. A nil logger falls back to logrus's standard logger.
func New(backend sheetsource.Backend, resolver *roster.Resolver, period models.PayPeriod, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{
		Backend:  backend,
		Roster:   resolver,
		Period:   period,
		Log:      log,
		techLock: make(map[string]*sync.Mutex),
	}
}

func (o *Orchestrator) lockFor(name string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	if l, ok := o.techLock[models.NameKey(name)]; ok {
		return l
	}
	l := &sync.Mutex{}
	o.techLock[models.NameKey(name)] = l
	return l
}

// kpiIndexOnce builds the process-wide KPI index on first use and reuses it
// for the remainder of the run (§5, §4.8).
func (o *Orchestrator) kpiIndexOnce(ctx context.Context) (*calc.Index, error) {
	o.kpiOnce.Do(func() {
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableKPI)
		if err != nil {
			o.kpiErr = fmt.Errorf("reading KPI table: %w", err)
			return
		}
		o.kpiIndex = calc.BuildIndex(parseKPIRows(rows))
	})
	return o.kpiIndex, o.kpiErr
}

// RunForTechnician executes the ordered category pipeline for one
// technician and mirrors its derived Total Pay back to the roster.
func (o *Orchestrator) RunForTechnician(ctx context.Context, name string) (TechnicianResult, error) {
	lock := o.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	outcome := Complete
	defer func() { metrics.RecordRun(outcome.String(), time.Since(start).Seconds()) }()

	t, err := o.Roster.Resolve(name)
	if err != nil {
		outcome = Error
		return TechnicianResult{}, fmt.Errorf("resolving technician %q: %w", name, err)
	}

	result := TechnicianResult{Technician: t.Name, Overall: Complete}
	writer := ledger.NewWriter(t.Name)

	for _, category := range categoryOrder {
		status := o.runCategory(ctx, t, category, writer)
		result.Statuses = append(result.Statuses, status)
		if worse(result.Overall, status.State) {
			result.Overall = status.State
		}
	}

	totalPay := deriveTotalPay(writer.Ledger().Summary)
	writer.SetSummary(func(s *models.Summary) { s.TotalPay = totalPay })
	ledgerOut := writer.Ledger()
	result.TotalPay = totalPay

	blocks := blocksFromLedger(ledgerOut)
	if err := o.Backend.WriteLedger(ctx, t.Name, blocks, ledgerOut.Summary); err != nil {
		o.Log.WithFields(logrus.Fields{"technician": t.Name}).WithError(err).Error("writing ledger")
		result.Overall = Error
		outcome = Error
		return result, nil
	}

	if err := o.Backend.UpdateRosterPay(ctx, t.Name, totalPay); err != nil {
		o.Log.WithFields(logrus.Fields{"technician": t.Name}).WithError(err).Error("updating roster pay")
		result.Overall = Error
	}

	outcome = result.Overall
	return result, nil
}

// RunAll enumerates the roster and runs the pipeline for every technician on
// it. There is no check for an existing ledger: the backend's WriteLedger
// creates one for a technician who has none. A technician whose
// RunForTechnician call returns an error is recorded as Skipped with a
// warning, never fatal to the run.
func (o *Orchestrator) RunAll(ctx context.Context) ([]TechnicianResult, error) {
	start := time.Now()
	names := o.Roster.Names()
	results := make([]TechnicianResult, 0, len(names))
	overall := Complete

	for _, name := range names {
		result, err := o.RunForTechnician(ctx, name)
		if err != nil {
			o.Log.WithFields(logrus.Fields{"technician": name}).WithError(err).Warn("skipping technician")
			results = append(results, TechnicianResult{Technician: name, Overall: Skipped})
			if worse(overall, Skipped) {
				overall = Skipped
			}
			continue
		}
		results = append(results, result)
		if worse(overall, result.Overall) {
			overall = result.Overall
		}
	}

	metrics.RecordRun("batch_"+overall.String(), time.Since(start).Seconds())
	return results, nil
}

// runCategory executes one category for one technician, catching per-
// category failures so they never abort the rest of the pipeline (§7).
func (o *Orchestrator) runCategory(ctx context.Context, t models.Technician, category models.Category, writer *ledger.Writer) CategoryStatus {
	status := CategoryStatus{Category: category, State: Processing}
	start := time.Now()
	defer func() { metrics.RecordCategory(string(category), status.State.String(), time.Since(start).Seconds()) }()

	done := make(chan struct{})
	var runErr error

	go func() {
		defer close(done)
		runErr = o.dispatch(ctx, t, category, writer)
	}()

	select {
	case <-done:
		if runErr != nil {
			o.Log.WithFields(logrus.Fields{"technician": t.Name, "category": category}).WithError(runErr).Error("category failed")
			status.State = Error
			status.Note = runErr.Error()
			return status
		}
		status.State = Complete
		status.Amount = categoryAmount(category, writer.Ledger().Summary)
		return status
	case <-time.After(categoryTimeout):
		o.Log.WithFields(logrus.Fields{"technician": t.Name, "category": category}).Error("category timed out")
		status.State = Error
		status.Note = "timed out"
		return status
	}
}

// dispatch is the category → calculator closure table described in §9: one
// dispatch table keyed by category, each entry a closure the orchestrator
// builds per technician.
func (o *Orchestrator) dispatch(ctx context.Context, t models.Technician, category models.Category, writer *ledger.Writer) error {
	switch category {
	case models.CategorySpiff:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableSpiffBonus)
		if err != nil {
			return err
		}
		entries, err := parseSpiffRows(rows)
		if err != nil {
			return err
		}
		result := calc.ComputeSpiffBonus(t, entries)
		writer.WriteBlock(ledger.Block{Tag: models.CategorySpiff, Lines: result.Lines, Total: result.Total.Amount})
		writer.SetSummary(func(s *models.Summary) { s.Bonus = result.Total.Amount })
		return nil

	case models.CategoryPBP:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TablePBP)
		if err != nil {
			return err
		}
		entries, err := parsePBPRows(rows)
		if err != nil {
			return err
		}
		result, _ := calc.ComputePBP(t, entries, o.resolveTechnician)
		writer.WriteBlock(ledger.Block{Tag: models.CategoryPBP, Lines: result.Lines, Total: result.Total.Amount})
		writer.SetSummary(func(s *models.Summary) { s.TotalInstallPay = result.Total.Amount })
		return nil

	case models.CategoryKPI:
		idx, err := o.kpiIndexOnce(ctx)
		if err != nil {
			return err
		}
		result := calc.ComputeKPI(o.Period, idx.For(t))
		writer.SetSummary(func(s *models.Summary) {
			s.CallByCallScore = result.Average
			s.KPIBonus = result.Bonus
		})
		return nil

	case models.CategoryYardSign:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableYardSign)
		if err != nil {
			return err
		}
		entries, err := parseYardSignRows(rows)
		if err != nil {
			return err
		}
		result := calc.ComputeYardSign(t, entries)
		writer.WriteBlock(ledger.Block{Tag: models.CategoryYardSign, Lines: result.Lines, Total: result.Total.Amount})
		writer.SetSummary(func(s *models.Summary) { s.YardSignSpiff = result.Total.Amount })
		return nil

	case models.CategoryTimesheet:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableTimesheet)
		if err != nil {
			return err
		}
		entries, err := parseTimesheetRows(rows)
		if err != nil {
			return err
		}
		result := calc.ComputeTimesheet(t, entries)
		writer.SetSummary(func(s *models.Summary) {
			s.HourlyRate = t.BaseHourlyRate
			s.RegularHours = result.RegularHours
			s.OvertimeHours = result.OvertimeHours
			s.PTOHours = result.PTOHours
			s.TotalHourlyPay = t.BaseHourlyRate.Mul(result.RegularHours).Add(t.BaseHourlyRate.Mul(decimal.NewFromFloat(1.5)).Mul(result.OvertimeHours))
		})
		return nil

	case models.CategoryService:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableService)
		if err != nil {
			return err
		}
		entries, err := parseServiceRows(rows)
		if err != nil {
			return err
		}
		result := calc.ComputeService(t, entries)
		if result.Found {
			writer.SetSummary(func(s *models.Summary) {
				s.CompletedRevenue = result.CompletedRevenue
				s.TotalSales = result.TotalSales
			})
		}
		return nil

	case models.CategoryLeadSet:
		rows, err := o.Backend.ReadTable(ctx, sheetsource.TableLeadSet)
		if err != nil {
			return err
		}
		entries, err := parseLeadSetRows(rows)
		if err != nil {
			return err
		}
		result := calc.ComputeLeadSet(t, entries)
		sale, commission := calc.LeadSetSummary(result.Lines, entries, t)
		writer.WriteBlock(ledger.Block{Tag: models.CategoryLeadSet, Lines: result.Lines, Total: result.Total.Amount})
		writer.SetSummary(func(s *models.Summary) {
			s.LeadSetSale = sale
			s.LeadSetCommission = commission
		})
		return nil

	default:
		return fmt.Errorf("unknown category %q", category)
	}
}

func (o *Orchestrator) resolveTechnician(name string) (models.Technician, bool) {
	t, err := o.Roster.Resolve(name)
	if err != nil {
		return models.Technician{}, false
	}
	return t, true
}

// deriveTotalPay sums every summary cell that contributes to Total Pay
// (§6): hourly pay, bonus/spiff, yard sign, PBP install pay, lead-set
// commission, and KPI bonus are additive; the service fields
// completedRevenue and totalSales are informational only and do not feed
// Total Pay.
func deriveTotalPay(s models.Summary) decimal.Decimal {
	return s.TotalHourlyPay.
		Add(s.Bonus).
		Add(s.YardSignSpiff).
		Add(s.TotalInstallPay).
		Add(s.LeadSetCommission).
		Add(s.KPIBonus)
}

// blocksFromLedger regroups a ledger's accumulated lines into per-category
// blocks, the shape WriteLedger expects. Every pipeline category gets an
// entry even when it produced no lines (KPI, Timesheet, Service only ever
// call SetSummary), so a summary-only category's contribution still reaches
// the backend's per-tag summary row alongside the full Summary passed
// separately.
func blocksFromLedger(l models.TechnicianLedger) map[models.Category]ledger.Block {
	grouped := make(map[models.Category][]models.ComputedLine)
	for _, line := range l.Lines {
		grouped[line.CategoryTag] = append(grouped[line.CategoryTag], line)
	}
	blocks := make(map[models.Category]ledger.Block, len(categoryOrder))
	for _, tag := range categoryOrder {
		blocks[tag] = ledger.Block{Tag: tag, Lines: grouped[tag], Total: categoryAmount(tag, l.Summary)}
	}
	return blocks
}

// categoryAmount returns the summary field that holds a category's own
// monetary contribution, used both for its ledger summary row and for
// CategoryStatus.Amount.
func categoryAmount(category models.Category, s models.Summary) decimal.Decimal {
	switch category {
	case models.CategorySpiff:
		return s.Bonus
	case models.CategoryPBP:
		return s.TotalInstallPay
	case models.CategoryYardSign:
		return s.YardSignSpiff
	case models.CategoryLeadSet:
		return s.LeadSetCommission
	case models.CategoryKPI:
		return s.KPIBonus
	case models.CategoryService:
		return s.CompletedRevenue
	case models.CategoryTimesheet:
		return s.TotalHourlyPay
	default:
		return decimal.Zero
	}
}
