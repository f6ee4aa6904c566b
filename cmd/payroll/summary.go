package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikolai-cardinal/payroll-engine/internal/orchestrator"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
	"github.com/nikolai-cardinal/payroll-engine/internal/sheetsource"
)

func init() {
	cmd := &cobra.Command{
		Use:   "print-summary",
		Short: "Run the pipeline and print each technician's total pay without writing the workbook back to disk",
		RunE:  runPrintSummary,
	}
	cmd.Flags().Bool("dry-run", false, "Snapshot the workbook into an in-memory backend first, so even workbook reads never touch the file twice")
	rootCmd.AddCommand(cmd)
}

func runPrintSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	excelBackend, err := sheetsource.OpenExcelBackend(cfg.Workbook, cfg.KPIWorkbook)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}
	defer excelBackend.Close()

	var backend sheetsource.Backend = excelBackend
	if dryRun {
		mem, err := snapshotToMemory(cmd.Context(), excelBackend)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRosterSchema, err)
		}
		backend = mem
	}

	rosterRows, err := backend.ListRoster(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}
	resolver, err := roster.New(rosterRows)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}

	period, err := resolvePeriod(cmd.Context(), excelBackend, cfg.PayPeriod)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}

	orch := orchestrator.New(backend, resolver, period, log)
	results, err := orch.RunAll(cmd.Context())
	if err != nil {
		return err
	}

	printResults(cmd, results)
	return overallExitError(results)
}

// snapshotToMemory copies the tables print-summary needs from the workbook
// into a MemoryBackend, so a --dry-run never mutates the open excelize.File.
func snapshotToMemory(ctx context.Context, src *sheetsource.ExcelBackend) (*sheetsource.MemoryBackend, error) {
	mem := sheetsource.NewMemoryBackend()

	rosterRows, err := src.ListRoster(ctx)
	if err != nil {
		return nil, err
	}
	mem.Roster = rosterRows

	payPeriod, err := src.PayPeriodText(ctx)
	if err != nil {
		return nil, err
	}
	mem.PayPeriod = payPeriod

	tables := []string{
		sheetsource.TablePBP,
		sheetsource.TableSpiffBonus,
		sheetsource.TableYardSign,
		sheetsource.TableTimesheet,
		sheetsource.TableLeadSet,
		sheetsource.TableService,
		sheetsource.TableKPI,
	}
	for _, name := range tables {
		rows, err := src.ReadTable(ctx, name)
		if err != nil {
			continue
		}
		mem.Tables[name] = rows
	}

	return mem, nil
}
