package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikolai-cardinal/payroll-engine/internal/archive"
	"github.com/nikolai-cardinal/payroll-engine/internal/orchestrator"
)

func init() {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Run every category for every technician and persist per-category totals to Postgres",
		Long: `archive runs the full pipeline like run-all, then writes each
technician's per-category totals to the Postgres archive named by
PAYROLL_DB_URL (or --db). This is plumbing for downstream reporting; it
never feeds back into a run and a failed archive write never undoes an
already-written workbook.`,
		RunE: runArchive,
	}
	cmd.Flags().String("db", "", "Archive database URL (overrides PAYROLL_DB_URL)")
	rootCmd.AddCommand(cmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DatabaseURL = v
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("no archive database configured (--db or PAYROLL_DB_URL)")
	}

	orch, backend, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	results, err := orch.RunAll(cmd.Context())
	if err != nil {
		return err
	}
	if err := backend.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	store, err := archive.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(cmd.Context()); err != nil {
		return err
	}

	records := recordsFor(results, cfg.PayPeriod)
	inserted, skipped, err := store.WriteBatch(cmd.Context(), records)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "archived %d category totals (%d already present)\n", inserted, skipped)
	return overallExitError(results)
}

// recordsFor flattens each technician's per-category ledger totals into
// archive rows, stamped with a single run timestamp.
func recordsFor(results []orchestrator.TechnicianResult, payPeriod string) []archive.Record {
	runAt := time.Now()
	var records []archive.Record
	for _, r := range results {
		for _, status := range r.Statuses {
			if status.State != orchestrator.Complete {
				continue
			}
			records = append(records, archive.Record{
				RunAt:      runAt,
				PayPeriod:  payPeriod,
				Technician: r.Technician,
				Category:   status.Category,
				Amount:     status.Amount,
				TotalPay:   r.TotalPay,
			})
		}
	}
	return records
}
