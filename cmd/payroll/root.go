package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikolai-cardinal/payroll-engine/internal/config"
	"github.com/nikolai-cardinal/payroll-engine/internal/metrics"
	"github.com/nikolai-cardinal/payroll-engine/internal/orchestrator"
	"github.com/nikolai-cardinal/payroll-engine/internal/roster"
	"github.com/nikolai-cardinal/payroll-engine/internal/sheetsource"
)

// ErrRosterSchema signals the roster/header mapping could not be resolved
// (exit code 2, §6).
var ErrRosterSchema = errors.New("roster schema error")

// ErrPartialFailure signals at least one technician finished Skipped or
// Error (exit code 3, §6).
var ErrPartialFailure = errors.New("one or more technicians did not complete cleanly")

var log = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Run the field-service payroll compensation engine",
}

func init() {
	rootCmd.PersistentFlags().String("workbook", "", "Path to the payroll workbook (overrides PAYROLL_WORKBOOK)")
	rootCmd.PersistentFlags().String("kpi-workbook", "", "Path to the external KPI workbook (overrides PAYROLL_KPI_WORKBOOK)")
	rootCmd.PersistentFlags().String("period", "", "Pay period label, e.g. \"06/01 - 06/07\" (overrides PAYROLL_PAY_PERIOD)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Address to serve /metrics on, e.g. \":9091\" (overrides PAYROLL_METRICS_ADDR)")
}

// Execute runs the CLI and returns the terminal error, if any.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// exitCodeFor maps a returned error to the process exit code described in
// §6: 0 success, 2 roster/schema error, 3 partial failure.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrRosterSchema):
		return 2
	case errors.Is(err, ErrPartialFailure):
		return 3
	default:
		return 1
	}
}

// loadedConfig merges PAYROLL_* environment configuration with any flags
// the command explicitly set, flags taking precedence.
func loadedConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _ := config.Load()

	if v, _ := cmd.Flags().GetString("workbook"); v != "" {
		cfg.Workbook = v
	}
	if v, _ := cmd.Flags().GetString("kpi-workbook"); v != "" {
		cfg.KPIWorkbook = v
	}
	if v, _ := cmd.Flags().GetString("period"); v != "" {
		cfg.PayPeriod = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}
	if cfg.Workbook == "" {
		return nil, fmt.Errorf("%w: no workbook configured (--workbook or PAYROLL_WORKBOOK)", ErrRosterSchema)
	}
	return cfg, nil
}

// buildOrchestrator opens the workbook backend, resolves the roster, and
// assembles the orchestrator a run command needs. The caller owns closing
// the returned backend.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, *sheetsource.ExcelBackend, error) {
	backend, err := sheetsource.OpenExcelBackend(cfg.Workbook, cfg.KPIWorkbook)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}

	rosterRows, err := backend.ListRoster(context.Background())
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("%w: reading roster: %v", ErrRosterSchema, err)
	}
	resolver, err := roster.New(rosterRows)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}

	period, err := resolvePeriod(context.Background(), backend, cfg.PayPeriod)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrRosterSchema, err)
	}

	return orchestrator.New(backend, resolver, period, log), backend, nil
}

func startMetricsIfConfigured(cfg *config.Config) func(context.Context) error {
	if cfg.MetricsAddr == "" {
		return func(context.Context) error { return nil }
	}
	srv := metrics.NewServer(cfg.MetricsAddr)
	srv.Start(log)
	return srv.Stop
}

func overallExitError(results []orchestrator.TechnicianResult) error {
	for _, r := range results {
		if r.Overall != orchestrator.Complete {
			return ErrPartialFailure
		}
	}
	return nil
}
