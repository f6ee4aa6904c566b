package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikolai-cardinal/payroll-engine/internal/orchestrator"
)

func init() {
	rootCmd.AddCommand(newRunAllCmd())
	rootCmd.AddCommand(newRunTechCmd())
}

func newRunAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-all",
		Short: "Run every category for every technician on the roster",
		RunE:  runRunAll,
	}
}

func newRunTechCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-tech <name>",
		Short: "Run every category for one technician",
		Args:  cobra.ExactArgs(1),
		RunE:  runRunTech,
	}
}

func runRunAll(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd)
	if err != nil {
		return err
	}
	stopMetrics := startMetricsIfConfigured(cfg)
	defer stopMetrics(context.Background())

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

	printResults(cmd, results)
	return overallExitError(results)
}

func runRunTech(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd)
	if err != nil {
		return err
	}
	stopMetrics := startMetricsIfConfigured(cfg)
	defer stopMetrics(context.Background())

	orch, backend, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	result, err := orch.RunForTechnician(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := backend.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	results := []orchestrator.TechnicianResult{result}
	printResults(cmd, results)
	return overallExitError(results)
}

func printResults(cmd *cobra.Command, results []orchestrator.TechnicianResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s: %s (total pay %s)\n", r.Technician, r.Overall, r.TotalPay.StringFixed(2))
		for _, status := range r.Statuses {
			if status.State == orchestrator.Complete {
				continue
			}
			fmt.Fprintf(out, "  %s: %s %s\n", status.Category, status.State, status.Note)
		}
	}
	log.WithFields(logrus.Fields{"technicians": len(results)}).Info("run complete")
}
