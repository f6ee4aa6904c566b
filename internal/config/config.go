// Package config loads the engine's run-time configuration from a .env file
// and the process environment, grounded on the teacher pack's viper +
// godotenv loading idiom.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the typed configuration bound from the environment.
type Config struct {
	Workbook      string `mapstructure:"workbook"`
	KPIWorkbook   string `mapstructure:"kpi_workbook"`
	PayPeriod     string `mapstructure:"pay_period"`
	DatabaseURL   string `mapstructure:"database_url"`
	RatePacingMS  int    `mapstructure:"rate_pacing_ms"` // named only, not consumed by the core
	MetricsAddr   string `mapstructure:"metrics_addr"`
}

// Load reads a .env file (if present) then binds PAYROLL_* environment
// variables into Config via viper.
func Load() (*Config, error) {
	if envFile := strings.TrimSpace(os.Getenv("PAYROLL_ENV_FILE")); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %q: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	viper.SetEnvPrefix("PAYROLL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("rate_pacing_ms", 0)
	viper.SetDefault("metrics_addr", "")

	viper.BindEnv("workbook", "PAYROLL_WORKBOOK")
	viper.BindEnv("kpi_workbook", "PAYROLL_KPI_WORKBOOK")
	viper.BindEnv("pay_period", "PAYROLL_PAY_PERIOD")
	viper.BindEnv("database_url", "PAYROLL_DB_URL")
	viper.BindEnv("rate_pacing_ms", "PAYROLL_RATE_PACING_MS")
	viper.BindEnv("metrics_addr", "PAYROLL_METRICS_ADDR")

	cfg := &Config{
		Workbook:     viper.GetString("workbook"),
		KPIWorkbook:  viper.GetString("kpi_workbook"),
		PayPeriod:    viper.GetString("pay_period"),
		DatabaseURL:  viper.GetString("database_url"),
		RatePacingMS: viper.GetInt("rate_pacing_ms"),
		MetricsAddr:  viper.GetString("metrics_addr"),
	}

	if cfg.Workbook == "" {
		return cfg, fmt.Errorf("PAYROLL_WORKBOOK is required")
	}

	return cfg, nil
}
