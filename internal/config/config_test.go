package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
}

func TestLoad_MissingWorkbookReturnsErrorButKeepsOtherFields(t *testing.T) {
	resetViper(t)
	t.Setenv("PAYROLL_WORKBOOK", "")
	t.Setenv("PAYROLL_PAY_PERIOD", "06/01 - 06/07")

	cfg, err := Load()
	assert.Error(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "06/01 - 06/07", cfg.PayPeriod)
}

func TestLoad_ReadsAllBoundEnvVars(t *testing.T) {
	resetViper(t)
	t.Setenv("PAYROLL_WORKBOOK", "/tmp/payroll.xlsx")
	t.Setenv("PAYROLL_KPI_WORKBOOK", "/tmp/kpi.xlsx")
	t.Setenv("PAYROLL_PAY_PERIOD", "06/01 - 06/07")
	t.Setenv("PAYROLL_DB_URL", "postgres://localhost/payroll")
	t.Setenv("PAYROLL_METRICS_ADDR", ":9090")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/payroll.xlsx", cfg.Workbook)
	assert.Equal(t, "/tmp/kpi.xlsx", cfg.KPIWorkbook)
	assert.Equal(t, "06/01 - 06/07", cfg.PayPeriod)
	assert.Equal(t, "postgres://localhost/payroll", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}
