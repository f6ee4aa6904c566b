package main

import (
	"context"
	"time"

	"github.com/nikolai-cardinal/payroll-engine/internal/dateparse"
	"github.com/nikolai-cardinal/payroll-engine/internal/models"
	"github.com/nikolai-cardinal/payroll-engine/internal/sheetsource"
)

// resolvePeriod prefers an explicit --period/PAYROLL_PAY_PERIOD label, falls
// back to the workbook's own pay-period cell, and finally defaults to the
// trailing seven days ending today if neither parses (§6).
func resolvePeriod(ctx context.Context, backend *sheetsource.ExcelBackend, override string) (models.PayPeriod, error) {
	label := override
	if label == "" {
		text, err := backend.PayPeriodText(ctx)
		if err != nil {
			return models.PayPeriod{}, err
		}
		label = text
	}

	now := time.Now()
	start, end, ok := dateparse.ParsePayPeriodRange(label, now)
	if !ok {
		start, end = dateparse.DefaultTrailingWeek(now)
	}
	return models.PayPeriod{Label: label, StartDate: start, EndDate: end}, nil
}
