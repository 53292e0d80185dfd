package cashflow

import (
	"testing"

	"finhealth/pkg/core/forecast"
	"finhealth/pkg/models"
)

func TestComputeProfitable(t *testing.T) {
	s := Compute(models.FinancialRecord{
		Revenue:     120000,
		Expenses:    90000,
		Assets:      200000,
		Liabilities: 80000,
	})

	if s.NetCashFlow != 30000 {
		t.Errorf("expected net 30000, got %f", s.NetCashFlow)
	}
	if s.BurnRate != 0 {
		t.Errorf("profitable business has no burn, got %f", s.BurnRate)
	}
	if s.LiquidityRatio != 2.5 {
		t.Errorf("expected liquidity 2.5, got %f", s.LiquidityRatio)
	}
}

func TestComputeBurning(t *testing.T) {
	s := Compute(models.FinancialRecord{Revenue: 50000, Expenses: 80000})

	if s.NetCashFlow != -30000 {
		t.Errorf("expected net -30000, got %f", s.NetCashFlow)
	}
	if s.BurnRate != 30000 {
		t.Errorf("expected burn 30000, got %f", s.BurnRate)
	}
	if s.LiquidityRatio != 0 {
		t.Errorf("zero liabilities should yield 0 liquidity ratio, got %f", s.LiquidityRatio)
	}
}

func TestComputeHistory(t *testing.T) {
	ts := &forecast.TimeSeries{Months: []forecast.MonthlyPoint{
		{Period: "2025-01", Revenue: 100, Expenses: 150, Assets: 500, Liabilities: 250},
		{Period: "2025-02", Revenue: 200, Expenses: 150},
		{Period: "2025-03", Revenue: 100, Expenses: 200},
	}}

	h := ComputeHistory(ts)

	if len(h.Monthly) != 3 {
		t.Fatalf("expected 3 months, got %d", len(h.Monthly))
	}
	if h.Monthly[0].NetCashFlow != -50 || h.Monthly[1].NetCashFlow != 50 {
		t.Errorf("monthly net cashflow wrong: %+v", h.Monthly)
	}
	if h.Monthly[0].LiquidityRatio != 2 {
		t.Errorf("expected liquidity 2 in January, got %f", h.Monthly[0].LiquidityRatio)
	}
	// Negative months: -50 and -100 -> mean burn 75.
	if h.BurnRate != 75 {
		t.Errorf("expected burn 75, got %f", h.BurnRate)
	}
}

func TestComputeHistoryEmpty(t *testing.T) {
	h := ComputeHistory(nil)
	if len(h.Monthly) != 0 || h.BurnRate != 0 {
		t.Errorf("empty series should yield empty history, got %+v", h)
	}
}
