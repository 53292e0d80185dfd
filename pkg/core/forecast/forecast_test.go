package forecast

import (
	"errors"
	"testing"
	"time"

	"finhealth/pkg/models"
)

func rec(year int, month time.Month, revenue, expenses float64) models.FinancialRecord {
	return models.FinancialRecord{
		Revenue:  revenue,
		Expenses: expenses,
		Date:     time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildTimeSeriesErrors(t *testing.T) {
	_, err := BuildTimeSeries(nil)
	var fe *Error
	if !errors.As(err, &fe) || fe.Code != CodeNoData {
		t.Errorf("empty input should fail with NO_DATA, got %v", err)
	}

	_, err = BuildTimeSeries([]models.FinancialRecord{{Revenue: 100}})
	if !errors.As(err, &fe) || fe.Code != CodeMissingDate {
		t.Errorf("dateless record should fail with MISSING_DATE, got %v", err)
	}
}

func TestBuildTimeSeriesMonthlyAggregation(t *testing.T) {
	records := []models.FinancialRecord{
		rec(2025, time.March, 300, 100),
		rec(2025, time.January, 100, 40),
		rec(2025, time.January, 50, 10), // same month, summed
		rec(2025, time.February, 200, 80),
	}

	ts, err := BuildTimeSeries(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.Months) != 3 {
		t.Fatalf("expected 3 monthly buckets, got %d", len(ts.Months))
	}
	if ts.Months[0].Period != "2025-01" || ts.Months[2].Period != "2025-03" {
		t.Errorf("months not ordered: %v", ts.Months)
	}
	if ts.Months[0].Revenue != 150 || ts.Months[0].Expenses != 50 {
		t.Errorf("January should sum to 150/50, got %+v", ts.Months[0])
	}
}

func TestGenerateLinearFit(t *testing.T) {
	// Revenue [100, 200]: slope 100, intercept 100; next index 2 -> 300.
	records := []models.FinancialRecord{
		rec(2025, time.January, 100, 0),
		rec(2025, time.February, 200, 0),
	}

	res, err := GenerateFromRecords(records, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.RevenueForecast) != 1 || res.RevenueForecast[0] != 300 {
		t.Errorf("expected revenue projection [300], got %v", res.RevenueForecast)
	}
	if res.Confidence != FittedConfidence {
		t.Errorf("expected confidence 0.7, got %f", res.Confidence)
	}
}

func TestGenerateDegenerateSinglePoint(t *testing.T) {
	records := []models.FinancialRecord{rec(2025, time.June, 5000, 3000)}

	res, err := GenerateFromRecords(records, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range res.RevenueForecast {
		if v != 5000 {
			t.Errorf("flat forecast month %d expected 5000, got %f", i, v)
		}
	}
	for _, v := range res.CashflowForecast {
		if v != 2000 {
			t.Errorf("flat cashflow expected 2000, got %f", v)
		}
	}
	if res.Confidence != DegenerateConfidence {
		t.Errorf("expected confidence 0.5, got %f", res.Confidence)
	}
}

func TestGenerateClampsRevenueButNotCashflow(t *testing.T) {
	// Declining revenue [1000, 400]: slope -600, intercept 1000.
	// Projections: x=2 -> -200 (clamped to 0), x=3 -> -800 (clamped).
	// Expenses flat at 500, so cashflow history [500, -100]:
	// slope -600, intercept 500 -> x=2 -> -700 (NOT clamped).
	records := []models.FinancialRecord{
		rec(2025, time.January, 1000, 500),
		rec(2025, time.February, 400, 500),
	}

	res, err := GenerateFromRecords(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.RevenueForecast[0] != 0 || res.RevenueForecast[1] != 0 {
		t.Errorf("negative revenue projections must clamp to 0, got %v", res.RevenueForecast)
	}
	if res.CashflowForecast[0] != -700 {
		t.Errorf("cashflow must stay negative, expected -700, got %f", res.CashflowForecast[0])
	}
}

func TestExtractSignalsNegativeTrend(t *testing.T) {
	res := &Result{
		CashflowForecast: []float64{-5000, -6000, -7000},
		Confidence:       FittedConfidence,
		latestAssets:     30000,
	}

	s := ExtractSignals(res)

	if s.TrendDirection != TrendNegative {
		t.Errorf("expected negative trend, got %s", s.TrendDirection)
	}
	if s.NegativeCashflowMonths != 3 {
		t.Errorf("expected 3 negative months, got %d", s.NegativeCashflowMonths)
	}
	if !s.LiquidityRiskForecast {
		t.Error("negative months should raise the liquidity risk signal")
	}
	// avg = -6000 -> within [-10000, 0) -> score 60
	if s.LiquidityForecastScore != 60 {
		t.Errorf("expected liquidity score 60, got %d", s.LiquidityForecastScore)
	}
	// runway = 30000 / 6000 = 5 months
	if s.CashRunwayMonths != 5 {
		t.Errorf("expected 5 month runway, got %f", s.CashRunwayMonths)
	}
}

func TestExtractSignalsPositive(t *testing.T) {
	res := &Result{
		CashflowForecast: []float64{1000, 2000, 3000},
		Confidence:       FittedConfidence,
	}

	s := ExtractSignals(res)

	if s.TrendDirection != TrendPositive || s.NegativeCashflowMonths != 0 {
		t.Errorf("unexpected signals: %+v", s)
	}
	if s.LiquidityRiskForecast {
		t.Error("no negative months, no liquidity risk")
	}
	if s.LiquidityForecastScore != 80 {
		t.Errorf("expected score 80, got %d", s.LiquidityForecastScore)
	}
	if s.CashRunwayMonths != 0 {
		t.Errorf("positive trend should leave runway unconstrained, got %f", s.CashRunwayMonths)
	}
	if s.AverageProjectedCashflow != 2000 {
		t.Errorf("expected average 2000, got %f", s.AverageProjectedCashflow)
	}
}

func TestExtractSignalsEmptyForecast(t *testing.T) {
	s := ExtractSignals(nil)
	if s.LiquidityForecastScore != 50 {
		t.Errorf("empty forecast defaults to neutral 50, got %d", s.LiquidityForecastScore)
	}
}

func TestLeastSquaresDeepBurn(t *testing.T) {
	// avg below -10000 -> score 30
	res := &Result{CashflowForecast: []float64{-20000, -30000}, Confidence: FittedConfidence}
	s := ExtractSignals(res)
	if s.LiquidityForecastScore != 30 {
		t.Errorf("expected score 30, got %d", s.LiquidityForecastScore)
	}
}
