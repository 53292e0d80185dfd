package pipeline

import (
	"context"
	"testing"
	"time"

	"finhealth/pkg/core/narrative"
	"finhealth/pkg/core/risk"
	"finhealth/pkg/models"
)

func monthlyRecord(year int, month time.Month, revenue, expenses float64) models.FinancialRecord {
	return models.FinancialRecord{
		Revenue:     revenue,
		Expenses:    expenses,
		Assets:      500000,
		Liabilities: 200000,
		Receivables: 40000,
		Payables:    30000,
		Inventory:   20000,
		Debt:        50000,
		Date:        time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunFullAssessment(t *testing.T) {
	o := NewOrchestrator(nil)

	in := Input{
		BusinessID: 7,
		Industry:   "Retail",
		Records: []models.FinancialRecord{
			monthlyRecord(2025, time.January, 100000, 80000),
			monthlyRecord(2025, time.February, 110000, 82000),
			monthlyRecord(2025, time.March, 120000, 84000),
			monthlyRecord(2025, time.April, 130000, 86000),
		},
	}

	got, err := o.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.AssessmentID == "" {
		t.Error("expected a generated assessment ID")
	}
	if got.BusinessID != 7 {
		t.Errorf("business ID = %d, want 7", got.BusinessID)
	}

	// 4 records, growing revenue: forecast must run and trend up.
	if got.Forecast == nil || got.ForecastSignals == nil {
		t.Fatal("expected forecast with >= 3 records")
	}
	if got.ForecastSignals.TrendDirection != "positive" {
		t.Errorf("trend = %q, want positive", got.ForecastSignals.TrendDirection)
	}
	// Default horizon is 3 months.
	if len(got.Forecast.RevenueForecast) != 3 {
		t.Errorf("revenue forecast length = %d, want 3", len(got.Forecast.RevenueForecast))
	}

	// Adjusted risk is base + modifier clamped into [300, 900].
	want := got.BaseRiskScore + got.BenchmarkModifier
	if want < risk.MinScore {
		want = risk.MinScore
	}
	if want > risk.MaxScore {
		want = risk.MaxScore
	}
	if got.Risk.Score != want {
		t.Errorf("adjusted risk = %d, want %d", got.Risk.Score, want)
	}
	if got.Risk.Category != risk.Categorize(got.Risk.Score) {
		t.Errorf("category %q does not match adjusted score %d", got.Risk.Category, got.Risk.Score)
	}

	if got.Benchmark.Industry != "retail" || got.Benchmark.UsedDefault {
		t.Errorf("benchmark = %+v, want known retail table", got.Benchmark)
	}

	if got.Investor.Score < 0 || got.Investor.Score > 100 {
		t.Errorf("investor score out of range: %d", got.Investor.Score)
	}
	if got.ESG.Score < 0 || got.ESG.Score > 100 {
		t.Errorf("esg score out of range: %d", got.ESG.Score)
	}

	// Latest record: 130000 - 86000 = 44000 net cash flow.
	if got.Cashflow.NetCashFlow != 44000 {
		t.Errorf("net cash flow = %v, want 44000", got.Cashflow.NetCashFlow)
	}
	if len(got.CashflowHistory.Monthly) != 4 {
		t.Errorf("cashflow history months = %d, want 4", len(got.CashflowHistory.Monthly))
	}

	if len(got.Products.Suggested) == 0 {
		t.Error("expected product recommendations")
	}
	if got.Narrative != nil {
		t.Error("narrative must be nil without a narrator")
	}
}

func TestRunNoRecords(t *testing.T) {
	o := NewOrchestrator(nil)
	if _, err := o.Run(context.Background(), Input{BusinessID: 1}); err == nil {
		t.Fatal("expected error for empty record set")
	}
}

func TestRunThinHistorySkipsForecast(t *testing.T) {
	o := NewOrchestrator(nil)

	in := Input{
		BusinessID: 2,
		Industry:   "services",
		Records: []models.FinancialRecord{
			monthlyRecord(2025, time.May, 90000, 70000),
			monthlyRecord(2025, time.June, 95000, 72000),
		},
	}

	got, err := o.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Forecast != nil || got.ForecastSignals != nil {
		t.Error("forecast must be skipped below 3 records")
	}
	// Warnings still evaluate with neutral forecast input.
	if got.Warnings.SurvivalScore < 0 || got.Warnings.SurvivalScore > 100 {
		t.Errorf("survival score out of range: %d", got.Warnings.SurvivalScore)
	}
}

func TestRunSortsRecordsByDate(t *testing.T) {
	o := NewOrchestrator(nil)

	// Newest record first on input; the pipeline must still assess the
	// June statement (120000 - 60000 = 60000 net).
	in := Input{
		BusinessID: 3,
		Industry:   "manufacturing",
		Records: []models.FinancialRecord{
			monthlyRecord(2025, time.June, 120000, 60000),
			monthlyRecord(2025, time.April, 80000, 70000),
			monthlyRecord(2025, time.May, 100000, 65000),
		},
	}

	got, err := o.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Cashflow.NetCashFlow != 60000 {
		t.Errorf("net cash flow = %v, want 60000 (latest statement)", got.Cashflow.NetCashFlow)
	}
}

func TestRunCustomHorizon(t *testing.T) {
	o := NewOrchestrator(nil)

	in := Input{
		BusinessID:    4,
		HorizonMonths: 6,
		Records: []models.FinancialRecord{
			monthlyRecord(2025, time.January, 50000, 40000),
			monthlyRecord(2025, time.February, 52000, 41000),
			monthlyRecord(2025, time.March, 54000, 42000),
		},
	}

	got, err := o.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Forecast == nil {
		t.Fatal("expected a forecast")
	}
	if len(got.Forecast.CashflowForecast) != 6 {
		t.Errorf("cashflow forecast length = %d, want 6", len(got.Forecast.CashflowForecast))
	}
}

type fixedNarrator struct {
	calls int
	last  narrative.Input
}

func (f *fixedNarrator) Generate(ctx context.Context, in narrative.Input) narrative.Summary {
	f.calls++
	f.last = in
	return narrative.Summary{StrategicActions: []string{"hold course"}}
}

func TestRunInvokesNarrator(t *testing.T) {
	n := &fixedNarrator{}
	o := NewOrchestrator(n)

	in := Input{
		BusinessID: 5,
		Language:   "hi",
		Records: []models.FinancialRecord{
			monthlyRecord(2025, time.March, 100000, 90000),
		},
	}

	got, err := o.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n.calls != 1 {
		t.Fatalf("narrator calls = %d, want 1", n.calls)
	}
	if n.last.Language != "hi" {
		t.Errorf("narrator language = %q, want hi", n.last.Language)
	}
	// Narrator sees the benchmark-adjusted risk result.
	if n.last.Risk.Score != got.Risk.Score {
		t.Errorf("narrator risk %d != assessment risk %d", n.last.Risk.Score, got.Risk.Score)
	}
	if got.Narrative == nil || got.Narrative.StrategicActions[0] != "hold course" {
		t.Errorf("narrative not attached: %+v", got.Narrative)
	}
}
