package esg

import (
	"testing"

	"finhealth/pkg/models"
)

func TestScoreBestCase(t *testing.T) {
	// cost ratio 0.5 -> 20, liabilities/assets 0.3 -> 20 (E=40)
	// receivables/revenue 0.2 -> 15, payables/expenses 0.3 -> 15 (S=30)
	// debt/equity 0.14 -> 15, solvent -> 15 (G=30)
	rec := models.FinancialRecord{
		Revenue:     1000000,
		Expenses:    500000,
		Assets:      1000000,
		Liabilities: 300000,
		Receivables: 200000,
		Payables:    150000,
		Debt:        100000,
	}

	res := Score(rec)

	if res.Score != 100 {
		t.Errorf("expected 100, got %d", res.Score)
	}
	if res.Category != "Sustainable Leader" {
		t.Errorf("expected Sustainable Leader, got %s", res.Category)
	}
	if res.Breakdown["environmental"] != 40 || res.Breakdown["social"] != 30 || res.Breakdown["governance"] != 30 {
		t.Errorf("pillar breakdown wrong: %v", res.Breakdown)
	}
}

func TestScoreWorstCase(t *testing.T) {
	// cost ratio 0.98 -> 5, liabilities > assets -> 10 (E=15)
	// receivables heavy -> 7, payables thin -> 7 (S=14)
	// negative equity -> 7, insolvent -> 5 (G=12)
	rec := models.FinancialRecord{
		Revenue:     1000000,
		Expenses:    980000,
		Assets:      500000,
		Liabilities: 800000,
		Receivables: 600000,
		Payables:    10000,
		Debt:        400000,
	}

	res := Score(rec)

	if res.Score != 41 {
		t.Errorf("expected 41, got %d", res.Score)
	}
	if res.Category != "Needs Improvement" {
		t.Errorf("expected Needs Improvement, got %s", res.Category)
	}
}

func TestScoreZeroRevenueSkipsCostCheck(t *testing.T) {
	// With zero revenue the cost-ratio check contributes nothing; the
	// receivables check falls to its low tier (7).
	rec := models.FinancialRecord{
		Assets:      100000,
		Liabilities: 20000,
	}

	res := Score(rec)

	// E = 0 + 20, S = 7 + 7, G = 15 + 15 -> 64 -> Moderate
	if res.Score != 64 {
		t.Errorf("expected 64, got %d", res.Score)
	}
	if res.Category != "Moderate" {
		t.Errorf("expected Moderate, got %s", res.Category)
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	for _, rec := range []models.FinancialRecord{
		{},
		{Revenue: -100, Expenses: -100},
		{Revenue: 1, Expenses: 1e12, Liabilities: 1e12},
	} {
		res := Score(rec)
		if res.Score < 0 || res.Score > 100 {
			t.Errorf("score %d out of [0,100] for %+v", res.Score, rec)
		}
	}
}
