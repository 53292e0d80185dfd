package metrics

import (
	"math"
	"testing"
	"time"

	"finhealth/pkg/models"
)

func TestComputeBasicRatios(t *testing.T) {
	rec := models.FinancialRecord{
		Revenue:     1200000,
		Expenses:    900000,
		Assets:      800000,
		Liabilities: 400000,
		Receivables: 200000,
		Payables:    90000,
		Inventory:   100000,
		Debt:        200000,
		Date:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	m := Compute(rec)

	// (1200000-900000)/1200000 * 100 = 25
	if m.GrossMargin != 25 {
		t.Errorf("GrossMargin expected 25, got %f", m.GrossMargin)
	}
	if m.NetMargin != 25 {
		t.Errorf("NetMargin expected 25, got %f", m.NetMargin)
	}
	// 900000/1200000 * 100 = 75
	if m.OperatingRatio != 75 {
		t.Errorf("OperatingRatio expected 75, got %f", m.OperatingRatio)
	}
	// 800000/400000 = 2
	if m.CurrentRatio != 2 {
		t.Errorf("CurrentRatio expected 2, got %f", m.CurrentRatio)
	}
	// (800000-100000)/400000 = 1.75
	if m.QuickRatio != 1.75 {
		t.Errorf("QuickRatio expected 1.75, got %f", m.QuickRatio)
	}
	if m.WorkingCapital != 400000 {
		t.Errorf("WorkingCapital expected 400000, got %f", m.WorkingCapital)
	}
	// 200000/(800000-400000) = 0.5
	if m.DebtToEquity != 0.5 {
		t.Errorf("DebtToEquity expected 0.5, got %f", m.DebtToEquity)
	}
	// 200000/1200000*365 = 60.833... -> 60.83
	if m.ReceivableDays != 60.83 {
		t.Errorf("ReceivableDays expected 60.83, got %f", m.ReceivableDays)
	}
	// 90000/900000*365 = 36.5
	if m.PayableDays != 36.5 {
		t.Errorf("PayableDays expected 36.5, got %f", m.PayableDays)
	}
	// 1200000/100000 = 12
	if m.InventoryTurnover != 12 {
		t.Errorf("InventoryTurnover expected 12, got %f", m.InventoryTurnover)
	}
	// 300000/800000*100 = 37.5
	if m.ReturnOnAssets != 37.5 {
		t.Errorf("ReturnOnAssets expected 37.5, got %f", m.ReturnOnAssets)
	}
	// 200000/1200000 = 0.1667 (4dp)
	if m.DebtServicingRatio != 0.1667 {
		t.Errorf("DebtServicingRatio expected 0.1667, got %f", m.DebtServicingRatio)
	}
	// 200000*0.08/1200000 = 0.0133
	if m.InterestBurdenRatio != 0.0133 {
		t.Errorf("InterestBurdenRatio expected 0.0133, got %f", m.InterestBurdenRatio)
	}
	if m.NegativeRevenue {
		t.Error("NegativeRevenue should be false for positive revenue")
	}
}

// Every zero or negative denominator must yield exactly 0 — never NaN,
// never Inf, never a panic.
func TestComputeSafeDivision(t *testing.T) {
	cases := []struct {
		name string
		rec  models.FinancialRecord
	}{
		{"all zeros", models.FinancialRecord{}},
		{"zero revenue", models.FinancialRecord{Expenses: 50000, Assets: 10000, Debt: 5000}},
		{"zero liabilities", models.FinancialRecord{Revenue: 100000, Assets: 50000}},
		{"negative equity", models.FinancialRecord{Revenue: 100, Assets: 100, Liabilities: 500, Debt: 50}},
		{"negative liabilities", models.FinancialRecord{Revenue: 100, Assets: 100, Liabilities: -10}},
	}

	for _, tc := range cases {
		m := Compute(tc.rec)
		for name, v := range map[string]float64{
			"gross_margin":          m.GrossMargin,
			"net_margin":            m.NetMargin,
			"operating_ratio":       m.OperatingRatio,
			"current_ratio":         m.CurrentRatio,
			"quick_ratio":           m.QuickRatio,
			"debt_to_equity":        m.DebtToEquity,
			"receivable_days":       m.ReceivableDays,
			"payable_days":          m.PayableDays,
			"inventory_turnover":    m.InventoryTurnover,
			"return_on_assets":      m.ReturnOnAssets,
			"debt_servicing_ratio":  m.DebtServicingRatio,
			"interest_burden_ratio": m.InterestBurdenRatio,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: %s is %f, want finite", tc.name, name, v)
			}
		}
	}

	// Zero denominators specifically map to 0.
	m := Compute(models.FinancialRecord{Expenses: 50000})
	if m.OperatingRatio != 0 || m.GrossMargin != 0 || m.ReceivableDays != 0 {
		t.Errorf("zero revenue should zero all revenue-based ratios, got %+v", m)
	}
}

func TestComputeNegativeRevenue(t *testing.T) {
	rec := models.FinancialRecord{
		Revenue:     -50000,
		Expenses:    20000,
		Assets:      100000,
		Liabilities: 40000,
	}

	m := Compute(rec)

	if !m.NegativeRevenue {
		t.Error("NegativeRevenue flag should record the original sign")
	}
	// Revenue clamps to 0 for ratio bases, so revenue-derived ratios are 0.
	if m.GrossMargin != 0 || m.NetMargin != 0 || m.ReceivableDays != 0 {
		t.Errorf("revenue ratios should be 0 with clamped revenue, got %+v", m)
	}
	// Non-revenue ratios still compute.
	if m.CurrentRatio != 2.5 {
		t.Errorf("CurrentRatio expected 2.5, got %f", m.CurrentRatio)
	}
}
