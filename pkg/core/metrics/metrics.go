// Package metrics converts one raw financial statement into the normalized
// ratio set consumed by every downstream engine.
package metrics

import (
	"math"

	"finhealth/pkg/models"
)

// AssumedInterestRate is the proxy rate applied to total debt when
// estimating interest burden; no real interest-rate input exists for SMEs
// submitting bare statements.
const AssumedInterestRate = 0.08

// Compute derives a MetricSet from a single record.
//
// There are no error conditions: absent optional fields behave as zero,
// negative revenue is clamped to zero for every ratio base (the original
// sign is preserved in NegativeRevenue), and any ratio whose denominator
// would be <= 0 is defined as 0.
func Compute(rec models.FinancialRecord) models.MetricSet {
	revenue := rec.Revenue
	expenses := rec.Expenses
	assets := rec.Assets
	liabilities := rec.Liabilities

	negativeRevenue := revenue < 0
	safeRevenue := revenue
	if safeRevenue < 0 {
		safeRevenue = 0
	}

	equity := assets - liabilities

	m := models.MetricSet{
		// Profitability
		GrossMargin:    round2(safeDiv(safeRevenue-expenses, safeRevenue) * 100),
		NetMargin:      round2(safeDiv(safeRevenue-expenses, safeRevenue) * 100),
		OperatingRatio: round2(safeDiv(expenses, safeRevenue) * 100),

		// Liquidity
		CurrentRatio:   round2(safeDiv(assets, liabilities)),
		QuickRatio:     round2(safeDiv(assets-rec.Inventory, liabilities)),
		WorkingCapital: round2(assets - liabilities),

		// Leverage. Debt is treated as the total loan balance.
		DebtToEquity:        round2(safeDiv(rec.Debt, equity)),
		LoanBalance:         round2(rec.Debt),
		DebtServicingRatio:  round4(safeDiv(rec.Debt, safeRevenue)),
		InterestBurdenRatio: round4(safeDiv(rec.Debt*AssumedInterestRate, safeRevenue)),

		// Efficiency
		ReceivableDays:    round2(safeDiv(rec.Receivables, safeRevenue) * 365),
		PayableDays:       round2(safeDiv(rec.Payables, expenses) * 365),
		InventoryTurnover: round2(safeDiv(safeRevenue, rec.Inventory)),

		// Returns
		ReturnOnAssets: round2(safeDiv(safeRevenue-expenses, assets) * 100),

		NegativeRevenue: negativeRevenue,
	}

	return m
}

// safeDiv is the load-bearing division convention for the whole pipeline:
// any denominator <= 0 maps to exactly 0.
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
