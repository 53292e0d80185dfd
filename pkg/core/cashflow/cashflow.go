// Package cashflow provides the quick single-statement cashflow view and
// the historical monthly cashflow metrics.
package cashflow

import (
	"math"

	"finhealth/pkg/core/forecast"
	"finhealth/pkg/models"
)

// Snapshot is the quick cashflow view of the latest statement.
type Snapshot struct {
	NetCashFlow    float64 `json:"net_cash_flow"`
	BurnRate       float64 `json:"burn_rate"`
	LiquidityRatio float64 `json:"liquidity_ratio"`
}

// Compute derives the snapshot from one record. Burn rate is the positive
// part of expenses minus revenue; liquidity ratio follows the safe
// division convention.
func Compute(rec models.FinancialRecord) Snapshot {
	net := rec.Revenue - rec.Expenses

	burn := rec.Expenses - rec.Revenue
	if burn < 0 {
		burn = 0
	}

	liquidity := 0.0
	if rec.Liabilities > 0 {
		liquidity = rec.Assets / rec.Liabilities
	}

	return Snapshot{
		NetCashFlow:    round2(net),
		BurnRate:       round2(burn),
		LiquidityRatio: round3(liquidity),
	}
}

// MonthlyCashFlow is one month of the historical view.
type MonthlyCashFlow struct {
	Period         string  `json:"period"`
	NetCashFlow    float64 `json:"net_cash_flow"`
	LiquidityRatio float64 `json:"liquidity_ratio"`
}

// History summarizes a monthly-aggregated time series: net cashflow and
// liquidity ratio per month, plus the average burn across the months that
// ran negative.
type History struct {
	Monthly  []MonthlyCashFlow `json:"monthly_net_cash_flow"`
	BurnRate float64           `json:"burn_rate"`
}

// ComputeHistory derives the historical view from an already-aggregated
// time series.
func ComputeHistory(ts *forecast.TimeSeries) History {
	if ts == nil || len(ts.Months) == 0 {
		return History{Monthly: []MonthlyCashFlow{}}
	}

	monthly := make([]MonthlyCashFlow, 0, len(ts.Months))
	var negativeSum float64
	negativeCount := 0

	for _, m := range ts.Months {
		net := m.Revenue - m.Expenses
		liquidity := 0.0
		if m.Liabilities > 0 {
			liquidity = m.Assets / m.Liabilities
		}
		monthly = append(monthly, MonthlyCashFlow{
			Period:         m.Period,
			NetCashFlow:    net,
			LiquidityRatio: liquidity,
		})
		if net < 0 {
			negativeSum += net
			negativeCount++
		}
	}

	burn := 0.0
	if negativeCount > 0 {
		burn = math.Abs(negativeSum / float64(negativeCount))
	}

	return History{
		Monthly:  monthly,
		BurnRate: round2(burn),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
