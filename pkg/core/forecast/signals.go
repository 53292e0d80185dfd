package forecast

import "math"

// Trend direction labels.
const (
	TrendPositive = "positive"
	TrendNegative = "negative"
)

// Signals are the cross-engine outputs derived from a forecast: the
// warning engine consumes the liquidity/runway/trend fields, the product
// recommendation engine the liquidity score and average cashflow.
type Signals struct {
	TrendDirection           string  `json:"trend_direction"`
	NegativeCashflowMonths   int     `json:"negative_cashflow_months"`
	ForecastConfidence       float64 `json:"forecast_confidence"`
	LiquidityRiskForecast    bool    `json:"liquidity_risk_forecast"`
	LiquidityForecastScore   int     `json:"liquidity_forecast_score"`
	AverageProjectedCashflow float64 `json:"average_projected_cashflow"`

	// CashRunwayMonths estimates how long the latest asset base covers a
	// projected cash burn. Zero means unconstrained (no projected burn).
	CashRunwayMonths float64 `json:"cash_runway_months,omitempty"`
}

// ExtractSignals derives the signal set from a forecast result.
//
// Trend is negative when the projected cashflow sums below zero. The
// liquidity forecast score is 80 for a non-negative mean projected
// cashflow, 60 down to -10,000, and 30 below that.
func ExtractSignals(r *Result) Signals {
	if r == nil || len(r.CashflowForecast) == 0 {
		return Signals{
			TrendDirection:         TrendPositive,
			ForecastConfidence:     DegenerateConfidence,
			LiquidityForecastScore: 50,
		}
	}

	var sum float64
	negative := 0
	for _, v := range r.CashflowForecast {
		sum += v
		if v < 0 {
			negative++
		}
	}
	avg := sum / float64(len(r.CashflowForecast))

	trend := TrendPositive
	if sum < 0 {
		trend = TrendNegative
	}

	score := 30
	if avg >= 0 {
		score = 80
	} else if avg >= -10000 {
		score = 60
	}

	runway := 0.0
	if avg < 0 && r.latestAssets > 0 {
		runway = round1(r.latestAssets / math.Abs(avg))
	}

	return Signals{
		TrendDirection:           trend,
		NegativeCashflowMonths:   negative,
		ForecastConfidence:       r.Confidence,
		LiquidityRiskForecast:    negative > 0,
		LiquidityForecastScore:   score,
		AverageProjectedCashflow: avg,
		CashRunwayMonths:         runway,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
