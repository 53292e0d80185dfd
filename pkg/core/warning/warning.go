// Package warning turns the current-period ratios, an optional forecast
// and an optional risk-score trend into early-warning signals: a list of
// qualitative warnings, a short-term survival score and a forward-looking
// deterioration probability.
//
// Every trigger is an independent additive rule; none are mutually
// exclusive.
package warning

import (
	"fmt"
	"math"

	"finhealth/pkg/core/forecast"
	"finhealth/pkg/models"
)

// Severity levels. A distinct taxonomy from fraud flags: warnings come
// from ratio stress, not from raw-statement anomaly scans.
const (
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Warning is one qualitative stress signal.
type Warning struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Input bundles the engine's explicit inputs. ForecastSignals and
// RiskTrend are optional; absent values simply contribute nothing.
type Input struct {
	Metrics         models.MetricSet
	ForecastSignals *forecast.Signals
	RiskTrend       []int // historical risk scores, oldest -> newest
}

// Result is the warning list plus the two bounded scores.
type Result struct {
	Warnings                 []Warning `json:"warnings"`
	SurvivalScore            int       `json:"survival_score"`
	DeteriorationProbability float64   `json:"deterioration_probability"`
}

// Evaluate runs all warning rules.
func Evaluate(in Input) Result {
	m := in.Metrics
	var warnings []Warning

	warn := func(wType, severity, message string) {
		warnings = append(warnings, Warning{Type: wType, Severity: severity, Message: message})
	}

	// 1. Liquidity stress
	if m.CurrentRatio < 1 {
		warn("Liquidity Risk", SeverityHigh,
			"Current ratio below 1. Immediate liquidity pressure detected.")
	} else if m.CurrentRatio < 1.3 {
		warn("Liquidity Watch", SeverityMedium,
			"Liquidity buffer is thinning. Monitor working capital closely.")
	}

	// 2. Debt stress
	if m.DebtToEquity > 2 {
		warn("Debt Overexposure", SeverityHigh,
			"Debt-to-equity ratio critically high. Risk of financial strain.")
	}

	// 3. Profitability decline
	if m.NetMargin < 5 {
		warn("Low Profitability", SeverityHigh,
			"Net margin critically low. Sustainability risk increasing.")
	}

	// 4. Receivables pressure
	if m.ReceivableDays > 90 {
		warn("Receivables Delay", SeverityMedium,
			"Receivables collection cycle is extended beyond 90 days.")
	}

	// 5. Inventory inefficiency
	if m.InventoryTurnover < 2 {
		warn("Inventory Stagnation", SeverityMedium,
			"Inventory turnover is slow. Capital may be locked in stock.")
	}

	// 6. Survival score: fixed deductions from 100, floored at 0.
	survival := 100
	if m.WorkingCapital < 0 {
		survival -= 40
	}
	if m.CurrentRatio < 1 {
		survival -= 30
	}
	if m.NetMargin < 5 {
		survival -= 20
	}
	if m.DebtToEquity > 2 {
		survival -= 20
	}
	if survival < 0 {
		survival = 0
	}
	if survival < 40 {
		warn("Business Survival Risk", SeverityCritical,
			"High probability of financial distress within short-term horizon.")
	}

	// 7. Predictive deterioration probability: two independent additive
	// sources, clamped to [0, 100].
	probability := 0.0

	if len(in.RiskTrend) >= 2 {
		delta := float64(in.RiskTrend[len(in.RiskTrend)-1] - in.RiskTrend[0])
		if delta < 0 {
			probability += math.Min(40, math.Abs(delta)/10)
		}
	}

	if s := in.ForecastSignals; s != nil {
		if s.LiquidityRiskForecast {
			probability += 30
			warn("Forecasted Liquidity Risk", SeverityHigh,
				fmt.Sprintf("Forecast indicates %d months of negative cashflow ahead.", s.NegativeCashflowMonths))
		}

		if runway := s.CashRunwayMonths; runway > 0 {
			if runway < 3 {
				probability += 25
				warn("Cash Runway Critical", SeverityCritical,
					fmt.Sprintf("Projected cash runway is only %.1f months. Immediate action required.", runway))
			} else if runway < 6 {
				probability += 15
				warn("Cash Runway Warning", SeverityMedium,
					fmt.Sprintf("Projected cash runway is %.1f months. Monitor closely.", runway))
			}
		}

		if s.TrendDirection == forecast.TrendNegative {
			probability += 20
		}
	}

	if probability > 100 {
		probability = 100
	}
	if probability < 0 {
		probability = 0
	}

	if probability >= 50 {
		warn("Predictive Deterioration", SeverityHigh,
			"Forward-looking signals indicate elevated probability of financial deterioration.")
	} else if probability >= 25 {
		warn("Deterioration Watch", SeverityMedium,
			"Forecast and risk trend suggest emerging downside risk. Monitor closely.")
	}

	return Result{
		Warnings:                 warnings,
		SurvivalScore:            survival,
		DeteriorationProbability: math.Round(probability*10) / 10,
	}
}
