// Package products maps the risk score, metrics and forecast signals into
// indicative lending-product fit assessments (working capital loan,
// overdraft facility, term loan).
package products

import (
	"fmt"

	"finhealth/pkg/core/forecast"
	"finhealth/pkg/models"
)

// Fit tiers for a product assessment.
const (
	FitGood     = "Good"
	FitCautious = "Cautious"
	FitWeak     = "Weak"
)

// Recommendation is one product-fit assessment.
type Recommendation struct {
	Product          string `json:"product"`
	Fit              string `json:"fit"`
	Rationale        string `json:"rationale"`
	ForecastEnhanced bool   `json:"forecast_enhanced,omitempty"`
}

// Result is the risk band plus the per-product assessments.
type Result struct {
	RiskBand  string           `json:"risk_band"`
	Suggested []Recommendation `json:"suggested_products"`
}

// RiskBand maps a risk score to its eligibility tier.
func RiskBand(riskScore int) string {
	switch {
	case riskScore >= 800:
		return "Prime"
	case riskScore >= 700:
		return "Standard"
	case riskScore >= 600:
		return "Borderline"
	default:
		return "High Risk"
	}
}

// Recommend builds the product assessment set. Forecast signals are
// optional; when present they only annotate rationale text, never change
// a product's fit tier.
func Recommend(riskScore int, m models.MetricSet, signals *forecast.Signals) Result {
	var recs []Recommendation

	liquidityScore := 50
	avgCashflow := 0.0
	if signals != nil {
		liquidityScore = signals.LiquidityForecastScore
		avgCashflow = signals.AverageProjectedCashflow
	}

	// Working capital loan
	if m.WorkingCapital > 0 && m.CurrentRatio >= 1.2 && riskScore >= 650 {
		rationale := "Positive working capital and adequate liquidity buffer."
		if signals != nil && avgCashflow < 0 {
			rationale += " Forecast indicates a funding gap ahead - consider a larger facility."
		}
		recs = append(recs, Recommendation{
			Product:          "Working Capital Loan",
			Fit:              FitGood,
			Rationale:        rationale,
			ForecastEnhanced: signals != nil,
		})
	} else if riskScore >= 600 {
		rationale := "Moderate risk profile; structure with tighter covenants."
		if liquidityScore < 40 {
			rationale += " Forecast shows liquidity pressure - prioritize quick disbursement."
		}
		recs = append(recs, Recommendation{
			Product:          "Working Capital Loan",
			Fit:              FitCautious,
			Rationale:        rationale,
			ForecastEnhanced: signals != nil,
		})
	}

	// Overdraft facility
	if m.CurrentRatio >= 1 && m.WorkingCapital >= 0 {
		recs = append(recs, Recommendation{
			Product:   "Overdraft Facility",
			Fit:       FitGood,
			Rationale: "Short-term liquidity needs can be supported by an OD line.",
		})
	} else {
		recs = append(recs, Recommendation{
			Product:   "Overdraft Facility",
			Fit:       FitWeak,
			Rationale: "Thin liquidity and negative working capital; OD may increase stress.",
		})
	}

	// Term loan
	switch {
	case m.DebtToEquity <= 1.5 && riskScore >= 700:
		recs = append(recs, Recommendation{
			Product:   "Term Loan",
			Fit:       FitGood,
			Rationale: "Balanced leverage and healthy risk score support term funding.",
		})
	case m.DebtToEquity <= 2 && riskScore >= 650:
		recs = append(recs, Recommendation{
			Product:   "Term Loan",
			Fit:       FitCautious,
			Rationale: "Leverage acceptable but monitor DSCR and cash flows closely.",
		})
	default:
		recs = append(recs, Recommendation{
			Product:   "Term Loan",
			Fit:       FitWeak,
			Rationale: "High leverage or weak risk score; prioritize deleveraging.",
		})
	}

	// Forward-looking annotation when the projected liquidity picture is
	// materially weak.
	if signals != nil && liquidityScore <= 30 {
		for i := range recs {
			recs[i].Rationale += fmt.Sprintf(
				" Projected liquidity score is %d; size any facility against the forecast burn.", liquidityScore)
		}
	}

	return Result{
		RiskBand:  RiskBand(riskScore),
		Suggested: recs,
	}
}
