// Package advisory holds the simplest engine tier: cost optimization,
// working capital and compliance. Each is the same shape — ratios in, a
// rule table, a score plus recommendation text out.
package advisory

import (
	"math"

	"finhealth/pkg/models"
)

// CostResult is the expense-efficiency view.
type CostResult struct {
	CostRatio         float64  `json:"cost_ratio"`
	OptimizationScore int      `json:"optimization_score"`
	Recommendations   []string `json:"recommendations"`
}

// OptimizeCosts scores the cost structure of one record. Higher scores
// mean more efficient spending.
func OptimizeCosts(rec models.FinancialRecord) CostResult {
	if rec.Revenue <= 0 {
		return CostResult{
			Recommendations: []string{"Revenue data insufficient for cost analysis."},
		}
	}

	costRatio := rec.Expenses / rec.Revenue

	var recommendation string
	switch {
	case costRatio > 0.8:
		recommendation = "Expenses exceed 80% of revenue. Immediate cost rationalization required."
	case costRatio > 0.6:
		recommendation = "Cost structure is moderately heavy. Explore supplier renegotiation."
	case costRatio > 0.4:
		recommendation = "Cost structure healthy but optimization opportunities exist."
	default:
		recommendation = "Strong cost efficiency. Maintain current discipline."
	}

	score := int((1 - costRatio) * 100)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return CostResult{
		CostRatio:         math.Round(costRatio*100) / 100,
		OptimizationScore: score,
		Recommendations:   []string{recommendation},
	}
}
