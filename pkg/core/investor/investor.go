// Package investor scores how attractive a business looks to outside
// capital, on a 0-100 scale built from six weighted components.
package investor

import "finhealth/pkg/models"

// Result is the investor-readiness score with its component breakdown.
type Result struct {
	Score     int            `json:"investor_score"`
	Category  string         `json:"category"`
	Breakdown map[string]int `json:"breakdown"`
}

// Score combines the metric set with the (benchmark-adjusted) risk score.
// Component weights: profitability 25, growth 15, liquidity 15, leverage
// 15, efficiency 10, risk alignment 20. Growth is proxied by return on
// assets until a historical revenue-growth series exists; that is a
// deliberate heuristic, not a defect.
func Score(m models.MetricSet, riskScore int) Result {
	score := 0
	breakdown := make(map[string]int)

	add := func(name string, pts int) {
		score += pts
		breakdown[name] = pts
	}

	// 1. Profitability (25)
	switch {
	case m.NetMargin >= 20:
		add("profitability", 25)
	case m.NetMargin >= 10:
		add("profitability", 18)
	case m.NetMargin >= 5:
		add("profitability", 10)
	default:
		add("profitability", 3)
	}

	// 2. Growth proxy (15)
	switch {
	case m.ReturnOnAssets >= 15:
		add("growth_potential", 15)
	case m.ReturnOnAssets >= 8:
		add("growth_potential", 10)
	case m.ReturnOnAssets >= 5:
		add("growth_potential", 6)
	default:
		add("growth_potential", 2)
	}

	// 3. Liquidity stability (15)
	switch {
	case m.CurrentRatio >= 2:
		add("liquidity", 15)
	case m.CurrentRatio >= 1.5:
		add("liquidity", 10)
	case m.CurrentRatio >= 1:
		add("liquidity", 6)
	default:
		add("liquidity", 2)
	}

	// 4. Leverage discipline (15)
	switch {
	case m.DebtToEquity <= 0.5:
		add("leverage", 15)
	case m.DebtToEquity <= 1:
		add("leverage", 10)
	case m.DebtToEquity <= 2:
		add("leverage", 6)
	default:
		add("leverage", 2)
	}

	// 5. Operational efficiency (10)
	switch {
	case m.InventoryTurnover >= 5:
		add("efficiency", 10)
	case m.InventoryTurnover >= 3:
		add("efficiency", 7)
	case m.InventoryTurnover >= 2:
		add("efficiency", 5)
	default:
		add("efficiency", 2)
	}

	// 6. Risk alignment (20)
	switch {
	case riskScore >= 750:
		add("risk_alignment", 20)
	case riskScore >= 650:
		add("risk_alignment", 15)
	case riskScore >= 550:
		add("risk_alignment", 10)
	default:
		add("risk_alignment", 3)
	}

	if score > 100 {
		score = 100
	}

	return Result{
		Score:     score,
		Category:  categorize(score),
		Breakdown: breakdown,
	}
}

func categorize(score int) string {
	switch {
	case score >= 80:
		return "Highly Investment Ready"
	case score >= 65:
		return "Investment Ready"
	case score >= 50:
		return "Growth Potential"
	default:
		return "Not Investment Ready"
	}
}
