// Package risk implements the weighted credit-risk scoring model.
//
// The score starts at a fixed base and subtracts independent, named
// penalties; the breakdown records exactly which penalties fired so every
// score is explainable as a sum of deductions.
package risk

import "finhealth/pkg/models"

const (
	BaseScore = 900
	MinScore  = 300
	MaxScore  = 900
)

// Thresholds holds the penalty rules. Injected rather than ambient so the
// engine stays a pure function; DefaultThresholds matches the production
// scoring model.
type Thresholds struct {
	// Liquidity (current ratio)
	CurrentRatioSevere     float64 // below this: severe penalty
	CurrentRatioMild       float64
	LiquidityPenaltySevere int
	LiquidityPenaltyMild   int

	// Leverage (debt to equity)
	DebtToEquitySevere    float64 // above this: severe penalty
	DebtToEquityMild      float64
	LeveragePenaltySevere int
	LeveragePenaltyMild   int

	// Profitability (net margin, %)
	NetMarginSevere            float64
	NetMarginMild              float64
	ProfitabilityPenaltySevere int
	ProfitabilityPenaltyMild   int

	// Efficiency
	ReceivableDaysMax      float64
	ReceivablePenalty      int
	InventoryTurnoverMin   float64
	InventoryPenalty       int
	ReturnOnAssetsMin      float64
	AssetEfficiencyPenalty int
}

// DefaultThresholds returns the fixed production rule set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CurrentRatioSevere:     1.0,
		CurrentRatioMild:       1.5,
		LiquidityPenaltySevere: 120,
		LiquidityPenaltyMild:   60,

		DebtToEquitySevere:    2.0,
		DebtToEquityMild:      1.0,
		LeveragePenaltySevere: 150,
		LeveragePenaltyMild:   80,

		NetMarginSevere:            5,
		NetMarginMild:              10,
		ProfitabilityPenaltySevere: 100,
		ProfitabilityPenaltyMild:   50,

		ReceivableDaysMax:      90,
		ReceivablePenalty:      70,
		InventoryTurnoverMin:   2,
		InventoryPenalty:       50,
		ReturnOnAssetsMin:      5,
		AssetEfficiencyPenalty: 60,
	}
}

// Result is a bounded credit score with its category and the named
// deductions that produced it.
type Result struct {
	Score      int            `json:"risk_score"`
	Category   string         `json:"category"`
	Deductions map[string]int `json:"deductions"`
}

// Categorize maps a score in [300,900] to its risk band. Exported because
// the orchestrator re-categorizes after applying the benchmark modifier.
func Categorize(score int) string {
	switch {
	case score >= 750:
		return "Low Risk"
	case score >= 600:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}

// Score computes the credit-risk score for one metric set.
func Score(m models.MetricSet, th Thresholds) Result {
	score := BaseScore
	deductions := make(map[string]int)

	apply := func(name string, penalty int) {
		score -= penalty
		deductions[name] = penalty
	}

	// 1. Liquidity
	if m.CurrentRatio < th.CurrentRatioSevere {
		apply("liquidity_risk", th.LiquidityPenaltySevere)
	} else if m.CurrentRatio < th.CurrentRatioMild {
		apply("liquidity_risk", th.LiquidityPenaltyMild)
	}

	// 2. Leverage
	if m.DebtToEquity > th.DebtToEquitySevere {
		apply("leverage_risk", th.LeveragePenaltySevere)
	} else if m.DebtToEquity > th.DebtToEquityMild {
		apply("leverage_risk", th.LeveragePenaltyMild)
	}

	// 3. Profitability
	if m.NetMargin < th.NetMarginSevere {
		apply("profitability_risk", th.ProfitabilityPenaltySevere)
	} else if m.NetMargin < th.NetMarginMild {
		apply("profitability_risk", th.ProfitabilityPenaltyMild)
	}

	// 4. Receivables delay
	if m.ReceivableDays > th.ReceivableDaysMax {
		apply("receivable_delay_risk", th.ReceivablePenalty)
	}

	// 5. Inventory efficiency
	if m.InventoryTurnover < th.InventoryTurnoverMin {
		apply("inventory_efficiency_risk", th.InventoryPenalty)
	}

	// 6. Asset utilization
	if m.ReturnOnAssets < th.ReturnOnAssetsMin {
		apply("asset_efficiency_risk", th.AssetEfficiencyPenalty)
	}

	if score < MinScore {
		score = MinScore
	}

	return Result{
		Score:      score,
		Category:   Categorize(score),
		Deductions: deductions,
	}
}
