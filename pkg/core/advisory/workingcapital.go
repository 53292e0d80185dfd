package advisory

import (
	"math"

	"finhealth/pkg/models"
)

// WorkingCapitalResult is the working-capital view with a simulated
// liquidity buffer and the tuning recommendations.
type WorkingCapitalResult struct {
	ARDays                   float64  `json:"ar_days"`
	APDays                   float64  `json:"ap_days"`
	InventoryTurnover        float64  `json:"inventory_turnover"`
	LiquidityBufferCurrent   float64  `json:"liquidity_buffer_current"`
	LiquidityBufferSimulated float64  `json:"liquidity_buffer_simulated"`
	WorkingCapital           float64  `json:"working_capital"`
	Recommendations          []string `json:"recommendations"`
}

// AnalyzeWorkingCapital builds the working-capital view from the metric
// set. The simulated buffer models a modest improvement target: 15% above
// the current ratio, or +0.2 absolute, whichever is larger.
func AnalyzeWorkingCapital(m models.MetricSet) WorkingCapitalResult {
	var recs []string

	if m.ReceivableDays > 90 {
		recs = append(recs, "Receivable days exceed 90; tighten credit terms and improve collections.")
	} else if m.ReceivableDays > 60 {
		recs = append(recs, "Receivable days are elevated; consider early payment incentives.")
	}

	if m.PayableDays < 30 {
		recs = append(recs, "Payable days are low; explore supplier negotiations for longer payment terms.")
	}

	if m.InventoryTurnover < 2 {
		recs = append(recs, "Inventory turnover is low; review slow-moving stock and purchasing policies.")
	}

	if m.CurrentRatio < 1 {
		recs = append(recs, "Current ratio below 1; liquidity buffer is thin. Prioritize cash preservation.")
	} else if m.CurrentRatio < 1.5 {
		recs = append(recs, "Current ratio is moderate; build an extra cash buffer for resilience.")
	}

	simulated := 0.0
	if m.CurrentRatio > 0 {
		simulated = math.Max(m.CurrentRatio*1.15, m.CurrentRatio+0.2)
	}

	return WorkingCapitalResult{
		ARDays:                   m.ReceivableDays,
		APDays:                   m.PayableDays,
		InventoryTurnover:        m.InventoryTurnover,
		LiquidityBufferCurrent:   m.CurrentRatio,
		LiquidityBufferSimulated: math.Round(simulated*100) / 100,
		WorkingCapital:           m.WorkingCapital,
		Recommendations:          recs,
	}
}
