// Package fraud scans a raw financial statement for anomaly patterns.
//
// Eight independent heuristic checks each append a flag with a severity
// and a numeric contribution; when any fire, a synthetic Info-level flag
// reports the aggregate anomaly score as the exact sum of the fired
// contributions.
package fraud

import (
	"fmt"

	"finhealth/pkg/models"
)

// Severity levels for anomaly flags.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
	SeverityInfo     = "Info"
)

// Flag is one anomaly signal. AnomalyScore is the flag's contribution to
// the aggregate score.
type Flag struct {
	Type         string `json:"type"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	AnomalyScore int    `json:"anomaly_score"`
}

// AggregateFlagType names the synthetic summary flag appended when any
// check fires.
const AggregateFlagType = "Fraud Anomaly Score"

// Detect runs all checks against one record. Calls are independent; flags
// are never deduplicated across invocations.
func Detect(rec models.FinancialRecord) []Flag {
	var flags []Flag
	anomalyScore := 0

	raise := func(flagType, severity, message string, score int) {
		anomalyScore += score
		flags = append(flags, Flag{
			Type:         flagType,
			Severity:     severity,
			Message:      message,
			AnomalyScore: score,
		})
	}

	// 1. Expense anomaly
	if rec.Revenue > 0 && rec.Expenses/rec.Revenue > 0.95 {
		raise("Expense Anomaly", SeverityHigh,
			"Expenses exceed 95% of revenue. Possible cost manipulation or unsustainable operations.", 20)
	}

	// 2. Receivables concentration
	if rec.Revenue > 0 && rec.Receivables/rec.Revenue > 0.6 {
		raise("Receivables Concentration", SeverityMedium,
			"Receivables exceed 60% of revenue. Risk of revenue inflation or delayed collections.", 15)
	}

	// 3. Payables suppression
	if rec.Expenses > 0 && rec.Payables/rec.Expenses < 0.05 {
		raise("Payables Irregularity", SeverityMedium,
			"Very low payables relative to expenses. Possible off-book liabilities.", 10)
	}

	// 4. Inventory inflation
	if rec.Assets > 0 && rec.Inventory/rec.Assets > 0.7 {
		raise("Inventory Inflation", SeverityMedium,
			"Inventory forms more than 70% of assets. Risk of stock overvaluation.", 10)
	}

	// 5. Debt misalignment
	if equity := rec.Equity(); equity > 0 && rec.Debt/equity > 3 {
		raise("Debt Structuring Risk", SeverityHigh,
			"Debt exceeds 3x equity. Possible over-leveraging or aggressive borrowing.", 15)
	}

	// 6. Round-number suspicion
	if rec.Revenue > 0 && isRounded(rec.Revenue) && isRounded(rec.Expenses) {
		raise("Rounded Financial Reporting", SeverityLow,
			"Financial figures appear heavily rounded. Recommend validation.", 5)
	}

	// 7. Asset-liability imbalance
	if rec.Liabilities > rec.Assets {
		raise("Negative Net Worth", SeverityCritical,
			"Liabilities exceed assets. High financial distress risk.", 20)
	}

	// 8. Cash / revenue spike pattern
	if rec.Revenue > 0 && rec.Assets > 0 &&
		rec.Revenue/rec.Assets > 3 && rec.Receivables/rec.Revenue < 0.1 {
		raise("Cashflow Spike Pattern", SeverityMedium,
			"Very high revenue relative to assets with low receivables; review for unusual cash spikes.", 10)
	}

	if anomalyScore > 0 {
		flags = append(flags, Flag{
			Type:         AggregateFlagType,
			Severity:     SeverityInfo,
			Message:      fmt.Sprintf("Aggregate anomaly score: %d", anomalyScore),
			AnomalyScore: anomalyScore,
		})
	}

	return flags
}

// isRounded reports whether a figure is an exact multiple of 100,000.
func isRounded(v float64) bool {
	if v != float64(int64(v)) {
		return false
	}
	return int64(v)%100000 == 0
}
