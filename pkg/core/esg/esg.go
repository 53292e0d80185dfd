// Package esg derives a 0-100 ESG posture score from balance-sheet
// proxies. No actual ESG disclosures exist for SME submissions, so each
// pillar is approximated from financial discipline signals; every check is
// binary-tiered (two possible point values, no continuous scaling).
package esg

import "finhealth/pkg/models"

// Pillar maxima: Environmental 40, Social 30, Governance 30.

// Result is the ESG score with its pillar breakdown.
type Result struct {
	Score     int            `json:"esg_score"`
	Category  string         `json:"category"`
	Breakdown map[string]int `json:"breakdown"`
}

// Score evaluates one raw statement. It recomputes its own proxies from
// the record rather than consuming a MetricSet; the pillar checks use
// unrounded ratios by design.
func Score(rec models.FinancialRecord) Result {
	breakdown := make(map[string]int)
	total := 0

	// E — Environmental: cost efficiency + asset/liability balance.
	environmental := 0
	if rec.Revenue > 0 {
		costRatio := rec.Expenses / rec.Revenue
		switch {
		case costRatio < 0.6:
			environmental += 20
		case costRatio < 0.75:
			environmental += 12
		default:
			environmental += 5
		}
	}
	if rec.Assets > 0 && rec.Liabilities/rec.Assets < 0.5 {
		environmental += 20
	} else {
		environmental += 10
	}
	breakdown["environmental"] = environmental
	total += environmental

	// S — Social: receivables and payables discipline.
	social := 0
	if rec.Revenue > 0 && rec.Receivables/rec.Revenue < 0.4 {
		social += 15
	} else {
		social += 7
	}
	if rec.Expenses > 0 && rec.Payables/rec.Expenses > 0.2 {
		social += 15
	} else {
		social += 7
	}
	breakdown["social"] = social
	total += social

	// G — Governance: leverage discipline + balance-sheet solvency.
	governance := 0
	equity := rec.Equity()
	if equity > 0 && rec.Debt/equity < 1 {
		governance += 15
	} else {
		governance += 7
	}
	if rec.Liabilities <= rec.Assets {
		governance += 15
	} else {
		governance += 5
	}
	breakdown["governance"] = governance
	total += governance

	if total > 100 {
		total = 100
	}

	return Result{
		Score:     total,
		Category:  categorize(total),
		Breakdown: breakdown,
	}
}

func categorize(score int) string {
	switch {
	case score >= 80:
		return "Sustainable Leader"
	case score >= 65:
		return "Responsible"
	case score >= 50:
		return "Moderate"
	default:
		return "Needs Improvement"
	}
}
