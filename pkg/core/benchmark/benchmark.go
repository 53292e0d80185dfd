// Package benchmark positions a business's ratios against fixed
// per-industry anchor tables and derives a risk-score modifier.
//
// Each anchor is a (p25, p50, p75) triple; values map to a percentile
// scale anchored at 25 / 50 / 90 with linear interpolation between the
// nearer anchors. The anchors are indicative industry data, not live
// market statistics.
package benchmark

import (
	"math"
	"strings"

	"finhealth/pkg/models"
)

// Anchor is a three-point (p25, p50, p75) benchmark for one ratio.
type Anchor struct {
	P25 float64
	P50 float64
	P75 float64
}

// IndustryBenchmark holds the anchors for the three benchmarked ratios.
type IndustryBenchmark struct {
	GrossMargin    Anchor
	DebtRatio      Anchor
	WorkingCapital Anchor
}

// Tables maps a normalized industry label to its benchmark, with a default
// used for unknown industries. Immutable configuration data, injected into
// Compare rather than read from package state.
type Tables struct {
	Industries map[string]IndustryBenchmark
	Default    IndustryBenchmark
}

// DefaultTables returns the built-in industry anchor set.
func DefaultTables() Tables {
	return Tables{
		Industries: map[string]IndustryBenchmark{
			"manufacturing": {
				GrossMargin:    Anchor{20, 35, 50},
				DebtRatio:      Anchor{0.3, 0.6, 0.9},
				WorkingCapital: Anchor{-0.1, 0.1, 0.3},
			},
			"retail": {
				GrossMargin:    Anchor{15, 30, 45},
				DebtRatio:      Anchor{0.2, 0.5, 0.8},
				WorkingCapital: Anchor{-0.05, 0.05, 0.2},
			},
			"agriculture": {
				GrossMargin:    Anchor{10, 25, 40},
				DebtRatio:      Anchor{0.25, 0.55, 0.85},
				WorkingCapital: Anchor{-0.15, 0.05, 0.25},
			},
			"services": {
				GrossMargin:    Anchor{30, 45, 60},
				DebtRatio:      Anchor{0.1, 0.3, 0.6},
				WorkingCapital: Anchor{0.0, 0.15, 0.35},
			},
			"logistics": {
				GrossMargin:    Anchor{15, 25, 40},
				DebtRatio:      Anchor{0.3, 0.6, 0.9},
				WorkingCapital: Anchor{-0.05, 0.1, 0.25},
			},
			"e-commerce": {
				GrossMargin:    Anchor{20, 35, 55},
				DebtRatio:      Anchor{0.2, 0.4, 0.7},
				WorkingCapital: Anchor{-0.1, 0.0, 0.2},
			},
		},
		Default: IndustryBenchmark{
			GrossMargin:    Anchor{15, 30, 50},
			DebtRatio:      Anchor{0.2, 0.5, 0.8},
			WorkingCapital: Anchor{-0.1, 0.05, 0.25},
		},
	}
}

// Summary is the percentile positioning for one business.
type Summary struct {
	Industry                 string  `json:"industry"`
	UsedDefault              bool    `json:"used_default"`
	GrossMarginPercentile    float64 `json:"gross_margin_percentile"`
	DebtRatioPercentile      float64 `json:"debt_ratio_percentile"`
	WorkingCapitalPercentile float64 `json:"working_capital_percentile"`
}

// Compare maps the metric set against the industry's anchors.
// Industry matching is case-insensitive; unknown labels fall back to the
// default table and set UsedDefault.
func Compare(m models.MetricSet, industry string, tables Tables) Summary {
	normalized := strings.ToLower(strings.TrimSpace(industry))

	bench, known := tables.Industries[normalized]
	if !known {
		bench = tables.Default
	}

	label := normalized
	if label == "" {
		label = "unknown"
	}

	// Debt ratio approximated from debt-to-equity: de/(1+de). A heuristic
	// proxy, preserved as-is; not a canonical formula.
	debtRatio := 0.0
	if m.DebtToEquity >= 0 {
		debtRatio = m.DebtToEquity / (1 + m.DebtToEquity)
	}

	// Working capital normalized by an ad hoc revenue proxy derived from
	// the net margin. Also a preserved heuristic.
	wc := m.WorkingCapital
	wcRatio := 0.0
	if wc != 0 {
		revProxy := math.Abs(wc) / (m.NetMargin/100 + 1)
		if revProxy != 0 {
			wcRatio = wc / revProxy
		}
	}

	return Summary{
		Industry:                 label,
		UsedDefault:              !known,
		GrossMarginPercentile:    round1(mapToPercentile(m.GrossMargin, bench.GrossMargin)),
		DebtRatioPercentile:      round1(mapToPercentile(debtRatio, bench.DebtRatio)),
		WorkingCapitalPercentile: round1(mapToPercentile(wcRatio, bench.WorkingCapital)),
	}
}

// mapToPercentile anchors <=p25 at 25, p50 at exactly 50, >=p75 at 90,
// interpolating linearly against the nearer anchor segment.
func mapToPercentile(value float64, a Anchor) float64 {
	if value <= a.P25 {
		return 25
	}
	if value >= a.P75 {
		return 90
	}
	if value == a.P50 {
		return 50
	}

	if value < a.P50 {
		span := a.P50 - a.P25
		if span == 0 {
			span = 1
		}
		return 25 + (value-a.P25)/span*25
	}

	span := a.P75 - a.P50
	if span == 0 {
		span = 1
	}
	return 50 + (value-a.P50)/span*40
}

// RiskModifier converts the percentile positioning into an additive
// risk-score delta in [-80, +80]. Weak positioning (thin margins, heavy
// debt, poor working capital) yields a negative modifier; strong
// positioning yields a positive one. The orchestrator adds it to the raw
// risk score and re-clamps to [300, 900].
func RiskModifier(s Summary) int {
	modifier := 0

	if s.GrossMarginPercentile < 30 {
		modifier -= 30
	} else if s.GrossMarginPercentile > 70 {
		modifier += 20
	}

	if s.DebtRatioPercentile > 70 {
		modifier -= 40
	} else if s.DebtRatioPercentile < 30 {
		modifier += 20
	}

	if s.WorkingCapitalPercentile < 30 {
		modifier -= 20
	} else if s.WorkingCapitalPercentile > 70 {
		modifier += 10
	}

	if modifier < -80 {
		modifier = -80
	}
	if modifier > 80 {
		modifier = 80
	}
	return modifier
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
