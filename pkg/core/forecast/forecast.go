// Package forecast builds a monthly time series from historical statements
// and produces linear-trend projections for revenue, expenses and net cash
// flow, plus the derived signals consumed by the warning and product
// recommendation engines.
//
// The model is a deliberate least-squares straight line: no seasonality,
// no confidence intervals beyond the fixed heuristic confidence values.
package forecast

import (
	"fmt"
	"sort"

	"finhealth/pkg/models"
)

// Stable error codes surfaced to callers.
const (
	CodeNoData      = "NO_DATA"
	CodeMissingDate = "MISSING_DATE"
)

// Error is a typed forecasting failure carrying a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Heuristic confidence levels: a fitted line gets 0.7, a degenerate flat
// forecast gets 0.5.
const (
	FittedConfidence     = 0.7
	DegenerateConfidence = 0.5
)

// MonthlyPoint is one calendar-month aggregate of the input records.
type MonthlyPoint struct {
	Period      string  `json:"period"` // YYYY-MM
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
}

// TimeSeries is the ordered-by-month aggregation of one business's
// historical records.
type TimeSeries struct {
	Months []MonthlyPoint
}

// BuildTimeSeries aggregates records into calendar-month buckets ordered
// oldest to newest. It fails with NO_DATA on an empty slice and
// MISSING_DATE when any record lacks a timestamp; it never fabricates
// data for either case.
func BuildTimeSeries(records []models.FinancialRecord) (*TimeSeries, error) {
	if len(records) == 0 {
		return nil, &Error{Code: CodeNoData, Message: "no historical data provided"}
	}

	buckets := make(map[string]*MonthlyPoint)
	for _, rec := range records {
		if rec.Date.IsZero() {
			return nil, &Error{Code: CodeMissingDate, Message: "record date required"}
		}
		key := rec.Date.Format("2006-01")
		p, ok := buckets[key]
		if !ok {
			p = &MonthlyPoint{Period: key}
			buckets[key] = p
		}
		p.Revenue += rec.Revenue
		p.Expenses += rec.Expenses
		p.Assets += rec.Assets
		p.Liabilities += rec.Liabilities
	}

	months := make([]MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		months = append(months, *p)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Period < months[j].Period })

	return &TimeSeries{Months: months}, nil
}

// Result holds the projected series, each of length equal to the requested
// horizon, plus the heuristic confidence of the fit.
type Result struct {
	RevenueForecast  []float64 `json:"revenue_forecast"`
	ExpenseForecast  []float64 `json:"expense_forecast"`
	CashflowForecast []float64 `json:"cashflow_forecast"`
	Confidence       float64   `json:"forecast_confidence"`

	// Last aggregated month, carried for runway estimation.
	latestAssets float64
}

// Generate fits a line per series and evaluates it horizonMonths into the
// future. Revenue and expense projections clamp at zero; cashflow, being a
// difference, may go negative to preserve the deterioration signal.
func Generate(ts *TimeSeries, horizonMonths int) (*Result, error) {
	if ts == nil || len(ts.Months) == 0 {
		return nil, &Error{Code: CodeNoData, Message: "empty time series"}
	}
	if horizonMonths < 1 {
		horizonMonths = 1
	}

	revenue := make([]float64, len(ts.Months))
	expenses := make([]float64, len(ts.Months))
	cashflow := make([]float64, len(ts.Months))
	for i, m := range ts.Months {
		revenue[i] = m.Revenue
		expenses[i] = m.Expenses
		cashflow[i] = m.Revenue - m.Expenses
	}

	revFuture, conf := projectLinear(revenue, horizonMonths, true)
	expFuture, _ := projectLinear(expenses, horizonMonths, true)
	cashFuture, _ := projectLinear(cashflow, horizonMonths, false)

	return &Result{
		RevenueForecast:  revFuture,
		ExpenseForecast:  expFuture,
		CashflowForecast: cashFuture,
		Confidence:       conf,
		latestAssets:     ts.Months[len(ts.Months)-1].Assets,
	}, nil
}

// GenerateFromRecords is the one-call form used by the orchestrator.
func GenerateFromRecords(records []models.FinancialRecord, horizonMonths int) (*Result, error) {
	ts, err := BuildTimeSeries(records)
	if err != nil {
		return nil, err
	}
	return Generate(ts, horizonMonths)
}

// projectLinear fits y = slope*x + intercept over a 0-based month index
// and evaluates the next horizon points. With fewer than two observations
// the last known value repeats flat at the degenerate confidence.
func projectLinear(series []float64, horizon int, clampNonNegative bool) ([]float64, float64) {
	n := len(series)
	future := make([]float64, horizon)

	if n < 2 {
		last := series[n-1]
		if clampNonNegative && last < 0 {
			last = 0
		}
		for i := range future {
			future[i] = last
		}
		return future, DegenerateConfidence
	}

	slope, intercept := leastSquares(series)
	for i := 0; i < horizon; i++ {
		x := float64(n + i)
		v := slope*x + intercept
		if clampNonNegative && v < 0 {
			v = 0
		}
		future[i] = v
	}
	return future, FittedConfidence
}

// leastSquares is an ordinary least-squares fit against x = 0..n-1.
func leastSquares(y []float64) (slope, intercept float64) {
	n := float64(len(y))

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
