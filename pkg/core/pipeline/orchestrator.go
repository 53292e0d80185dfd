// Package pipeline composes the individual engines into one consolidated
// assessment. The orchestrator is pure with respect to storage: it takes
// records in and returns a value out, persistence is the caller's job.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"finhealth/pkg/core/advisory"
	"finhealth/pkg/core/benchmark"
	"finhealth/pkg/core/cashflow"
	"finhealth/pkg/core/esg"
	"finhealth/pkg/core/forecast"
	"finhealth/pkg/core/fraud"
	"finhealth/pkg/core/investor"
	"finhealth/pkg/core/metrics"
	"finhealth/pkg/core/narrative"
	"finhealth/pkg/core/products"
	"finhealth/pkg/core/risk"
	"finhealth/pkg/core/warning"
	"finhealth/pkg/models"
)

// MinForecastRecords is the history required before the forecaster runs.
// Below it the assessment simply omits the forecast section.
const MinForecastRecords = 3

// Narrator produces the AI-CFO summary. Satisfied by *narrative.Engine;
// nil disables the narrative section entirely.
type Narrator interface {
	Generate(ctx context.Context, in narrative.Input) narrative.Summary
}

// Input is everything one assessment run needs. Records may arrive in any
// order; the orchestrator sorts them by statement date. RiskTrend is the
// business's recent risk score history (oldest first) and may be empty.
type Input struct {
	BusinessID    int64
	Records       []models.FinancialRecord
	Industry      string
	HorizonMonths int
	RiskTrend     []int
	GST           models.GSTData
	Language      string
}

// ConsolidatedAssessment is the full output of one pipeline run. Risk
// holds the benchmark-adjusted score; BaseRiskScore preserves the
// pre-adjustment value for trend storage.
type ConsolidatedAssessment struct {
	AssessmentID string    `json:"assessment_id"`
	BusinessID   int64     `json:"business_id"`
	GeneratedAt  time.Time `json:"generated_at"`

	Metrics models.MetricSet `json:"metrics"`

	Risk              risk.Result       `json:"risk"`
	BaseRiskScore     int               `json:"base_risk_score"`
	BenchmarkModifier int               `json:"benchmark_modifier"`
	Benchmark         benchmark.Summary `json:"benchmark"`

	Investor investor.Result `json:"investor_readiness"`
	ESG      esg.Result      `json:"esg"`

	FraudFlags []fraud.Flag `json:"fraud_flags"`

	Forecast        *forecast.Result  `json:"forecast,omitempty"`
	ForecastSignals *forecast.Signals `json:"forecast_signals,omitempty"`

	Warnings warning.Result `json:"early_warnings"`

	Cashflow        cashflow.Snapshot `json:"cashflow"`
	CashflowHistory cashflow.History  `json:"cashflow_history"`

	WorkingCapital   advisory.WorkingCapitalResult `json:"working_capital"`
	CostOptimization advisory.CostResult           `json:"cost_optimization"`
	Compliance       advisory.ComplianceResult     `json:"compliance"`

	Products products.Result `json:"product_recommendations"`

	Narrative *narrative.Summary `json:"narrative,omitempty"`
}

// Orchestrator runs the engines in dependency order. Thresholds and
// benchmark tables are injected once at construction and never mutated.
type Orchestrator struct {
	thresholds risk.Thresholds
	tables     benchmark.Tables
	narrator   Narrator
}

func NewOrchestrator(narrator Narrator) *Orchestrator {
	return &Orchestrator{
		thresholds: risk.DefaultThresholds(),
		tables:     benchmark.DefaultTables(),
		narrator:   narrator,
	}
}

// SetThresholds overrides the risk penalty rules (e.g. for testing).
func (o *Orchestrator) SetThresholds(th risk.Thresholds) {
	o.thresholds = th
}

// SetTables overrides the benchmark tables.
func (o *Orchestrator) SetTables(t benchmark.Tables) {
	o.tables = t
}

// Run executes the full assessment for one business.
//
// Order matters in three places: the benchmark modifier adjusts the risk
// score before the investor and product engines read it, and the
// forecaster runs before the warning engine so its signals feed the
// deterioration probability. Everything else is independent.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*ConsolidatedAssessment, error) {
	if len(in.Records) == 0 {
		return nil, fmt.Errorf("assessment requires at least one financial record")
	}

	start := time.Now()
	fmt.Printf("[PIPELINE] Starting assessment for business %d (%d records, industry=%q)\n",
		in.BusinessID, len(in.Records), in.Industry)

	records := make([]models.FinancialRecord, len(in.Records))
	copy(records, in.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	latest := records[len(records)-1]

	horizon := in.HorizonMonths
	if horizon < 1 {
		horizon = 3
	}

	// 1. Metrics from the latest statement.
	m := metrics.Compute(latest)

	// 2. Risk, then the benchmark adjustment on top of it.
	baseRisk := risk.Score(m, o.thresholds)

	bench := benchmark.Compare(m, in.Industry, o.tables)
	modifier := benchmark.RiskModifier(bench)

	adjusted := baseRisk.Score + modifier
	if adjusted < risk.MinScore {
		adjusted = risk.MinScore
	}
	if adjusted > risk.MaxScore {
		adjusted = risk.MaxScore
	}
	adjustedRisk := risk.Result{
		Score:      adjusted,
		Category:   risk.Categorize(adjusted),
		Deductions: baseRisk.Deductions,
	}
	fmt.Printf("[PIPELINE] Risk %d (%s), benchmark modifier %+d -> %d (%s)\n",
		baseRisk.Score, baseRisk.Category, modifier, adjusted, adjustedRisk.Category)

	// 3. Scoring engines that read the adjusted risk score.
	inv := investor.Score(m, adjusted)
	esgResult := esg.Score(latest)
	flags := fraud.Detect(latest)

	// 4. Forecast. Needs history; failure or thin data degrades the
	// assessment instead of aborting it.
	var fc *forecast.Result
	var signals *forecast.Signals
	if len(records) >= MinForecastRecords {
		result, err := forecast.GenerateFromRecords(records, horizon)
		if err != nil {
			fmt.Printf("[PIPELINE] Warning: forecast failed: %v. Continuing without it.\n", err)
		} else {
			fc = result
			s := forecast.ExtractSignals(result)
			signals = &s
		}
	} else {
		fmt.Printf("[PIPELINE] Skipping forecast: %d records, need %d\n", len(records), MinForecastRecords)
	}

	// 5. Early warnings, fed by the forecast signals and risk trend.
	warnings := warning.Evaluate(warning.Input{
		Metrics:         m,
		ForecastSignals: signals,
		RiskTrend:       in.RiskTrend,
	})

	// 6. Cashflow views.
	snapshot := cashflow.Compute(latest)
	var history cashflow.History
	if ts, err := forecast.BuildTimeSeries(records); err == nil {
		history = cashflow.ComputeHistory(ts)
	}

	// 7. Advisory engines.
	wc := advisory.AnalyzeWorkingCapital(m)
	cost := advisory.OptimizeCosts(latest)
	compliance := advisory.CheckCompliance(in.GST, latest.Revenue)

	// 8. Product recommendations off the adjusted risk score.
	prods := products.Recommend(adjusted, m, signals)

	out := &ConsolidatedAssessment{
		AssessmentID:      uuid.New().String(),
		BusinessID:        in.BusinessID,
		GeneratedAt:       time.Now().UTC(),
		Metrics:           m,
		Risk:              adjustedRisk,
		BaseRiskScore:     baseRisk.Score,
		BenchmarkModifier: modifier,
		Benchmark:         bench,
		Investor:          inv,
		ESG:               esgResult,
		FraudFlags:        flags,
		Forecast:          fc,
		ForecastSignals:   signals,
		Warnings:          warnings,
		Cashflow:          snapshot,
		CashflowHistory:   history,
		WorkingCapital:    wc,
		CostOptimization:  cost,
		Compliance:        compliance,
		Products:          prods,
	}

	// 9. Narrative last, over the finished numbers. Optional and
	// non-fatal by construction.
	if o.narrator != nil {
		summary := o.narrator.Generate(ctx, narrative.Input{
			Metrics:    m,
			Risk:       adjustedRisk,
			Investor:   inv,
			ESG:        esgResult,
			Warnings:   warnings.Warnings,
			FraudFlags: flags,
			Language:   in.Language,
		})
		out.Narrative = &summary
	}

	fmt.Printf("[PIPELINE] Assessment %s completed in %v\n", out.AssessmentID, time.Since(start))
	return out, nil
}
