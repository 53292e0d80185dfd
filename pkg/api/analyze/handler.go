// Package analyze runs the full assessment pipeline for one business
// and persists its outputs.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"finhealth/pkg/core/config"
	"finhealth/pkg/core/fraud"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/warning"
	"finhealth/pkg/models"
)

// Horizon bounds accepted from the query string. The engine itself
// tolerates any positive horizon; the API enforces the product range.
const (
	MinHorizon = 3
	MaxHorizon = 6
)

// RiskTrendDepth is how many past risk scores feed the deterioration
// probability.
const RiskTrendDepth = 6

// Assessor is satisfied by *pipeline.Orchestrator.
type Assessor interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.ConsolidatedAssessment, error)
}

// RecordSource is satisfied by *store.StatementRepo.
type RecordSource interface {
	ListRecords(ctx context.Context, businessID int64) ([]models.FinancialRecord, error)
	LatestGSTFiling(ctx context.Context, businessID int64) (models.GSTData, error)
}

// BusinessSource is satisfied by *store.BusinessRepo.
type BusinessSource interface {
	GetBusiness(ctx context.Context, id int64) (models.Business, error)
}

// ResultSink is satisfied by *store.AssessmentRepo.
type ResultSink interface {
	SaveScore(ctx context.Context, table string, businessID int64, score int, category string) error
	RiskScoreHistory(ctx context.Context, businessID int64, limit int) ([]int, error)
	SaveFraudFlags(ctx context.Context, businessID int64, flags []fraud.Flag) error
	SaveWarnings(ctx context.Context, businessID int64, warnings []warning.Warning) error
	SaveAssessment(ctx context.Context, assessmentID string, businessID int64, payload interface{}) error
}

var (
	assessor   Assessor
	records    RecordSource
	businesses BusinessSource
	results    ResultSink
	defaults   config.AssessmentConfig
)

// InitHandler wires the collaborators. The assessment config supplies
// the defaults for the horizon and lang query parameters and the
// fallback industry for businesses created without one.
func InitHandler(a Assessor, r RecordSource, b BusinessSource, s ResultSink, d config.AssessmentConfig) {
	assessor = a
	records = r
	businesses = b
	results = s
	defaults = d
	if defaults.HorizonMonths < MinHorizon || defaults.HorizonMonths > MaxHorizon {
		defaults.HorizonMonths = MinHorizon
	}
}

// HandleAnalyze runs the assessment for ?business_id=N. Optional query
// parameters: horizon (3-6 months) and lang (en|hi); both default from
// the assessment configuration.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	businessID, err := strconv.ParseInt(r.URL.Query().Get("business_id"), 10, 64)
	if err != nil || businessID <= 0 {
		http.Error(w, "business_id query parameter is required", http.StatusBadRequest)
		return
	}

	horizon := defaults.HorizonMonths
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		horizon, err = strconv.Atoi(raw)
		if err != nil || horizon < MinHorizon || horizon > MaxHorizon {
			http.Error(w, fmt.Sprintf("horizon must be an integer between %d and %d", MinHorizon, MaxHorizon), http.StatusBadRequest)
			return
		}
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = defaults.DefaultLanguage
	}

	ctx := r.Context()

	business, err := businesses.GetBusiness(ctx, businessID)
	if err != nil {
		http.Error(w, fmt.Sprintf("business not found: %v", err), http.StatusNotFound)
		return
	}
	if business.Industry == "" {
		business.Industry = defaults.DefaultIndustry
	}

	recs, err := records.ListRecords(ctx, businessID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load statements: %v", err), http.StatusInternalServerError)
		return
	}
	if len(recs) == 0 {
		http.Error(w, "no financial statements on file for this business", http.StatusBadRequest)
		return
	}

	// Optional inputs degrade to their zero values.
	trend, err := results.RiskScoreHistory(ctx, businessID, RiskTrendDepth)
	if err != nil {
		fmt.Printf("[API] Warning: risk trend unavailable for business %d: %v\n", businessID, err)
	}
	gst, err := records.LatestGSTFiling(ctx, businessID)
	if err != nil {
		fmt.Printf("[API] Warning: GST filing unavailable for business %d: %v\n", businessID, err)
	}

	assessment, err := assessor.Run(ctx, pipeline.Input{
		BusinessID:    businessID,
		Records:       recs,
		Industry:      business.Industry,
		HorizonMonths: horizon,
		RiskTrend:     trend,
		GST:           gst,
		Language:      lang,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("assessment failed: %v", err), http.StatusInternalServerError)
		return
	}

	persist(ctx, businessID, assessment)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assessment)
}

// persist writes the assessment outputs. Failures are logged, never
// surfaced: the caller already has the computed assessment in hand.
func persist(ctx context.Context, businessID int64, a *pipeline.ConsolidatedAssessment) {
	if err := results.SaveScore(ctx, "risk_scores", businessID, a.Risk.Score, a.Risk.Category); err != nil {
		fmt.Printf("[API] Warning: failed to save risk score: %v\n", err)
	}
	if err := results.SaveScore(ctx, "investor_scores", businessID, a.Investor.Score, a.Investor.Category); err != nil {
		fmt.Printf("[API] Warning: failed to save investor score: %v\n", err)
	}
	if err := results.SaveScore(ctx, "esg_scores", businessID, a.ESG.Score, a.ESG.Category); err != nil {
		fmt.Printf("[API] Warning: failed to save esg score: %v\n", err)
	}
	if err := results.SaveFraudFlags(ctx, businessID, a.FraudFlags); err != nil {
		fmt.Printf("[API] Warning: failed to save fraud flags: %v\n", err)
	}
	if err := results.SaveWarnings(ctx, businessID, a.Warnings.Warnings); err != nil {
		fmt.Printf("[API] Warning: failed to save warnings: %v\n", err)
	}
	if err := results.SaveAssessment(ctx, a.AssessmentID, businessID, a); err != nil {
		fmt.Printf("[API] Warning: failed to save assessment: %v\n", err)
	}
}
