package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/core/fraud"
	"finhealth/pkg/core/warning"
)

// AssessmentRepo persists pipeline outputs: per-engine score rows for
// trend queries plus the full consolidated assessment as JSONB.
type AssessmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepo(pool *pgxpool.Pool) *AssessmentRepo {
	return &AssessmentRepo{pool: pool}
}

// SaveScore appends one score row to the named table. Valid tables are
// risk_scores, investor_scores and esg_scores; they share a schema.
func (r *AssessmentRepo) SaveScore(ctx context.Context, table string, businessID int64, score int, category string) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	switch table {
	case "risk_scores", "investor_scores", "esg_scores":
	default:
		return fmt.Errorf("unknown score table %q", table)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (business_id, score, category)
		VALUES ($1, $2, $3)
	`, table)

	if _, err := r.pool.Exec(ctx, query, businessID, score, category); err != nil {
		return fmt.Errorf("failed to save %s row: %w", table, err)
	}
	return nil
}

// RiskScoreHistory returns the most recent risk scores for a business,
// oldest first, capped at limit. The warning engine reads this as the
// risk trend.
func (r *AssessmentRepo) RiskScoreHistory(ctx context.Context, businessID int64, limit int) ([]int, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT score FROM (
			SELECT score, created_at
			FROM risk_scores
			WHERE business_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk score history: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan risk score row: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// SaveFraudFlags appends the detected flags. A single failed row is
// logged and skipped so the rest of the batch still lands.
func (r *AssessmentRepo) SaveFraudFlags(ctx context.Context, businessID int64, flags []fraud.Flag) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO fraud_flags (business_id, flag_type, description, severity)
		VALUES ($1, $2, $3, $4)
	`

	for _, f := range flags {
		if _, err := r.pool.Exec(ctx, query, businessID, f.Type, f.Message, f.Severity); err != nil {
			fmt.Printf("  Warning: failed to save fraud flag %s: %v\n", f.Type, err)
		}
	}
	return nil
}

// SaveWarnings appends the early warnings for a business.
func (r *AssessmentRepo) SaveWarnings(ctx context.Context, businessID int64, warnings []warning.Warning) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO early_warnings (business_id, warning_type, message, severity)
		VALUES ($1, $2, $3, $4)
	`

	for _, w := range warnings {
		if _, err := r.pool.Exec(ctx, query, businessID, w.Type, w.Message, w.Severity); err != nil {
			fmt.Printf("  Warning: failed to save early warning %s: %v\n", w.Type, err)
		}
	}
	return nil
}

// SaveAssessment upserts the full consolidated assessment as JSONB,
// keyed by the assessment UUID so a re-run overwrites its own payload.
func (r *AssessmentRepo) SaveAssessment(ctx context.Context, assessmentID string, businessID int64, payload interface{}) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO assessments (assessment_id, business_id, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (assessment_id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, assessmentID, businessID, body); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// LatestAssessment returns the raw JSONB payload of the newest
// assessment for a business.
func (r *AssessmentRepo) LatestAssessment(ctx context.Context, businessID int64) (json.RawMessage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT payload
		FROM assessments
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(&payload); err != nil {
		return nil, fmt.Errorf("failed to query latest assessment: %w", err)
	}
	return payload, nil
}
