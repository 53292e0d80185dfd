package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/models"
)

// StatementRepo provides storage for financial statements and GST
// filings belonging to a business.
type StatementRepo struct {
	pool *pgxpool.Pool
}

func NewStatementRepo(pool *pgxpool.Pool) *StatementRepo {
	return &StatementRepo{pool: pool}
}

// SaveRecord inserts one financial statement and returns it with the
// assigned ID.
func (r *StatementRepo) SaveRecord(ctx context.Context, rec models.FinancialRecord) (models.FinancialRecord, error) {
	if r.pool == nil {
		return rec, fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO financial_statements (
			business_id, revenue, expenses, assets, liabilities,
			receivables, payables, inventory, debt, statement_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		rec.BusinessID, rec.Revenue, rec.Expenses, rec.Assets, rec.Liabilities,
		rec.Receivables, rec.Payables, rec.Inventory, rec.Debt, rec.Date,
	).Scan(&rec.ID)
	if err != nil {
		return rec, fmt.Errorf("failed to save financial statement: %w", err)
	}
	return rec, nil
}

// ListRecords returns every statement for a business in chronological
// order, the ordering the forecasting engine expects.
func (r *StatementRepo) ListRecords(ctx context.Context, businessID int64) ([]models.FinancialRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, business_id, revenue, expenses, assets, liabilities,
		       receivables, payables, inventory, debt, statement_date
		FROM financial_statements
		WHERE business_id = $1
		ORDER BY statement_date ASC
	`

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var out []models.FinancialRecord
	for rows.Next() {
		var rec models.FinancialRecord
		if err := rows.Scan(&rec.ID, &rec.BusinessID, &rec.Revenue, &rec.Expenses,
			&rec.Assets, &rec.Liabilities, &rec.Receivables, &rec.Payables,
			&rec.Inventory, &rec.Debt, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// SaveGSTFiling records one GST period for a business.
func (r *StatementRepo) SaveGSTFiling(ctx context.Context, businessID int64, period string, gst models.GSTData) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO gst_filings (
			business_id, gst_collected, gst_paid, input_credit, output_tax, period
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		businessID, gst.Collected, gst.Paid, gst.InputCredit, gst.OutputTax, period)
	if err != nil {
		return fmt.Errorf("failed to save GST filing: %w", err)
	}
	return nil
}

// LatestGSTFiling returns the most recent GST filing for a business.
// A business with no filings gets the zero value, which the compliance
// engine handles.
func (r *StatementRepo) LatestGSTFiling(ctx context.Context, businessID int64) (models.GSTData, error) {
	var gst models.GSTData
	if r.pool == nil {
		return gst, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT gst_collected, gst_paid, input_credit, output_tax
		FROM gst_filings
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.pool.QueryRow(ctx, query, businessID).
		Scan(&gst.Collected, &gst.Paid, &gst.InputCredit, &gst.OutputTax)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GSTData{}, nil
		}
		return gst, fmt.Errorf("failed to query GST filing: %w", err)
	}
	return gst, nil
}
