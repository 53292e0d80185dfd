package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"finhealth/pkg/models"
)

// BusinessRepo provides storage for SME business profiles.
type BusinessRepo struct {
	pool *pgxpool.Pool
}

func NewBusinessRepo(pool *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

// CreateBusiness inserts a business and returns it with the assigned ID.
func (r *BusinessRepo) CreateBusiness(ctx context.Context, b models.Business) (models.Business, error) {
	if r.pool == nil {
		return b, fmt.Errorf("database pool not configured")
	}

	query := `
		INSERT INTO businesses (name, industry, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, b.Name, b.Industry, b.OwnerID).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return b, fmt.Errorf("failed to create business: %w", err)
	}
	return b, nil
}

// GetBusiness fetches one business by ID.
func (r *BusinessRepo) GetBusiness(ctx context.Context, id int64) (models.Business, error) {
	var b models.Business
	if r.pool == nil {
		return b, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, name, industry, owner_id, created_at
		FROM businesses
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Name, &b.Industry, &b.OwnerID, &b.CreatedAt)
	if err != nil {
		return b, fmt.Errorf("failed to get business %d: %w", id, err)
	}
	return b, nil
}

// ListBusinesses returns all businesses, newest first.
func (r *BusinessRepo) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `
		SELECT id, name, industry, owner_id, created_at
		FROM businesses
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	var out []models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Industry, &b.OwnerID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}
