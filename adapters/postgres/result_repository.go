package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"goseg/inference"
)

// ResultRepository appends inference outcomes for later inspection.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a result repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

const insertResult = `INSERT INTO inference_results
	(run_id, kind, measure, approach, seed, statistic, p_value, estimates, fingerprint, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// SaveSingle persists a single-value test result.
func (r *ResultRepository) SaveSingle(ctx context.Context, res *inference.SingleResult) error {
	estimatesJSON, err := json.Marshal(res.Estimates)
	if err != nil {
		return fmt.Errorf("failed to marshal estimates: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertResult,
		res.RunID.String(), "single", res.Measure, string(res.Approach), res.Seed,
		res.Statistic, res.PValue, estimatesJSON, res.Fingerprint.String(), res.CompletedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// SaveTwo persists a comparative test result. The difference is stored in the
// statistic column and both frame fingerprints are joined.
func (r *ResultRepository) SaveTwo(ctx context.Context, res *inference.TwoResult) error {
	estimatesJSON, err := json.Marshal(res.Estimates)
	if err != nil {
		return fmt.Errorf("failed to marshal estimates: %w", err)
	}

	fingerprint := res.Fingerprint1.String() + "+" + res.Fingerprint2.String()
	_, err = r.db.ExecContext(ctx, insertResult,
		res.RunID.String(), "two", res.Measure, string(res.Approach), res.Seed,
		res.Difference, res.PValue, estimatesJSON, fingerprint, res.CompletedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// RunSummary is one row of the recent-runs listing.
type RunSummary struct {
	RunID       string    `db:"run_id"`
	Kind        string    `db:"kind"`
	Measure     string    `db:"measure"`
	Approach    string    `db:"approach"`
	Statistic   float64   `db:"statistic"`
	PValue      float64   `db:"p_value"`
	CompletedAt time.Time `db:"completed_at"`
}

// Recent returns the most recent inference runs, newest first.
func (r *ResultRepository) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []RunSummary
	err := r.db.SelectContext(ctx, &out,
		`SELECT run_id, kind, measure, approach, statistic, p_value, completed_at
		 FROM inference_results ORDER BY completed_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return out, nil
}
