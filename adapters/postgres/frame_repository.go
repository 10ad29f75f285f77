package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/ports"
)

// FrameRepository stores and loads unit frames.
type FrameRepository struct {
	db *sqlx.DB
}

// NewFrameRepository creates a frame repository.
func NewFrameRepository(db *sqlx.DB) *FrameRepository {
	return &FrameRepository{db: db}
}

// storedGeometry is the JSON shape geometry is persisted in.
type storedGeometry struct {
	Areas      []float64 `json:"areas,omitempty"`
	Perimeters []float64 `json:"perimeters,omitempty"`
	CentroidX  []float64 `json:"centroid_x,omitempty"`
	CentroidY  []float64 `json:"centroid_y,omitempty"`
}

// Save upserts a frame under the given name.
func (r *FrameRepository) Save(ctx context.Context, name string, f *frame.Frame) (core.ID, error) {
	unitIDsJSON, err := json.Marshal(f.UnitIDs())
	if err != nil {
		return "", fmt.Errorf("failed to marshal unit IDs: %w", err)
	}

	cols := make(map[string][]float64, len(f.Columns()))
	for _, colName := range f.Columns() {
		vals, err := f.Column(colName)
		if err != nil {
			return "", err
		}
		cols[colName] = vals
	}
	columnsJSON, err := json.Marshal(cols)
	if err != nil {
		return "", fmt.Errorf("failed to marshal columns: %w", err)
	}

	var geometryJSON []byte
	if g := f.Geometry(); g != nil {
		geometryJSON, err = json.Marshal(storedGeometry{
			Areas:      g.Areas,
			Perimeters: g.Perimeters,
			CentroidX:  g.CentroidX,
			CentroidY:  g.CentroidY,
		})
		if err != nil {
			return "", fmt.Errorf("failed to marshal geometry: %w", err)
		}
	}

	id := core.NewID()
	query := `INSERT INTO frames (id, name, fingerprint, unit_count, unit_ids, columns, geometry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			fingerprint = EXCLUDED.fingerprint,
			unit_count  = EXCLUDED.unit_count,
			unit_ids    = EXCLUDED.unit_ids,
			columns     = EXCLUDED.columns,
			geometry    = EXCLUDED.geometry`

	_, err = r.db.ExecContext(ctx, query,
		id, name, f.Fingerprint().String(), f.Len(), unitIDsJSON, columnsJSON, geometryJSON, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to save frame: %w", err)
	}
	return id, nil
}

// GetByName loads a frame back by its saved name.
func (r *FrameRepository) GetByName(ctx context.Context, name string) (*frame.Frame, error) {
	query := `SELECT unit_ids, columns, geometry FROM frames WHERE name = $1`

	var unitIDsJSON, columnsJSON []byte
	var geometryJSON sql.NullString
	err := r.db.QueryRowContext(ctx, query, name).Scan(&unitIDsJSON, &columnsJSON, &geometryJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("frame not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get frame: %w", err)
	}

	var unitIDs []string
	if err := json.Unmarshal(unitIDsJSON, &unitIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unit IDs: %w", err)
	}
	var cols map[string][]float64
	if err := json.Unmarshal(columnsJSON, &cols); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}

	f, err := frame.New(unitIDs, cols)
	if err != nil {
		return nil, err
	}

	if geometryJSON.Valid && geometryJSON.String != "" {
		var sg storedGeometry
		if err := json.Unmarshal([]byte(geometryJSON.String), &sg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal geometry: %w", err)
		}
		return f.WithGeometry(&frame.Geometry{
			Areas:      sg.Areas,
			Perimeters: sg.Perimeters,
			CentroidX:  sg.CentroidX,
			CentroidY:  sg.CentroidY,
		})
	}
	return f, nil
}

// List returns the saved frame names with their fingerprints.
func (r *FrameRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, fingerprint FROM frames ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, fingerprint string
		if err := rows.Scan(&name, &fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan frame row: %w", err)
		}
		out[name] = fingerprint
	}
	return out, rows.Err()
}

// Delete removes a saved frame.
func (r *FrameRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frames WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete frame: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("frame not found: %s", name)
	}
	return nil
}

// Source binds a repository and a frame name into a ports.FrameSource.
type Source struct {
	repo *FrameRepository
	name string
}

// NewSource creates a frame source backed by a saved frame.
func NewSource(repo *FrameRepository, name string) *Source {
	return &Source{repo: repo, name: name}
}

var _ ports.FrameSource = (*Source)(nil)

// Load fetches the named frame.
func (s *Source) Load(ctx context.Context) (*frame.Frame, error) {
	return s.repo.GetByName(ctx, s.name)
}
