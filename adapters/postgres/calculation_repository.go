package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gonum.org/v1/gonum/mat"

	"gohaz/domain/core"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
	"gohaz/ports"
)

// calculationRepository implements the CalculationRepository interface
type calculationRepository struct {
	db *sqlx.DB
}

// NewCalculationRepository creates a new calculation repository
func NewCalculationRepository(db *sqlx.DB) ports.CalculationRepository {
	return &calculationRepository{db: db}
}

// Create inserts a new calculation run record
func (r *calculationRepository) Create(ctx context.Context, calc *hazard.Calculation) error {
	query := `INSERT INTO calculations (
		id, status, time_span, truncation_level, cav_min,
		num_sites, num_sources, workers, error_message, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		calc.ID, calc.Status, calc.TimeSpan, calc.TruncationLevel, calc.CAVMin,
		calc.NumSites, calc.NumSources, calc.Workers, calc.ErrorMessage, calc.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create calculation: %w", err)
	}
	return nil
}

// GetByID retrieves a calculation by its ID
func (r *calculationRepository) GetByID(ctx context.Context, id core.CalculationID) (*hazard.Calculation, error) {
	query := `SELECT
		id, status, time_span, truncation_level, cav_min,
		num_sites, num_sources, workers, COALESCE(error_message, '') as error_message,
		created_at, completed_at
	FROM calculations WHERE id = $1`

	var calc hazard.Calculation
	var createdAt, completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&calc.ID, &calc.Status, &calc.TimeSpan, &calc.TruncationLevel, &calc.CAVMin,
		&calc.NumSites, &calc.NumSources, &calc.Workers, &calc.ErrorMessage,
		&createdAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("calculation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	if createdAt.Valid {
		calc.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if completedAt.Valid {
		calc.CompletedAt = core.NewTimestamp(completedAt.Time)
	}
	return &calc, nil
}

// Update persists status transitions and completion metadata
func (r *calculationRepository) Update(ctx context.Context, calc *hazard.Calculation) error {
	query := `UPDATE calculations SET
		status = $2, error_message = $3, completed_at = $4
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		calc.ID, calc.Status, calc.ErrorMessage, calc.CompletedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("calculation %s not found", calc.ID)
	}
	return nil
}

// List returns calculation records ordered by creation time, newest first
func (r *calculationRepository) List(ctx context.Context, limit, offset int) ([]*hazard.Calculation, error) {
	query := `SELECT
		id, status, time_span, truncation_level, cav_min,
		num_sites, num_sources, workers, COALESCE(error_message, '') as error_message,
		created_at, completed_at
	FROM calculations ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var out []*hazard.Calculation
	for rows.Next() {
		var calc hazard.Calculation
		var createdAt, completedAt sql.NullTime
		if err := rows.Scan(
			&calc.ID, &calc.Status, &calc.TimeSpan, &calc.TruncationLevel, &calc.CAVMin,
			&calc.NumSites, &calc.NumSources, &calc.Workers, &calc.ErrorMessage,
			&createdAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		if createdAt.Valid {
			calc.CreatedAt = core.NewTimestamp(createdAt.Time)
		}
		if completedAt.Valid {
			calc.CompletedAt = core.NewTimestamp(completedAt.Time)
		}
		out = append(out, &calc)
	}
	return out, rows.Err()
}

// SaveCurves stores one row per (measure, site) with levels and poes as jsonb
func (r *calculationRepository) SaveCurves(ctx context.Context, id core.CalculationID, levels imt.Levels, curves hazard.CurveSet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin curves transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO hazard_curves (calculation_id, imt, site_index, levels, poes)
		VALUES ($1, $2, $3, $4, $5)`

	for m, curve := range curves {
		levelsJSON, err := json.Marshal(levels[m])
		if err != nil {
			return fmt.Errorf("failed to marshal levels for %s: %w", m, err)
		}
		numSites, _ := curve.Dims()
		for i := 0; i < numSites; i++ {
			poesJSON, err := json.Marshal(curve.RawRowView(i))
			if err != nil {
				return fmt.Errorf("failed to marshal poes for %s site %d: %w", m, i, err)
			}
			if _, err := tx.ExecContext(ctx, query, id, m.String(), i, levelsJSON, poesJSON); err != nil {
				return fmt.Errorf("failed to save curve row: %w", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit curves: %w", err)
	}
	return nil
}

// GetCurves reloads the stored curve set and its level map
func (r *calculationRepository) GetCurves(ctx context.Context, id core.CalculationID) (imt.Levels, hazard.CurveSet, error) {
	query := `SELECT imt, site_index, levels, poes FROM hazard_curves
		WHERE calculation_id = $1 ORDER BY imt, site_index`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load curves: %w", err)
	}
	defer rows.Close()

	levels := make(imt.Levels)
	rowsByIMT := make(map[imt.IMT][][]float64)
	for rows.Next() {
		var measure string
		var siteIndex int
		var levelsJSON, poesJSON []byte
		if err := rows.Scan(&measure, &siteIndex, &levelsJSON, &poesJSON); err != nil {
			return nil, nil, fmt.Errorf("failed to scan curve row: %w", err)
		}
		m, err := imt.Parse(measure)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := levels[m]; !ok {
			var lv []float64
			if err := json.Unmarshal(levelsJSON, &lv); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal levels for %s: %w", m, err)
			}
			levels[m] = lv
		}
		var poes []float64
		if err := json.Unmarshal(poesJSON, &poes); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal poes for %s: %w", m, err)
		}
		rowsByIMT[m] = append(rowsByIMT[m], poes)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(rowsByIMT) == 0 {
		return nil, nil, fmt.Errorf("no curves stored for calculation %s", id)
	}

	curves := make(hazard.CurveSet, len(rowsByIMT))
	for m, siteRows := range rowsByIMT {
		curve := mat.NewDense(len(siteRows), len(levels[m]), nil)
		for i, row := range siteRows {
			curve.SetRow(i, row)
		}
		curves[m] = curve
	}
	return levels, curves, nil
}
