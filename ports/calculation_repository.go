package ports

import (
	"context"

	"gohaz/domain/core"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
)

// CalculationRepository persists calculation runs and their hazard curves
type CalculationRepository interface {
	Create(ctx context.Context, calc *hazard.Calculation) error
	GetByID(ctx context.Context, id core.CalculationID) (*hazard.Calculation, error)
	Update(ctx context.Context, calc *hazard.Calculation) error
	List(ctx context.Context, limit, offset int) ([]*hazard.Calculation, error)

	// SaveCurves stores the final curve set of a completed calculation
	SaveCurves(ctx context.Context, id core.CalculationID, levels imt.Levels, curves hazard.CurveSet) error
	// GetCurves loads the stored curve set and its level map
	GetCurves(ctx context.Context, id core.CalculationID) (imt.Levels, hazard.CurveSet, error)
}
