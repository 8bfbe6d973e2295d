package app

import (
	"context"
	"time"

	"gohaz/adapters/calc"
	"gohaz/domain/core"
	"gohaz/domain/hazard"
	"gohaz/internal"
	"gohaz/ports"
)

// CalculationService orchestrates hazard curve computations: fail-fast input
// validation, engine execution and persistence of the run record and curves.
type CalculationService struct {
	repo    ports.CalculationRepository
	workers int
	logger  *internal.Logger
}

// CalculationResult bundles a completed run with its curves
type CalculationResult struct {
	Calculation *hazard.Calculation
	Curves      hazard.CurveSet
	RuntimeMs   int64
}

// NewCalculationService creates a calculation service. workers > 1 runs the
// parallel engine. repo may be nil for ephemeral, non-persisted runs.
func NewCalculationService(repo ports.CalculationRepository, workers int) *CalculationService {
	if workers < 1 {
		workers = 1
	}
	return &CalculationService{repo: repo, workers: workers, logger: internal.DefaultLogger}
}

// Run executes one hazard curve computation. The run record is persisted as
// running before the fold and updated to complete or failed afterwards; on
// failure no curves are persisted and the engine error is returned intact.
func (s *CalculationService) Run(ctx context.Context, in calc.Inputs) (*CalculationResult, error) {
	startTime := time.Now()

	// Reject bad configuration before creating a run record
	if err := in.Validate(); err != nil {
		return nil, err
	}

	calculation := &hazard.Calculation{
		ID:              core.CalculationID(core.NewID()),
		Status:          hazard.CalculationRunning,
		TimeSpan:        in.TimeSpan,
		TruncationLevel: in.TruncationLevel,
		CAVMin:          in.CAVMin,
		NumSites:        in.Sites.Len(),
		NumSources:      len(in.Sources),
		Workers:         s.workers,
		CreatedAt:       core.Now(),
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, calculation); err != nil {
			return nil, err
		}
	}

	s.logger.Info("[CalculationService] run %s: %d sources, %d sites, %d workers",
		calculation.ID, len(in.Sources), in.Sites.Len(), s.workers)

	curves, err := calc.HazardCurvesPoissonianParallel(ctx, in, s.workers)
	calculation.CompletedAt = core.Now()
	if err != nil {
		calculation.Status = hazard.CalculationFailed
		calculation.ErrorMessage = err.Error()
		if s.repo != nil {
			if updateErr := s.repo.Update(ctx, calculation); updateErr != nil {
				s.logger.Error("[CalculationService] run %s: failed to record failure: %v", calculation.ID, updateErr)
			}
		}
		return nil, err
	}

	calculation.Status = hazard.CalculationComplete
	if s.repo != nil {
		if err := s.repo.Update(ctx, calculation); err != nil {
			return nil, err
		}
		if err := s.repo.SaveCurves(ctx, calculation.ID, in.Levels, curves); err != nil {
			return nil, err
		}
	}

	return &CalculationResult{
		Calculation: calculation,
		Curves:      curves,
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}, nil
}
