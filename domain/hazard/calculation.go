package hazard

import (
	"gohaz/domain/core"
)

// CalculationStatus tracks the lifecycle of one hazard calculation run
type CalculationStatus string

const (
	CalculationPending  CalculationStatus = "pending"
	CalculationRunning  CalculationStatus = "running"
	CalculationComplete CalculationStatus = "complete"
	CalculationFailed   CalculationStatus = "failed"
)

// Calculation is the persisted record of one hazard curve computation
type Calculation struct {
	ID              core.CalculationID `json:"id" db:"id"`
	Status          CalculationStatus  `json:"status" db:"status"`
	TimeSpan        float64            `json:"time_span" db:"time_span"`
	TruncationLevel float64            `json:"truncation_level" db:"truncation_level"`
	CAVMin          float64            `json:"cav_min" db:"cav_min"`
	NumSites        int                `json:"num_sites" db:"num_sites"`
	NumSources      int                `json:"num_sources" db:"num_sources"`
	Workers         int                `json:"workers" db:"workers"`
	ErrorMessage    string             `json:"error_message,omitempty" db:"error_message"`
	CreatedAt       core.Timestamp     `json:"created_at" db:"created_at"`
	CompletedAt     core.Timestamp     `json:"completed_at,omitempty" db:"completed_at"`
}
