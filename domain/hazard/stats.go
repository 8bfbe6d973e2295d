package hazard

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"gohaz/domain/imt"
)

// LevelSummary describes the spread of exceedance probability across all
// sites at one intensity level.
type LevelSummary struct {
	Level  float64 `json:"level"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Summarize computes per-level statistics of a curve set across sites, used
// by run reports and API summaries. Level order follows the input level map.
func Summarize(curves CurveSet, levels imt.Levels) (map[imt.IMT][]LevelSummary, error) {
	out := make(map[imt.IMT][]LevelSummary, len(curves))
	for m, curve := range curves {
		lv, ok := levels[m]
		if !ok {
			return nil, fmt.Errorf("no levels for measure %s", m)
		}
		_, numLevels := curve.Dims()
		if numLevels != len(lv) {
			return nil, fmt.Errorf("measure %s: curve has %d levels, map has %d", m, numLevels, len(lv))
		}
		summaries := make([]LevelSummary, numLevels)
		for j := 0; j < numLevels; j++ {
			col := mat.Col(nil, j, curve)
			mean, err := stats.Mean(col)
			if err != nil {
				return nil, fmt.Errorf("measure %s level %v: %w", m, lv[j], err)
			}
			median, err := stats.Median(col)
			if err != nil {
				return nil, fmt.Errorf("measure %s level %v: %w", m, lv[j], err)
			}
			max, err := stats.Max(col)
			if err != nil {
				return nil, fmt.Errorf("measure %s level %v: %w", m, lv[j], err)
			}
			summaries[j] = LevelSummary{Level: lv[j], Mean: mean, Median: median, Max: max}
		}
		out[m] = summaries
	}
	return out, nil
}
