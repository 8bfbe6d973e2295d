// Package imt defines intensity measure types and their level maps: the
// ground-motion quantities a hazard calculation is evaluated over.
package imt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gohaz/domain/core"
)

// IMT identifies an intensity measure type: peak ground acceleration, peak
// ground velocity, or spectral acceleration at a period, e.g. "SA(0.2)".
type IMT string

const (
	PGA IMT = "PGA"
	PGV IMT = "PGV"
)

// SA returns the spectral acceleration measure at the given period in seconds
func SA(period float64) IMT {
	return IMT(fmt.Sprintf("SA(%g)", period))
}

// Parse validates and normalizes an intensity measure identifier
func Parse(s string) (IMT, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == string(PGA) || s == string(PGV):
		return IMT(s), nil
	case strings.HasPrefix(s, "SA(") && strings.HasSuffix(s, ")"):
		period, err := strconv.ParseFloat(s[3:len(s)-1], 64)
		if err != nil || period <= 0 {
			return "", fmt.Errorf("%w: bad SA period in %q", core.ErrConfiguration, s)
		}
		return SA(period), nil
	default:
		return "", fmt.Errorf("%w: unknown intensity measure %q", core.ErrConfiguration, s)
	}
}

// String returns the measure identifier
func (m IMT) String() string {
	return string(m)
}

// Period returns the spectral period in seconds. PGA is treated as zero-period
// spectral acceleration; PGV has no period and returns an error.
func (m IMT) Period() (float64, error) {
	switch {
	case m == PGA:
		return 0, nil
	case m == PGV:
		return 0, fmt.Errorf("%w: PGV has no spectral period", core.ErrConfiguration)
	case strings.HasPrefix(string(m), "SA("):
		return strconv.ParseFloat(string(m)[3:len(m)-1], 64)
	default:
		return 0, fmt.Errorf("%w: unknown intensity measure %q", core.ErrConfiguration, m)
	}
}

// Levels maps each requested measure to its ordered intensity levels of
// interest. Level order is significant and preserved in the output curves.
type Levels map[IMT][]float64

// Validate checks every level sequence is non-empty, positive, finite and
// strictly increasing. Malformed level maps are a configuration error, not a
// silently accepted input.
func (l Levels) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no intensity measures requested", core.ErrConfiguration)
	}
	for m, levels := range l {
		if len(levels) == 0 {
			return fmt.Errorf("%w: %s has no levels", core.ErrBadLevels, m)
		}
		prev := 0.0
		for _, lv := range levels {
			if lv <= prev || math.IsNaN(lv) || math.IsInf(lv, 0) {
				return fmt.Errorf("%w: %s levels %v", core.ErrBadLevels, m, levels)
			}
			prev = lv
		}
	}
	return nil
}
