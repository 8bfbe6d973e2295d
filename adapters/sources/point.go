// Package sources provides the seismic source implementations consumed by
// the calculation engine through the ports.Source contract.
package sources

import (
	"iter"

	"gohaz/domain/geo"
	"gohaz/domain/seismic"
	"gohaz/domain/tom"
	"gohaz/ports"
)

// PointSource models seismicity concentrated at a single location: one
// rupture per magnitude bin of its magnitude-frequency distribution, all
// hypocentered at the source location.
type PointSource struct {
	ID        string                     `json:"id"`
	TRT       seismic.TectonicRegionType `json:"tectonic_region_type"`
	Loc       geo.Point                  `json:"location"`
	MFD       seismic.TruncatedGRMFD     `json:"mfd"`
	HypoDepth float64                    `json:"hypo_depth"` // km
}

var (
	_ ports.Source  = (*PointSource)(nil)
	_ ports.Located = (*PointSource)(nil)
)

// SourceID returns the identifier used for error attribution
func (s *PointSource) SourceID() string {
	return s.ID
}

// TectonicRegionType returns the regime tag shared by this source's ruptures
func (s *PointSource) TectonicRegionType() seismic.TectonicRegionType {
	return s.TRT
}

// Location returns the epicenter used by distance-based source-site filters
func (s *PointSource) Location() geo.Point {
	return s.Loc
}

// IterRuptures lazily yields one rupture per magnitude bin. Single-pass:
// bins are discretized once per call and never retained.
func (s *PointSource) IterRuptures(t *tom.PoissonTOM) iter.Seq2[*seismic.Rupture, error] {
	return func(yield func(*seismic.Rupture, error) bool) {
		rates, err := s.MFD.AnnualRates()
		if err != nil {
			yield(nil, err)
			return
		}
		hypocenter := s.Loc
		hypocenter.Depth = s.HypoDepth
		for _, bin := range rates {
			rup := &seismic.Rupture{
				Magnitude:          bin.Magnitude,
				TectonicRegionType: s.TRT,
				Hypocenter:         hypocenter,
				OccurrenceRate:     bin.Rate,
				TOM:                t,
			}
			if !yield(rup, nil) {
				return
			}
		}
	}
}
