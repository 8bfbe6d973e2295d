package api

import (
	"gohaz/adapters/calc"
	"gohaz/adapters/gsim"
	"gohaz/adapters/sources"
	"gohaz/app"
	apperrors "gohaz/internal/errors"

	"gohaz/domain/geo"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
	"gohaz/ports"
)

// SiteSpec is one site of interest in a calculation request
type SiteSpec struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Vs30 float64 `json:"vs30"`
}

// SourceSpec is one point source in a calculation request
type SourceSpec struct {
	ID        string  `json:"id"`
	TRT       string  `json:"tectonic_region_type"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	HypoDepth float64 `json:"hypo_depth"`
	AValue    float64 `json:"a_value"`
	BValue    float64 `json:"b_value"`
	MinMag    float64 `json:"min_mag"`
	MaxMag    float64 `json:"max_mag"`
	BinWidth  float64 `json:"bin_width"`
}

// CalculationRequest is the JSON body of POST /api/calculations
type CalculationRequest struct {
	Sites   []SiteSpec           `json:"sites"`
	Sources []SourceSpec         `json:"sources"`
	IMLs    map[string][]float64 `json:"imls"`
	GSIMs   map[string]string    `json:"gsims"` // tectonic region type -> model name

	TimeSpan        float64 `json:"time_span"`
	TruncationLevel float64 `json:"truncation_level"`
	CAVMin          float64 `json:"cav_min"`
	MaxDistanceKm   float64 `json:"max_distance_km"` // 0 disables distance filtering
}

// Levels resolves the request's level map, skipping unparseable measures;
// ToInputs performs the strict validation.
func (r *CalculationRequest) Levels() imt.Levels {
	levels := make(imt.Levels, len(r.IMLs))
	for name, lv := range r.IMLs {
		if m, err := imt.Parse(name); err == nil {
			levels[m] = lv
		}
	}
	return levels
}

// ToInputs converts the request into engine inputs
func (r *CalculationRequest) ToInputs() (calc.Inputs, error) {
	if len(r.Sites) == 0 {
		return calc.Inputs{}, apperrors.InvalidInput("at least one site is required")
	}

	siteList := make([]site.Site, len(r.Sites))
	for i, s := range r.Sites {
		siteList[i] = site.NewSite(s.Lon, s.Lat, s.Vs30)
	}

	srcs := make([]ports.Source, len(r.Sources))
	for i, s := range r.Sources {
		srcs[i] = &sources.PointSource{
			ID:  s.ID,
			TRT: seismic.TectonicRegionType(s.TRT),
			Loc: geo.NewPoint(s.Lon, s.Lat),
			MFD: seismic.TruncatedGRMFD{
				AValue:   s.AValue,
				BValue:   s.BValue,
				MinMag:   s.MinMag,
				MaxMag:   s.MaxMag,
				BinWidth: s.BinWidth,
			},
			HypoDepth: s.HypoDepth,
		}
	}

	byTRT := make(map[seismic.TectonicRegionType]string, len(r.GSIMs))
	for trt, name := range r.GSIMs {
		byTRT[seismic.TectonicRegionType(trt)] = name
	}
	registry, err := gsim.BuildRegistry(byTRT)
	if err != nil {
		return calc.Inputs{}, err
	}

	levels := make(imt.Levels, len(r.IMLs))
	for name, lv := range r.IMLs {
		m, err := imt.Parse(name)
		if err != nil {
			return calc.Inputs{}, err
		}
		levels[m] = lv
	}

	in := calc.Inputs{
		Sources:         srcs,
		Sites:           site.NewCollection(siteList),
		Levels:          levels,
		TimeSpan:        r.TimeSpan,
		GSIMs:           registry,
		TruncationLevel: r.TruncationLevel,
		CAVMin:          r.CAVMin,
	}
	if r.MaxDistanceKm > 0 {
		in.SourceSiteFilter = calc.NewSourceSiteDistanceFilter(r.MaxDistanceKm)
		in.RuptureSiteFilter = calc.NewRuptureSiteDistanceFilter(r.MaxDistanceKm)
	}
	return in, nil
}

// CalculationResponse is returned by POST /api/calculations
type CalculationResponse struct {
	Calculation *hazard.Calculation  `json:"calculation"`
	Curves      map[string]CurveData `json:"curves"`
	RuntimeMs   int64                `json:"runtime_ms"`
}

// CurveData is one measure's curves: levels plus per-site probability rows
type CurveData struct {
	Levels []float64   `json:"levels"`
	PoEs   [][]float64 `json:"poes"`
}

// NewCalculationResponse flattens a result into JSON-friendly arrays
func NewCalculationResponse(result *app.CalculationResult, levels imt.Levels) CalculationResponse {
	return CalculationResponse{
		Calculation: result.Calculation,
		Curves:      curveData(levels, result.Curves),
		RuntimeMs:   result.RuntimeMs,
	}
}

// CurvesResponse is returned by GET /api/calculations/{id}/curves
type CurvesResponse struct {
	Curves map[string]CurveData `json:"curves"`
}

// NewCurvesResponse flattens a stored curve set
func NewCurvesResponse(levels imt.Levels, curves hazard.CurveSet) CurvesResponse {
	return CurvesResponse{Curves: curveData(levels, curves)}
}

func curveData(levels imt.Levels, curves hazard.CurveSet) map[string]CurveData {
	out := make(map[string]CurveData, len(curves))
	for m, curve := range curves {
		numSites, numLevels := curve.Dims()
		poes := make([][]float64, numSites)
		for i := 0; i < numSites; i++ {
			row := make([]float64, numLevels)
			copy(row, curve.RawRowView(i))
			poes[i] = row
		}
		out[m.String()] = CurveData{Levels: levels[m], PoEs: poes}
	}
	return out
}
