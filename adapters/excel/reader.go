// Package excel reads hazard input models from xlsx workbooks and exports
// computed hazard curves back out.
package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gohaz/adapters/sources"
	"gohaz/domain/geo"
	"gohaz/domain/seismic"
	"gohaz/domain/site"
	"gohaz/ports"
)

// Sheet names a hazard input workbook is expected to carry
const (
	sitesSheet   = "Sites"
	sourcesSheet = "Sources"
)

// ModelReader reads site collections and point-source catalogs from xlsx
type ModelReader struct {
	filePath string
}

// NewModelReader creates a reader for the given workbook path
func NewModelReader(filePath string) *ModelReader {
	return &ModelReader{filePath: filePath}
}

// ReadSites reads the Sites sheet: header row lon, lat, vs30 and optionally
// z1pt0, z2pt5. Row order becomes collection order.
func (r *ModelReader) ReadSites() (*site.Collection, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sitesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", sitesSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s sheet has no data rows", sitesSheet)
	}

	cols, err := headerIndex(rows[0], "lon", "lat", "vs30")
	if err != nil {
		return nil, fmt.Errorf("%s sheet: %w", sitesSheet, err)
	}

	sites := make([]site.Site, 0, len(rows)-1)
	for i, row := range rows[1:] {
		lon, err := cellFloat(row, cols["lon"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d lon: %w", sitesSheet, i+2, err)
		}
		lat, err := cellFloat(row, cols["lat"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d lat: %w", sitesSheet, i+2, err)
		}
		vs30, err := cellFloat(row, cols["vs30"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d vs30: %w", sitesSheet, i+2, err)
		}
		sites = append(sites, site.NewSite(lon, lat, vs30))
	}
	return site.NewCollection(sites), nil
}

// ReadSources reads the Sources sheet into point sources: header row id, trt,
// lon, lat, depth, a, b, mmin, mmax, binwidth.
func (r *ModelReader) ReadSources() ([]ports.Source, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sourcesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", sourcesSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s sheet has no data rows", sourcesSheet)
	}

	cols, err := headerIndex(rows[0], "id", "trt", "lon", "lat", "depth", "a", "b", "mmin", "mmax", "binwidth")
	if err != nil {
		return nil, fmt.Errorf("%s sheet: %w", sourcesSheet, err)
	}

	out := make([]ports.Source, 0, len(rows)-1)
	for i, row := range rows[1:] {
		id := cellString(row, cols["id"])
		if id == "" {
			return nil, fmt.Errorf("%s row %d: empty source id", sourcesSheet, i+2)
		}
		numeric := make(map[string]float64, 8)
		for _, key := range []string{"lon", "lat", "depth", "a", "b", "mmin", "mmax", "binwidth"} {
			v, err := cellFloat(row, cols[key])
			if err != nil {
				return nil, fmt.Errorf("%s row %d %s: %w", sourcesSheet, i+2, key, err)
			}
			numeric[key] = v
		}
		out = append(out, &sources.PointSource{
			ID:  id,
			TRT: seismic.TectonicRegionType(cellString(row, cols["trt"])),
			Loc: geo.NewPoint(numeric["lon"], numeric["lat"]),
			MFD: seismic.TruncatedGRMFD{
				AValue:   numeric["a"],
				BValue:   numeric["b"],
				MinMag:   numeric["mmin"],
				MaxMag:   numeric["mmax"],
				BinWidth: numeric["binwidth"],
			},
			HypoDepth: numeric["depth"],
		})
	}
	return out, nil
}

// headerIndex maps required lowercase column names to their positions
func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func cellString(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellFloat(row []string, col int) (float64, error) {
	s := cellString(row, col)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(s, 64)
}
