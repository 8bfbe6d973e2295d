package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"gohaz/adapters/sources"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
)

func writeModelFile(t *testing.T, siteRows, sourceRows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sitesSheet))
	for i, row := range siteRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sitesSheet, cell, &row))
	}

	_, err := f.NewSheet(sourcesSheet)
	require.NoError(t, err)
	for i, row := range sourceRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sourcesSheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "model.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestModelReaderReadSites(t *testing.T) {
	path := writeModelFile(t,
		[][]interface{}{
			{"lon", "lat", "vs30"},
			{2.0, 45.0, 800},
			{2.5, 45.2, 400},
		},
		[][]interface{}{
			{"id", "trt", "lon", "lat", "depth", "a", "b", "mmin", "mmax", "binwidth"},
		},
	)

	sites, err := NewModelReader(path).ReadSites()
	require.NoError(t, err)
	require.Equal(t, 2, sites.Len())
	assert.Equal(t, 2.0, sites.Site(0).Location.Longitude)
	assert.Equal(t, 800.0, sites.Site(0).Vs30)
	assert.Equal(t, 400.0, sites.Site(1).Vs30)
}

func TestModelReaderReadSources(t *testing.T) {
	path := writeModelFile(t,
		[][]interface{}{
			{"lon", "lat", "vs30"},
			{0.0, 0.0, 760},
		},
		[][]interface{}{
			{"id", "trt", "lon", "lat", "depth", "a", "b", "mmin", "mmax", "binwidth"},
			{"src1", "Stable Shallow Crust", 2.2, 45.1, 10, 3.5, 1.0, 5.0, 6.5, 0.5},
		},
	)

	srcs, err := NewModelReader(path).ReadSources()
	require.NoError(t, err)
	require.Len(t, srcs, 1)

	ps, ok := srcs[0].(*sources.PointSource)
	require.True(t, ok)
	assert.Equal(t, "src1", ps.ID)
	assert.Equal(t, seismic.StableContinental, ps.TRT)
	assert.Equal(t, 10.0, ps.HypoDepth)
	assert.Equal(t, 0.5, ps.MFD.BinWidth)
}

func TestModelReaderRejectsMissingColumn(t *testing.T) {
	path := writeModelFile(t,
		[][]interface{}{
			{"lon", "lat"}, // no vs30
			{2.0, 45.0},
		},
		[][]interface{}{
			{"id", "trt", "lon", "lat", "depth", "a", "b", "mmin", "mmax", "binwidth"},
		},
	)

	_, err := NewModelReader(path).ReadSites()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vs30")
}

func TestCurveWriterRoundTrip(t *testing.T) {
	levels := imt.Levels{
		imt.PGA:     {0.1, 0.2},
		imt.SA(0.2): {0.05, 0.1},
	}
	curves := hazard.CurveSet{
		imt.PGA:     mat.NewDense(2, 2, []float64{0.3, 0.1, 0.5, 0.2}),
		imt.SA(0.2): mat.NewDense(2, 2, []float64{0.4, 0.2, 0.6, 0.3}),
	}

	path := filepath.Join(t.TempDir(), "curves.xlsx")
	require.NoError(t, NewCurveWriter(path).Write(levels, curves))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"PGA", "SA 0.2"}, f.GetSheetList())

	rows, err := f.GetRows("PGA")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"site", "0.1", "0.2"}, rows[0])
	assert.Equal(t, []string{"0", "0.3", "0.1"}, rows[1])
	assert.Equal(t, []string{"1", "0.5", "0.2"}, rows[2])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "PGA", sheetName("PGA"))
	assert.Equal(t, "SA 0.2", sheetName("SA(0.2)"))
	assert.Equal(t, "SA 1", sheetName("SA(1)"))
}
