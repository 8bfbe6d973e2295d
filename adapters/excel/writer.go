package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"gohaz/domain/hazard"
	"gohaz/domain/imt"
)

// CurveWriter exports a computed curve set to an xlsx workbook: one sheet per
// intensity measure, one row per site, one column per level.
type CurveWriter struct {
	filePath string
}

// NewCurveWriter creates a writer targeting the given path
func NewCurveWriter(filePath string) *CurveWriter {
	return &CurveWriter{filePath: filePath}
}

// Write saves the workbook. Sheets are emitted in sorted measure order so
// repeated exports of the same result are identical.
func (w *CurveWriter) Write(levels imt.Levels, curves hazard.CurveSet) error {
	f := excelize.NewFile()
	defer f.Close()

	measures := make([]string, 0, len(curves))
	for m := range curves {
		measures = append(measures, m.String())
	}
	sort.Strings(measures)

	for sheetIndex, name := range measures {
		m := imt.IMT(name)
		curve := curves[m]
		lv := levels[m]

		// Sheet names may not contain some xlsx-reserved characters
		sheet := sheetName(name)
		if sheetIndex == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		header := make([]interface{}, 0, len(lv)+1)
		header = append(header, "site")
		for _, level := range lv {
			header = append(header, level)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", sheet, err)
		}

		numSites, numLevels := curve.Dims()
		for i := 0; i < numSites; i++ {
			row := make([]interface{}, 0, numLevels+1)
			row = append(row, i)
			for j := 0; j < numLevels; j++ {
				row = append(row, curve.At(i, j))
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address row %d of %s: %w", i+2, sheet, err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
			}
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("failed to save curve workbook: %w", err)
	}
	return nil
}

// sheetName strips the characters excelize rejects in sheet names
func sheetName(measure string) string {
	out := make([]rune, 0, len(measure))
	for _, r := range measure {
		switch r {
		case '(', ')':
			out = append(out, ' ')
		case ':', '\\', '/', '?', '*', '[', ']':
		default:
			out = append(out, r)
		}
	}
	return strings.TrimSpace(string(out))
}
