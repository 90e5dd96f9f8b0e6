package xlsexport

import "github.com/xuri/excelize/v2"

const fontFamily = "Arial"

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// writeHeader writes a bold header line below row and returns its row number.
func writeHeader(f *excelize.File, sheet string, row int, headers []string, widths []float64) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return row, err
	}
	if err = styleRange(f, sheet, 1, row, len(headers), row, style); err != nil {
		return row, err
	}
	for idx, value := range headers {
		colName, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return row, err
		}
		width := 25.0
		if idx < len(widths) {
			width = widths[idx]
		}
		if err = f.SetColWidth(sheet, colName, colName, width); err != nil {
			return row, err
		}
		if err = writeCell(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	})
	if err != nil {
		return err
	}
	return styleRange(f, sheet, colFrom, rowFrom, colTo, rowTo, style)
}

func styleRange(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo, style int) error {
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
