// internal/export/xlsx.go
package export

import (
	"io"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeXLSX renders one sheet named after the entity: header row, then
// one row per record with uncoerced cell values.
func writeXLSX(tbl *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := tbl.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, column := range tbl.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return err
		}
	}

	for rowIdx, row := range tbl.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// cellValue keeps primitives as-is so excelize stores real numbers and
// dates; everything else goes in as text.
func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case string, bool, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}

	text, _ := formatValue(v)
	return text
}
