// internal/export/csv.go
package export

import (
	"fmt"
	"io"
	"strings"
)

// writeCSV emits a header row and one row per record. Textual cells are
// always quoted, even when they contain no separator, so spreadsheet
// tools do not coerce codes or phone numbers into numbers on open.
func writeCSV(tbl *Table, w io.Writer) error {
	header := make([]string, len(tbl.Columns))
	for i, column := range tbl.Columns {
		header[i] = quote(column)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return err
	}

	for _, row := range tbl.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			text, isText := formatValue(value)
			if isText {
				cells[i] = quote(text)
			} else {
				cells[i] = text
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, ",")); err != nil {
			return err
		}
	}

	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
