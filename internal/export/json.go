// internal/export/json.go
package export

import (
	"encoding/json"
	"io"
)

// writeJSON emits a pretty-printed array of records restricted to the
// table's columns.
func writeJSON(tbl *Table, w io.Writer) error {
	records := make([]map[string]interface{}, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		record := make(map[string]interface{}, len(tbl.Columns))
		for i, column := range tbl.Columns {
			record[column] = row[i]
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
