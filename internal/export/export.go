// internal/export/export.go
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lweber/gameshop-backend/internal/apperrors"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", apperrors.Validationf("unsupported export format: %s", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Sink is the output channel an export streams into. The wire-level
// response is adapted into one by the HTTP layer.
type Sink interface {
	io.Writer
	SetHeader(contentType, filename string)
}

// Options tune a single export run. Omit defaults to the identifier and
// timestamp columns when left nil.
type Options struct {
	Omit       []string
	EntityName string
}

var defaultOmit = []string{"id", "created_at", "updated_at", "deleted_at"}

// Export serializes the record set into the sink in the requested format.
// An empty record set is an error: there is nothing meaningful to stream.
func Export[T any](format Format, records []T, opts Options, sink Sink) error {
	if len(records) == 0 {
		return apperrors.NoData()
	}

	omit := opts.Omit
	if omit == nil {
		omit = defaultOmit
	}

	tbl, err := buildTable(records, omit, opts.EntityName)
	if err != nil {
		return apperrors.Internal("failed to build export table", err)
	}

	filename := fmt.Sprintf("%s_export.%s", tbl.Name, format)
	sink.SetHeader(format.ContentType(), filename)

	switch format {
	case FormatCSV:
		return writeCSV(tbl, sink)
	case FormatJSON:
		return writeJSON(tbl, sink)
	case FormatXLSX:
		return writeXLSX(tbl, sink)
	case FormatPDF:
		return writePDF(tbl, sink)
	default:
		return apperrors.Validationf("unsupported export format: %s", format)
	}
}
