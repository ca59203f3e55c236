// internal/export/pdf.go
package export

import (
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	pdfMargin    = 10
	headerHeight = 8
	rowHeight    = 6
	headerSize   = 9
	bodySize     = 8
	gridWidth    = 12
)

// writePDF renders the record set as a single table: bold header row,
// regular body rows, A4 page with fixed margins.
func writePDF(tbl *Table, w io.Writer) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(pdfMargin).
		WithTopMargin(pdfMargin).
		WithRightMargin(pdfMargin).
		Build()

	m := maroto.New(cfg)

	// A row is gridWidth units wide; surplus columns are dropped rather
	// than overflowing it.
	columns := tbl.Columns
	if len(columns) > gridWidth {
		columns = columns[:gridWidth]
	}
	colWidth := gridWidth / len(columns)

	header := make([]core.Col, 0, len(columns))
	for _, column := range columns {
		header = append(header, text.NewCol(colWidth, column, props.Text{
			Size:  headerSize,
			Style: fontstyle.Bold,
		}))
	}
	m.AddRow(headerHeight, header...)

	for _, row := range tbl.Rows {
		cols := make([]core.Col, 0, len(columns))
		for _, value := range row[:len(columns)] {
			cell, _ := formatValue(value)
			cols = append(cols, text.NewCol(colWidth, cell, props.Text{
				Size: bodySize,
			}))
		}
		m.AddRow(rowHeight, cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return err
	}

	_, err = w.Write(doc.GetBytes())
	return err
}
