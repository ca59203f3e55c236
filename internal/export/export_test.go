// internal/export/export_test.go
package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lweber/gameshop-backend/internal/apperrors"
	"github.com/lweber/gameshop-backend/internal/models"
)

type bufferSink struct {
	bytes.Buffer
	contentType string
	filename    string
}

func (s *bufferSink) SetHeader(contentType, filename string) {
	s.contentType = contentType
	s.filename = filename
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Title:       "Starfall",
			Description: "An epic journey",
			Genre:       "rpg",
			Category:    "games",
			Price:       29.99,
			Rating:      4.5,
			SupportTag:  models.SupportTagFull,
			ImageURL:    "https://img.example.com/starfall.png",
		},
		{
			Title:       "Skyline \"Deluxe\"",
			Description: "Racing at night",
			Genre:       "racing",
			Category:    "games",
			Price:       19.9,
			Rating:      3.8,
			SupportTag:  models.SupportTagPartial,
			ImageURL:    "https://img.example.com/skyline.png",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"csv", "json", "xlsx", "pdf", "CSV"} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Equal(t, "unsupported export format: xml", err.Error())
	assert.Equal(t, 400, apperrors.StatusOf(err))
}

func TestExportEmptySetFails(t *testing.T) {
	sink := &bufferSink{}
	err := Export(FormatCSV, []models.Product{}, Options{}, sink)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.StatusOf(err))
	assert.Empty(t, sink.contentType)
	assert.Zero(t, sink.Len())
}

func TestExportCSV(t *testing.T) {
	sink := &bufferSink{}
	require.NoError(t, Export(FormatCSV, sampleProducts(), Options{EntityName: "products"}, sink))

	assert.Equal(t, "text/csv", sink.contentType)
	assert.Equal(t, "products_export.csv", sink.filename)

	lines := strings.Split(strings.TrimRight(sink.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"title","description","genre","category","price","rating","support_tag","image_url","tags"`, lines[0])
	// Strings stay quoted, numbers stay bare
	assert.Contains(t, lines[1], `"Starfall"`)
	assert.Contains(t, lines[1], `,29.99,`)
	// Embedded quotes are doubled
	assert.Contains(t, lines[2], `"Skyline ""Deluxe"""`)
}

func TestExportCSVIsDeterministic(t *testing.T) {
	products := sampleProducts()

	first := &bufferSink{}
	second := &bufferSink{}
	require.NoError(t, Export(FormatCSV, products, Options{}, first))
	require.NoError(t, Export(FormatCSV, products, Options{}, second))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExportJSON(t *testing.T) {
	sink := &bufferSink{}
	require.NoError(t, Export(FormatJSON, sampleProducts(), Options{EntityName: "products"}, sink))

	assert.Equal(t, "application/json", sink.contentType)
	assert.Equal(t, "products_export.json", sink.filename)
	assert.True(t, strings.HasPrefix(sink.String(), "[\n  {"), "expected a pretty-printed array")

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(sink.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Starfall", records[0]["title"])
	assert.Equal(t, 29.99, records[0]["price"])
	// Identifier and timestamps are omitted by default
	assert.NotContains(t, records[0], "id")
	assert.NotContains(t, records[0], "created_at")
}

func TestExportJSONIsDeterministic(t *testing.T) {
	products := sampleProducts()

	first := &bufferSink{}
	second := &bufferSink{}
	require.NoError(t, Export(FormatJSON, products, Options{}, first))
	require.NoError(t, Export(FormatJSON, products, Options{}, second))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestExportCustomOmit(t *testing.T) {
	sink := &bufferSink{}
	opts := Options{Omit: []string{"id", "created_at", "updated_at", "deleted_at", "description", "image_url", "tags"}}
	require.NoError(t, Export(FormatCSV, sampleProducts(), opts, sink))

	lines := strings.Split(sink.String(), "\n")
	assert.Equal(t, `"title","genre","category","price","rating","support_tag"`, lines[0])
}

func TestExportXLSX(t *testing.T) {
	sink := &bufferSink{}
	require.NoError(t, Export(FormatXLSX, sampleProducts(), Options{EntityName: "products"}, sink))

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", sink.contentType)
	assert.Equal(t, "products_export.xlsx", sink.filename)
	// XLSX is a zip container
	assert.True(t, bytes.HasPrefix(sink.Bytes(), []byte("PK")), "expected a zip payload")
}

func TestExportPDF(t *testing.T) {
	sink := &bufferSink{}
	require.NoError(t, Export(FormatPDF, sampleProducts(), Options{EntityName: "products"}, sink))

	assert.Equal(t, "application/pdf", sink.contentType)
	assert.Equal(t, "products_export.pdf", sink.filename)
	assert.True(t, bytes.HasPrefix(sink.Bytes(), []byte("%PDF")), "expected a pdf payload")
}

func TestExportPDFWithAllColumns(t *testing.T) {
	// Omitting nothing yields more columns than one pdf row can hold;
	// the writer must degrade instead of failing.
	sink := &bufferSink{}
	require.NoError(t, Export(FormatPDF, sampleProducts(), Options{Omit: []string{}, EntityName: "products"}, sink))

	assert.True(t, bytes.HasPrefix(sink.Bytes(), []byte("%PDF")), "expected a pdf payload")
}

func TestExportOrdersSkipsRelations(t *testing.T) {
	orders := []models.Order{
		{
			CustomerName:  "Ana Weber",
			CustomerEmail: "ana@example.com",
			Code:          "DEMO",
			TotalAmount:   59.98,
			AssignedTo:    "retail",
			Items:         []models.OrderItem{{Quantity: 2}},
		},
	}

	sink := &bufferSink{}
	require.NoError(t, Export(FormatCSV, orders, Options{EntityName: "orders"}, sink))

	header := strings.Split(sink.String(), "\n")[0]
	assert.Contains(t, header, `"customer_name"`)
	assert.Contains(t, header, `"total_amount"`)
	assert.NotContains(t, header, "items")
}
