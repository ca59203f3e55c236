// internal/handlers/filter_test.go
package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lweber/gameshop-backend/internal/repository"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestProductSearchFilterFansOut(t *testing.T) {
	filter := productSearchFilter(testContext(t, "search=star"))

	assert.Equal(t, "star", filter.Title)
	assert.Equal(t, "star", filter.Description)
	assert.Equal(t, "star", filter.Genre)
	assert.Equal(t, "star", filter.Category)
}

func TestProductExportFilterStaysExact(t *testing.T) {
	// The export path combines fields with AND, so a fanned-out search
	// term would match nothing; it must only see the explicit fields.
	filter := productFilterFromQuery(testContext(t, "search=star&genre=rpg"))

	assert.Equal(t, repository.ProductFilter{Genre: "rpg"}, filter)
}

func TestOrderFilterFanOutIsFuzzyOnly(t *testing.T) {
	c := testContext(t, "search=ana")

	assert.Equal(t, repository.OrderFilter{}, orderFilterFromQuery(c))

	fuzzy := orderSearchFilter(c)
	assert.Equal(t, "ana", fuzzy.CustomerName)
	assert.Equal(t, "ana", fuzzy.CustomerEmail)
	assert.Equal(t, "ana", fuzzy.Code)
}

func TestAccessCodeFilterFanOutIsFuzzyOnly(t *testing.T) {
	c := testContext(t, "search=summer&assigned_to=campaign")

	assert.Equal(t, repository.AccessCodeFilter{AssignedTo: "campaign"}, accessCodeFilterFromQuery(c))

	fuzzy := accessCodeSearchFilter(c)
	assert.Equal(t, "summer", fuzzy.Code)
	assert.Equal(t, "summer", fuzzy.AssignedTo)
}
