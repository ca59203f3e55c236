// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page  int    `json:"page"`
	Take  int    `json:"take"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", "20"))
	sort := c.DefaultQuery("sort", "created_at")
	order := c.DefaultQuery("order", "desc")

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if take < 1 || take > 100 {
		take = 20
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PaginationParams{
		Page:  page,
		Take:  take,
		Sort:  sort,
		Order: order,
	}
}

// OrderBy returns a safe ORDER BY clause, falling back to created_at
// when the requested column is not in the allow list.
func (p PaginationParams) OrderBy(allowedSortFields []string) string {
	sortField := "created_at"
	for _, field := range allowedSortFields {
		if field == p.Sort {
			sortField = p.Sort
			break
		}
	}
	return sortField + " " + p.Order
}
