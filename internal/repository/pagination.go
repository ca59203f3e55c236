// internal/repository/pagination.go
package repository

import (
	"context"
	"math"
)

const defaultPageSize = 20

// PageQuery drives the fuzzy paginated search.
type PageQuery struct {
	Page     int
	Take     int
	OrderBy  string
	Preloads []string
}

// Normalize clamps out-of-range values so page math stays consistent.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Take < 1 {
		q.Take = defaultPageSize
	}
	return q
}

type PageResult[T any] struct {
	Records       []T   `json:"records"`
	MatchingCount int64 `json:"matching_count"`
	TotalCount    int64 `json:"total_count"`
	PageCount     int   `json:"page_count"`
	CurrentPage   int   `json:"current_page"`
}

// PaginatedSearch runs an OR-combined substring search across the
// filter's supplied fields; an empty filter matches everything. Offset
// windowing has no snapshot isolation: concurrent writes between page
// fetches can duplicate or skip rows.
func (r *Repository[T]) PaginatedSearch(ctx context.Context, filter Filter, q PageQuery) (*PageResult[T], error) {
	q = q.Normalize()
	skip := (q.Page - 1) * q.Take

	var totalCount int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&totalCount).Error; err != nil {
		return nil, wrapError(entityName[T](), err)
	}

	var matchingCount int64
	if err := filter.ApplyFuzzy(r.db.WithContext(ctx).Model(new(T))).Count(&matchingCount).Error; err != nil {
		return nil, wrapError(entityName[T](), err)
	}

	query := filter.ApplyFuzzy(r.db.WithContext(ctx).Model(new(T)))
	if q.OrderBy != "" {
		query = query.Order(q.OrderBy)
	}
	query = query.Offset(skip).Limit(q.Take)
	for _, preload := range q.Preloads {
		query = query.Preload(preload)
	}

	var records []T
	if err := query.Find(&records).Error; err != nil {
		return nil, wrapError(entityName[T](), err)
	}

	return &PageResult[T]{
		Records:       records,
		MatchingCount: matchingCount,
		TotalCount:    totalCount,
		PageCount:     int(math.Ceil(float64(totalCount) / float64(q.Take))),
		CurrentPage:   skip/q.Take + 1,
	}, nil
}
