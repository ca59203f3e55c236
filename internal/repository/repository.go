// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/apperrors"
)

// Repository is the generic CRUD surface over one record type. It is
// stateless between calls; all mutable state lives in the database, so a
// single instance is safe for concurrent use.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction handle so
// multi-entity writes can share one transactional boundary.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// DB exposes the underlying handle for callers that need to open a
// transaction spanning several repositories.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// ListQuery carries take/skip/orderBy/preload options for exact search.
type ListQuery struct {
	Take     int
	Skip     int
	OrderBy  string
	Preloads []string
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return wrapError(entityName[T](), err)
	}
	return nil
}

// CreateAll bulk-inserts a batch in one round trip.
func (r *Repository[T]) CreateAll(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&entities).Error; err != nil {
		return wrapError(entityName[T](), err)
	}
	return nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error) {
	query := r.db.WithContext(ctx)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var entity T
	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(entityName[T]())
		}
		return nil, wrapError(entityName[T](), err)
	}

	return &entity, nil
}

// Find returns the first exact match, or nil without an error when
// nothing matches.
func (r *Repository[T]) Find(ctx context.Context, filter Filter, preloads ...string) (*T, error) {
	query := filter.Apply(r.db.WithContext(ctx))
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var entity T
	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapError(entityName[T](), err)
	}

	return &entity, nil
}

// Search runs an AND-combined exact-match query.
func (r *Repository[T]) Search(ctx context.Context, filter Filter, q ListQuery) ([]T, error) {
	query := filter.Apply(r.db.WithContext(ctx).Model(new(T)))

	if q.OrderBy != "" {
		query = query.Order(q.OrderBy)
	}
	if q.Skip > 0 {
		query = query.Offset(q.Skip)
	}
	if q.Take > 0 {
		query = query.Limit(q.Take)
	}
	for _, preload := range q.Preloads {
		query = query.Preload(preload)
	}

	var entities []T
	if err := query.Find(&entities).Error; err != nil {
		return nil, wrapError(entityName[T](), err)
	}

	return entities, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	query := filter.Apply(r.db.WithContext(ctx).Model(new(T)))
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapError(entityName[T](), err)
	}
	return count, nil
}

func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return wrapError(entityName[T](), result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(entityName[T]())
	}
	return nil
}

func (r *Repository[T]) UpdateMany(ctx context.Context, filter Filter, updates map[string]interface{}) (int64, error) {
	result := filter.Apply(r.db.WithContext(ctx).Model(new(T))).Updates(updates)
	if result.Error != nil {
		return 0, wrapError(entityName[T](), result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return wrapError(entityName[T](), result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(entityName[T]())
	}
	return nil
}

func (r *Repository[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	result := filter.Apply(r.db.WithContext(ctx)).Delete(new(T))
	if result.Error != nil {
		return 0, wrapError(entityName[T](), result.Error)
	}
	return result.RowsAffected, nil
}

// wrapError classifies storage failures once at the boundary; anything
// unrecognised defaults to an internal error.
func wrapError(entity string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint") {
		return apperrors.Conflict(entity+" already exists", err)
	}
	return apperrors.Internal("database error", err)
}

func entityName[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
