// internal/repository/repository_test.go
package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.AccessCode{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func seedProduct(t *testing.T, repo *Repository[models.Product], title, genre, category string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:    title,
		Genre:    genre,
		Category: category,
		Price:    price,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestCreateAndGetByID(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	created := seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)
	require.NotEqual(t, created.ID.String(), "00000000-0000-0000-0000-000000000000")
	require.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Starfall", got.Title)
	assert.Equal(t, "rpg", got.Genre)
	assert.Equal(t, 29.99, got.Price)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := New[models.Product](newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFindReturnsNilOnMiss(t *testing.T) {
	repo := New[models.Product](newTestDB(t))

	got, err := repo.Find(context.Background(), ProductFilter{Title: "does-not-exist"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindReturnsFirstMatch(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)

	got, err := repo.Find(context.Background(), ProductFilter{Genre: "rpg"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Starfall", got.Title)
}

func TestSearchCombinesFieldsWithAnd(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)
	seedProduct(t, repo, "Moonrise", "rpg", "dlc", 9.99)
	seedProduct(t, repo, "Skyline", "racing", "games", 19.99)

	results, err := repo.Search(ctx, ProductFilter{Genre: "rpg", Category: "games"}, ListQuery{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Starfall", results[0].Title)
}

func TestCount(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)
	seedProduct(t, repo, "Moonrise", "rpg", "dlc", 9.99)

	count, err := repo.Count(ctx, ProductFilter{Genre: "rpg"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.Count(ctx, None{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	product := seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)

	require.NoError(t, repo.Update(ctx, product.ID, map[string]interface{}{"price": 24.99}))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 24.99, got.Price)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err = repo.GetByID(ctx, product.ID)
	assert.Error(t, err)
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	repo := New[models.Product](newTestDB(t))

	err := repo.Update(context.Background(), uuid.New(), map[string]interface{}{"price": 1.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateManyAndDeleteMany(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)
	seedProduct(t, repo, "Moonrise", "rpg", "dlc", 9.99)
	seedProduct(t, repo, "Skyline", "racing", "games", 19.99)

	affected, err := repo.UpdateMany(ctx, ProductFilter{Genre: "rpg"}, map[string]interface{}{"category": "classics"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	deleted, err := repo.DeleteMany(ctx, ProductFilter{Category: "classics"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := repo.Count(ctx, None{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDuplicateAccessCodeIsConflict(t *testing.T) {
	repo := New[models.AccessCode](newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.AccessCode{Code: "DEMO", AssignedTo: "a"}))

	err := repo.Create(ctx, &models.AccessCode{Code: "DEMO", AssignedTo: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestPaginatedSearchPageUnionEqualsFullSet(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedProduct(t, repo, fmt.Sprintf("Game %d", i), "rpg", "games", float64(i))
	}

	first, err := repo.PaginatedSearch(ctx, ProductFilter{}, PageQuery{Page: 1, Take: 2, OrderBy: "title asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.TotalCount)
	assert.Equal(t, int64(5), first.MatchingCount)
	assert.Equal(t, 3, first.PageCount)
	assert.Equal(t, 1, first.CurrentPage)

	seen := make(map[string]bool)
	for page := 1; page <= first.PageCount; page++ {
		result, err := repo.PaginatedSearch(ctx, ProductFilter{}, PageQuery{Page: page, Take: 2, OrderBy: "title asc"})
		require.NoError(t, err)
		assert.Equal(t, page, result.CurrentPage)
		for _, record := range result.Records {
			assert.False(t, seen[record.Title], "duplicate record %q across pages", record.Title)
			seen[record.Title] = true
		}
	}

	assert.Len(t, seen, 5)
}

func TestPaginatedSearchFuzzyOrAcrossFields(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Star Voyager", "rpg", "games", 29.99)
	seedProduct(t, repo, "Moonrise", "star wars", "dlc", 9.99)
	seedProduct(t, repo, "Skyline", "racing", "games", 19.99)

	// Same term across two fields matches a record hitting either one
	result, err := repo.PaginatedSearch(ctx, ProductFilter{Title: "star", Genre: "star"}, PageQuery{Page: 1, Take: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.MatchingCount)
	assert.Equal(t, int64(3), result.TotalCount)
	assert.Len(t, result.Records, 2)
}

func TestPaginatedSearchClampsPage(t *testing.T) {
	repo := New[models.Product](newTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, "Starfall", "rpg", "games", 29.99)

	result, err := repo.PaginatedSearch(ctx, ProductFilter{}, PageQuery{Page: -3, Take: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Len(t, result.Records, 1)
}
