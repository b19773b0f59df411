package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/catalog/internal/models"
	"github.com/satancra/bookstore/services/catalog/internal/repo"
	"github.com/satancra/bookstore/services/catalog/internal/transport"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	// :memory: is per-connection; keep the pool at one so every query sees
	// the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Book{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &CatalogService{Repo: &repo.GormRepo{DB: db}}
}

func TestCatalogService_CreateBook(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, transport.CreateBookRequest{
		Title:        "test_title",
		Author:       "test_author",
		Price:        12.50,
		Stock:        3,
		CategorySlug: "fiction",
	})
	require.NoError(t, err)
	require.NotZero(t, book.ID)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "test_title", got.Title)
	assert.Equal(t, 12.50, got.Price)
}

func TestCatalogService_CreateBook_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateBookRequest
	}{
		{name: "missing title", req: transport.CreateBookRequest{Author: "a", Price: 1}},
		{name: "missing author", req: transport.CreateBookRequest{Title: "t", Price: 1}},
		{name: "negative price", req: transport.CreateBookRequest{Title: "t", Author: "a", Price: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book, err := svc.CreateBook(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, book)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_PatchBook(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, transport.CreateBookRequest{
		Title: "test_title", Author: "test_author", Price: 10,
	})
	require.NoError(t, err)

	newPrice := 15.00
	patched, err := svc.PatchBook(ctx, transport.PatchBookRequest{Price: &newPrice}, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.00, patched.Price)
	assert.Equal(t, "test_title", patched.Title)

	badPrice := -2.00
	_, err = svc.PatchBook(ctx, transport.PatchBookRequest{Price: &badPrice}, book.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_DeleteBook_Missing(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)

	err := svc.DeleteBook(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogService_TopSellingBooks_InvalidPeriod(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)

	res, err := svc.TopSellingBooks(context.Background(), "decade")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_CategoryShelves(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.CreateBook(ctx, transport.CreateBookRequest{
			Title: title, Author: "a", Price: 5, CategorySlug: "fiction",
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateBook(ctx, transport.CreateBookRequest{
		Title: "other", Author: "a", Price: 5, CategorySlug: "science",
	})
	require.NoError(t, err)

	books, err := svc.GetBooksByCategory(ctx, "fiction")
	require.NoError(t, err)
	assert.Len(t, books, 3)

	_, err = svc.GetBooksByCategory(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	total, page, err := svc.GetBooks(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, page, 2)
}
