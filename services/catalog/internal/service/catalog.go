package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satancra/bookstore/services/catalog/internal/models"
	"github.com/satancra/bookstore/services/catalog/internal/repo"
	"github.com/satancra/bookstore/services/catalog/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return s.Repo.GetBook(ctx, id)
}

func (s *CatalogService) GetBooks(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	return s.Repo.GetBooks(ctx, offset, limit)
}

func (s *CatalogService) GetBooksByCategory(ctx context.Context, categorySlug string) ([]models.Book, error) {
	if categorySlug == "" {
		return nil, fmt.Errorf("category slug required: %w", ErrValidation)
	}
	return s.Repo.GetBooksByCategory(ctx, categorySlug)
}

func (s *CatalogService) NewArrivals(ctx context.Context, categorySlug string) ([]models.Book, error) {
	if categorySlug == "" {
		return nil, fmt.Errorf("category slug required: %w", ErrValidation)
	}
	return s.Repo.NewArrivals(ctx, categorySlug)
}

func (s *CatalogService) Recommendations(ctx context.Context, categorySlug string) ([]models.Book, error) {
	if categorySlug == "" {
		return nil, fmt.Errorf("category slug required: %w", ErrValidation)
	}
	return s.Repo.Recommendations(ctx, categorySlug)
}

func (s *CatalogService) CreateBook(ctx context.Context, req transport.CreateBookRequest) (*models.Book, error) {
	if req.Title == "" || req.Author == "" {
		return nil, fmt.Errorf("title and author required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}

	book := &models.Book{
		Title:        req.Title,
		Author:       req.Author,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		CategorySlug: req.CategorySlug,
	}
	return s.Repo.CreateBook(ctx, book)
}

func (s *CatalogService) PatchBook(ctx context.Context, req transport.PatchBookRequest, id uint) (*models.Book, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	return s.Repo.PatchBook(ctx, req, id)
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	return s.Repo.DeleteBook(ctx, id)
}

// TopSellingBooks resolves the reporting window for week/month/year periods.
func (s *CatalogService) TopSellingBooks(ctx context.Context, period string) ([]repo.TopSeller, error) {
	now := time.Now().UTC()

	var since time.Time
	switch period {
	case "week":
		since = now.Add(-7 * 24 * time.Hour)
	case "month":
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "year":
		since = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil, fmt.Errorf("invalid period %q, use week, month or year: %w", period, ErrValidation)
	}

	return s.Repo.TopSellingBooks(ctx, since)
}
