package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/catalog/internal/models"
	"github.com/satancra/bookstore/services/catalog/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) GetBooks(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var books []models.Book
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&books).Error; err != nil {
		return 0, nil, err
	}

	return total, books, nil
}

func (r *GormRepo) GetBooksByCategory(ctx context.Context, categorySlug string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("id ASC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// NewArrivals mirrors the storefront shelf: newest ten of a category.
func (r *GormRepo) NewArrivals(ctx context.Context, categorySlug string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("created_at DESC").
		Limit(10).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) Recommendations(ctx context.Context, categorySlug string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("id ASC").
		Limit(4).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.DB.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *GormRepo) PatchBook(ctx context.Context, req transport.PatchBookRequest, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		book.ImageURL = *req.ImageURL
	}
	if req.CategorySlug != nil {
		book.CategorySlug = *req.CategorySlug
	}

	if err := r.DB.WithContext(ctx).Save(&book).Error; err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type TopSeller struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	TotalSold int64  `json:"total_sold"`
}

// TopSellingBooks joins the order ledger tables, which share the database in
// the standard deployment, the same way the reporting queries always have.
func (r *GormRepo) TopSellingBooks(ctx context.Context, since time.Time) ([]TopSeller, error) {
	var top []TopSeller
	err := r.DB.WithContext(ctx).Raw(`
		SELECT b.id, b.title, b.author, SUM(oi.quantity) AS total_sold
		FROM books b
		JOIN order_items oi ON b.id = oi.book_id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.created_at >= ?
		GROUP BY b.id, b.title, b.author
		ORDER BY total_sold DESC
		LIMIT 5`, since).Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}
