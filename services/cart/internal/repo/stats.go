package repo

import (
	"context"
	"time"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

func (r *GormRepo) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) SumSalesBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

// OrdersInYear returns total and creation time of every order of the given
// year; callers bucket them by month.
func (r *GormRepo) OrdersInYear(ctx context.Context, year int) ([]models.Order, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var orders []models.Order
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("total", "created_at").
		Where("created_at >= ? AND created_at < ?", from, to).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
