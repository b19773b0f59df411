package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

// PricedLine is one cart line with its checkout-time price already resolved.
type PricedLine struct {
	CartItemID uint
	BookID     uint
	Quantity   uint
	Price      float64
}

// PlaceOrder commits a checkout in one transaction: it re-reads the user's
// cart under a row lock, verifies it still matches the priced lines, creates
// the order with its items, deletes the consumed cart rows and finalizes the
// total from the persisted items. Any mismatch between the priced lines and
// the current cart aborts with ErrCartChanged so the caller can surface a
// retry condition instead of double-consuming the cart.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, address, paymentMethod string, lines []PricedLine) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.CartItem
		if err := lockForUpdate(tx).Where("user_id = ?", userID).Find(&current).Error; err != nil {
			return err
		}

		if len(current) != len(lines) {
			return ErrCartChanged
		}
		byID := make(map[uint]models.CartItem, len(current))
		for _, it := range current {
			byID[it.ID] = it
		}
		for _, line := range lines {
			it, ok := byID[line.CartItemID]
			if !ok || it.BookID != line.BookID || it.Quantity != line.Quantity {
				return ErrCartChanged
			}
		}

		order = models.Order{
			UserID:        userID,
			Total:         0,
			Address:       address,
			PaymentMethod: paymentMethod,
			Status:        models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:  order.ID,
				BookID:   line.BookID,
				Quantity: line.Quantity,
				Price:    line.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		cartIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			cartIDs = append(cartIDs, line.CartItemID)
		}
		if err := tx.Delete(&models.CartItem{}, cartIDs).Error; err != nil {
			return err
		}

		// Total is aggregated from the rows written in this transaction,
		// not from the in-memory running sum.
		var total float64
		if err := tx.Model(&models.OrderItem{}).
			Where("order_id = ?", order.ID).
			Select("COALESCE(SUM(price), 0)").
			Scan(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("total", total).Error; err != nil {
			return err
		}

		order.Total = total
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderInfo(ctx context.Context, orderID uint, address, paymentMethod string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		return tx.Model(&order).Updates(map[string]any{
			"address":        address,
			"payment_method": paymentMethod,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
