package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItem applies a signed quantity delta to the (user, book) cart row:
// an existing row gets quantity += delta, a missing row is created with the
// delta as quantity. A resulting quantity of zero or less deletes the row.
// Returns the surviving item, or nil when no row remains.
func (r *GormRepo) UpsertItem(ctx context.Context, userID, bookID uint, delta int) (*models.CartItem, error) {
	var item models.CartItem
	removed := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if delta <= 0 {
				removed = true
				return nil
			}
			item = models.CartItem{UserID: userID, BookID: bookID, Quantity: uint(delta)}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}

		quantity := int(item.Quantity) + delta
		if quantity <= 0 {
			removed = true
			return tx.Delete(&item).Error
		}
		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", item.ID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	if removed {
		return nil, nil
	}
	return &item, nil
}

// SetQuantity replaces a cart item's quantity. A final quantity of zero or
// less removes the row instead. Returns the surviving item, or nil when the
// row was removed.
func (r *GormRepo) SetQuantity(ctx context.Context, cartItemID uint, finalQuantity int) (*models.CartItem, error) {
	if finalQuantity <= 0 {
		return nil, r.DeleteItem(ctx, cartItemID)
	}

	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", cartItemID).First(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("quantity", finalQuantity).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartItemID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem is idempotent: deleting an absent id is not an error.
func (r *GormRepo) DeleteItem(ctx context.Context, cartItemID uint) error {
	return r.DB.WithContext(ctx).Delete(&models.CartItem{}, cartItemID).Error
}
