package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/services/cart/internal/models"
)

func (s *CartService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order id required: %w", ErrValidation)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return order, err
}

func (s *CartService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id required: %w", ErrValidation)
	}
	return s.Repo.ListOrders(ctx, userID)
}

func (s *CartService) UpdateOrderInfo(ctx context.Context, orderID uint, address, paymentMethod string) (*models.Order, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order id required: %w", ErrValidation)
	}
	if address == "" || paymentMethod == "" {
		return nil, fmt.Errorf("address and payment_method required: %w", ErrValidation)
	}

	order, err := s.Repo.UpdateOrderInfo(ctx, orderID, address, paymentMethod)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return order, err
}

func (s *CartService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order id required: %w", ErrValidation)
	}
	if !models.KnownStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return order, err
}
