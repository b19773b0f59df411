package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/services/cart/internal/models"
	"github.com/satancra/bookstore/services/cart/internal/repo"
)

// pricingTimeout bounds one price lookup against the catalog service.
// A timeout counts as an upstream failure and aborts the whole checkout.
const pricingTimeout = 3 * time.Second

type CheckoutRequest struct {
	UserID        uint
	Address       string
	PaymentMethod string
}

type CheckoutResult struct {
	OrderID uint    `json:"order_id"`
	Total   float64 `json:"total"`
}

// Checkout converts the user's cart into a priced, persisted order and
// clears the consumed cart rows. Pricing happens before anything is written;
// order creation, order items, cart deletion and the final total are then
// committed in a single transaction, so a failure at any point leaves the
// pre-checkout state intact.
func (s *CartService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if req.UserID == 0 {
		return nil, fmt.Errorf("user_id required: %w", ErrValidation)
	}
	if req.Address == "" || req.PaymentMethod == "" {
		return nil, fmt.Errorf("address and payment_method required: %w", ErrValidation)
	}

	unlock := s.checkouts.Lock(req.UserID)
	defer unlock()

	items, err := s.Repo.GetCart(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]repo.PricedLine, 0, len(items))
	for _, item := range items {
		book, err := s.lookupBook(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, repo.PricedLine{
			CartItemID: item.ID,
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			Price:      book.Price * float64(item.Quantity),
		})
	}

	order, err := s.Repo.PlaceOrder(ctx, req.UserID, req.Address, req.PaymentMethod, lines)
	if errors.Is(err, repo.ErrCartChanged) {
		return nil, fmt.Errorf("%w: cart was modified by a concurrent checkout", ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	s.publishOrderPlaced(ctx, order)

	return &CheckoutResult{OrderID: order.ID, Total: order.Total}, nil
}

// publishOrderPlaced is best-effort: the order is already committed, a
// broker failure only gets logged.
func (s *CartService) publishOrderPlaced(ctx context.Context, order *models.Order) {
	event := map[string]any{
		"type":     "order_placed",
		"event_id": uuid.NewString(),
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
	}
	if err := s.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(order.UserID), event); err != nil {
		logging.FromContext(ctx).Warn("order_placed_publish_failed", "order_id", order.ID, "error", err)
	}
}
