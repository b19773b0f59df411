package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/services/cart/internal/service"
	"github.com/satancra/bookstore/services/cart/internal/transport"
)

type CartHTTP struct {
	Svc   *service.CartService
	Users UserLookup
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	return uint(n), err
}

func (h *CartHTTP) GetCartItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_items")

	userID, err := parseUint(c.Param("userId"))
	if err != nil || userID == 0 {
		l.Warn("get_cart_error", "status", 400, "reason", "bad user id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "userId must be a positive integer")
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("get_cart_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when get cart items")
	}

	l.Info("get_cart_success", "count", len(items))
	return respond.OK(c, items)
}

func (h *CartHTTP) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_cart_item_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}
	if req.UserID == 0 || req.BookID == 0 || req.Quantity == 0 {
		l.Warn("add_cart_item_error", "status", 400, "reason", "missing fields")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "userId, bookId and quantity required")
	}

	line, err := h.Svc.AddToCart(ctx, req.UserID, req.BookID, req.Quantity)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("add_cart_item_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when add to cart")
	}
	if line == nil {
		l.Info("add_cart_item_removed", "book_id", req.BookID)
		return c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "Cart item removed"})
	}

	l.Info("add_cart_item_success", "book_id", req.BookID, "quantity", line.Quantity)
	return respond.OK(c, line)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	id, err := parseUint(c.Param("id"))
	if err != nil || id == 0 {
		l.Warn("update_quantity_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer")
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	item, err := h.Svc.UpdateQuantity(ctx, id, req.FinalQuantity)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("update_quantity_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when update cart item quantity")
	}
	if item == nil {
		l.Info("update_quantity_removed", "cart_item_id", id)
		return c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "Cart item removed"})
	}

	l.Info("update_quantity_success", "cart_item_id", id, "quantity", item.Quantity)
	return respond.OK(c, item)
}

func (h *CartHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseUint(c.Param("cartItemId"))
	if err != nil || id == 0 {
		l.Warn("remove_cart_item_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "cartItemId must be a positive integer")
	}

	if err := h.Svc.RemoveItem(ctx, id); err != nil {
		status, code := statusAndCode(err)
		l.Error("remove_cart_item_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when delete cart item")
	}

	l.Info("remove_cart_item_success", "cart_item_id", id)
	return c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "Cart item deleted"})
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	result, err := h.Svc.Checkout(ctx, service.CheckoutRequest{
		UserID:        req.UserID,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("checkout_error", "status", status, "user_id", req.UserID, "error", err)
		return respond.Error(c, status, code, "error when create new order")
	}

	l.Info("checkout_success", "user_id", req.UserID, "order_id", result.OrderID, "total", result.Total)
	return respond.Created(c, result)
}
