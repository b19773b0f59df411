package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/pkg/userclient"
	"github.com/satancra/bookstore/services/cart/internal/transport"
)

// UserLookup resolves purchaser display fields for order views.
// Implemented by pkg/userclient against the user service.
type UserLookup interface {
	GetUser(ctx context.Context, userID uint) (*userclient.UserInfo, error)
}

func (h *CartHTTP) GetOrderInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_info")

	id, err := parseUint(c.Param("id"))
	if err != nil || id == 0 {
		l.Warn("get_order_info_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("get_order_info_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when get order")
	}

	info := transport.OrderInfo{Order: *order}
	if h.Users != nil {
		// Purchaser fields are display-only: a user-service failure does
		// not fail the order read.
		user, err := h.Users.GetUser(ctx, order.UserID)
		if err != nil {
			l.Warn("get_order_purchaser_failed", "user_id", order.UserID, "error", err)
		} else {
			info.Purchaser = transport.NewPurchaser(user)
		}
	}

	l.Info("get_order_info_success", "order_id", id)
	return respond.OK(c, info)
}

func (h *CartHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_all")

	userID, err := parseUint(c.QueryParam("userId"))
	if err != nil || userID == 0 {
		l.Warn("get_all_orders_error", "status", 400, "reason", "bad user id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "userId must be a positive integer")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("get_all_orders_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when get orders")
	}

	l.Info("get_all_orders_success", "user_id", userID, "count", len(orders))
	return respond.OK(c, orders)
}

func (h *CartHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_info")

	id, err := parseUint(c.Param("id"))
	if err != nil || id == 0 {
		l.Warn("update_order_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	order, err := h.Svc.UpdateOrderInfo(ctx, id, req.Address, req.PaymentMethod)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("update_order_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when update order info")
	}

	l.Info("update_order_success", "order_id", id)
	return respond.OK(c, order)
}

func (h *CartHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseUint(c.Param("id"))
	if err != nil || id == 0 {
		l.Warn("update_order_status_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		status, code := statusAndCode(err)
		l.Error("update_order_status_error", "status", status, "error", err)
		return respond.Error(c, status, code, "error when update order status")
	}

	l.Info("update_order_status_success", "order_id", id, "order_status", order.Status)
	return respond.OK(c, order)
}
