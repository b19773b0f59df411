package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/respond"
)

func (h *CartHTTP) OrderStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.orders")

	stats, err := h.Svc.OrderStats(ctx)
	if err != nil {
		l.Error("order_stats_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "error fetching order statistics")
	}
	return respond.OK(c, stats)
}

func (h *CartHTTP) SalesStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.sales")

	stats, err := h.Svc.SalesStats(ctx)
	if err != nil {
		l.Error("sales_stats_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "error fetching sales statistics")
	}
	return respond.OK(c, stats)
}

func yearParam(c echo.Context) int {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		return time.Now().UTC().Year()
	}
	return year
}

func (h *CartHTTP) MonthlySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.monthly_sales")

	year := yearParam(c)
	sales, err := h.Svc.MonthlySales(ctx, year)
	if err != nil {
		l.Error("monthly_sales_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "error fetching monthly sales statistics")
	}

	return respond.OK(c, map[string]any{"year": year, "monthly_sales": sales})
}

func (h *CartHTTP) MonthlyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.monthly_orders")

	year := yearParam(c)
	counts, err := h.Svc.MonthlyOrders(ctx, year)
	if err != nil {
		l.Error("monthly_orders_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "error fetching monthly order statistics")
	}

	return respond.OK(c, map[string]any{"year": year, "monthly_orders": counts})
}
