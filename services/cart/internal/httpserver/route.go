package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/metrics"
)

type Deps struct {
	CartHandler *CartHTTP
	Metrics     *metrics.ServerMetrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	cart := e.Group("/cart")
	cart.GET("/getallcartitems/:userId", d.CartHandler.GetCartItems)
	cart.POST("/addcartitem", d.CartHandler.AddCartItem)
	cart.POST("/updatequantity/:id", d.CartHandler.UpdateQuantity)
	cart.POST("/removecartitem/:cartItemId", d.CartHandler.RemoveCartItem)
	cart.POST("/checkout", d.CartHandler.Checkout)
	cart.GET("/getorderinfo/:id", d.CartHandler.GetOrderInfo)
	cart.GET("/getallorders", d.CartHandler.GetAllOrders)
	cart.POST("/updateorder/:id", d.CartHandler.UpdateOrder)
	cart.POST("/updateorderstatus/:id", d.CartHandler.UpdateOrderStatus)

	stats := e.Group("/statistics")
	stats.GET("/orders", d.CartHandler.OrderStats)
	stats.GET("/orders/:year", d.CartHandler.MonthlyOrders)
	stats.GET("/sales", d.CartHandler.SalesStats)
	stats.GET("/sales/:year", d.CartHandler.MonthlySales)
}
