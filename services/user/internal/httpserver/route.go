package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/metrics"
	"github.com/satancra/bookstore/services/user/internal/middleware"
)

type Deps struct {
	UserHandler *UserHTTP
	JWTSecret   []byte
	Metrics     *metrics.ServerMetrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	u := e.Group("/user")
	u.POST("/signup", d.UserHandler.Signup)
	u.POST("/login", d.UserHandler.Login)

	auth := middleware.RequireAuth(d.JWTSecret)
	u.GET("/me", d.UserHandler.Me, auth)
	u.POST("/password", d.UserHandler.ChangePassword, auth)

	// Internal lookup endpoint consumed by the cart service.
	u.GET("/:id", d.UserHandler.GetUserByID)

	e.GET("/statistics/users", d.UserHandler.UserStats)
}
