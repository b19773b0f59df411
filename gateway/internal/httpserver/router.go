package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/gateway/internal/middleware"
)

type Deps struct {
	BookURL string
	CartURL string
	UserURL string

	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common() {
		e.Use(m)
	}

	bookProxy, err := newProxy(d.BookURL)
	if err != nil {
		return err
	}
	cartProxy, err := newProxy(d.CartURL)
	if err != nil {
		return err
	}
	userProxy, err := newProxy(d.UserURL)
	if err != nil {
		return err
	}

	auth := middleware.JWT(d.JWTSecret)
	admin := middleware.RequireRole([]string{"admin"})

	// Catalog reads are public; catalog mutations need an admin token.
	e.Match([]string{http.MethodGet}, "/book", bookProxy)
	e.Match([]string{http.MethodGet}, "/book/*", bookProxy)
	e.Match([]string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}, "/book", bookProxy, auth, admin)
	e.Match([]string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}, "/book/*", bookProxy, auth, admin)

	// Cart and order routes act on behalf of a user.
	e.Any("/cart/*", cartProxy, auth)

	e.POST("/user/signup", userProxy)
	e.POST("/user/login", userProxy)
	e.Any("/user/*", userProxy, auth)

	e.Any("/statistics/users", userProxy)
	e.Any("/statistics/orders", cartProxy)
	e.Any("/statistics/orders/*", cartProxy)
	e.Any("/statistics/sales", cartProxy)
	e.Any("/statistics/sales/*", cartProxy)
	e.Any("/statistics/top-books/*", bookProxy)

	return nil
}
