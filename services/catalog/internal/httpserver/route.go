package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satancra/bookstore/pkg/metrics"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	Metrics        *metrics.ServerMetrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	book := e.Group("/book")
	book.GET("", d.CatalogHandler.GetBooks)
	book.GET("/details/:bookId", d.CatalogHandler.GetBookDetails)
	book.GET("/category/:categorySlug", d.CatalogHandler.GetBooksByCategory)
	book.GET("/newarrivals/:categorySlug", d.CatalogHandler.NewArrivals)
	book.GET("/recommendations/:categorySlug", d.CatalogHandler.Recommendations)
	book.GET("/search", d.CatalogHandler.SearchBooks)
	book.POST("", d.CatalogHandler.CreateBook)
	book.PATCH("/:bookId", d.CatalogHandler.PatchBook)
	book.DELETE("/:bookId", d.CatalogHandler.DeleteBook)

	e.GET("/statistics/top-books/:period", d.CatalogHandler.TopSellingBooks)
}
