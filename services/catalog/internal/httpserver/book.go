package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/services/catalog/internal/search"
	"github.com/satancra/bookstore/services/catalog/internal/service"
	"github.com/satancra/bookstore/services/catalog/internal/transport"
	"github.com/satancra/bookstore/services/catalog/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
	ES  *elasticsearch.Client
}

func bookID(c echo.Context, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(param), 10, 64)
	return uint(n), err
}

func (h *CatalogHTTP) GetBookDetails(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.details")

	id, err := bookID(c, "bookId")
	if err != nil || id == 0 {
		l.Warn("book_details_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "bookId must be a positive integer")
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("book_details_not_found", "status", 404, "book_id", id)
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Book not found.")
		}
		l.Error("book_details_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to fetch book details.")
	}

	return respond.OK(c, book)
}

func (h *CatalogHTTP) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, books, err := h.Svc.GetBooks(ctx, offset, limit)
	if err != nil {
		l.Error("book_list_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "An error occurred while fetching books.")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    books,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) GetBooksByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.by_category")

	books, err := h.Svc.GetBooksByCategory(ctx, c.Param("categorySlug"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "category slug required")
		}
		l.Error("book_by_category_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to fetch books.")
	}
	return respond.OK(c, books)
}

func (h *CatalogHTTP) NewArrivals(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.new_arrivals")

	books, err := h.Svc.NewArrivals(ctx, c.Param("categorySlug"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "category slug required")
		}
		l.Error("new_arrivals_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to fetch new arrivals.")
	}
	return respond.OK(c, books)
}

func (h *CatalogHTTP) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.recommendations")

	books, err := h.Svc.Recommendations(ctx, c.Param("categorySlug"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "category slug required")
		}
		l.Error("recommendations_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Failed to fetch recommendations.")
	}
	return respond.OK(c, books)
}

func (h *CatalogHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("book_create_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	book, err := h.Svc.CreateBook(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("book_create_error", "status", 400, "error", err)
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		}
		l.Error("book_create_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "cannot add book")
	}

	h.reindex(c, book.ID)

	l.Info("book_create_success", "book_id", book.ID)
	return respond.Created(c, book)
}

func (h *CatalogHTTP) PatchBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.patch")

	id, err := bookID(c, "bookId")
	if err != nil || id == 0 {
		l.Warn("book_patch_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "bookId must be a positive integer")
	}

	var req transport.PatchBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("book_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid body")
	}

	book, err := h.Svc.PatchBook(ctx, req, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("book_patch_not_found", "status", 404, "book_id", id)
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Book not found.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("book_patch_error", "status", 400, "error", err)
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error())
		default:
			l.Error("book_patch_error", "status", 500, "error", err)
			return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "cannot update book")
		}
	}

	h.reindex(c, book.ID)

	l.Info("book_patch_success", "book_id", id)
	return respond.OK(c, book)
}

func (h *CatalogHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.delete")

	id, err := bookID(c, "bookId")
	if err != nil || id == 0 {
		l.Warn("book_delete_error", "status", 400, "reason", "bad id")
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "bookId must be a positive integer")
	}

	if err := h.Svc.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("book_delete_not_found", "status", 404, "book_id", id)
			return respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Book not found.")
		}
		l.Error("book_delete_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "cannot delete book")
	}

	if h.ES != nil {
		if err := search.DeleteBook(ctx, h.ES, id); err != nil {
			l.Warn("book_delete_index_failed", "book_id", id, "error", err)
		}
	}

	l.Info("book_delete_success", "book_id", id)
	return c.JSON(http.StatusOK, respond.Envelope{Success: true, Message: "Book deleted."})
}

func (h *CatalogHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.search")

	q := c.QueryParam("q")
	if q == "" {
		return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "query parameter q required")
	}
	if h.ES == nil {
		return respond.Error(c, http.StatusServiceUnavailable, respond.CodeUpstream, "search is not configured")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, books, err := search.Search(ctx, h.ES, q, offset, limit)
	if err != nil {
		l.Error("book_search_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    books,
		"meta":    map[string]any{"total": total, "page": page, "size": limit},
	})
}

// reindex pushes a book into the search index; index lag is acceptable, so
// failures only get logged.
func (h *CatalogHTTP) reindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		l.Warn("book_reindex_load_failed", "book_id", id, "error", err)
		return
	}
	if err := search.IndexBook(ctx, h.ES, book); err != nil {
		l.Warn("book_reindex_failed", "book_id", id, "error", err)
	}
}

func (h *CatalogHTTP) TopSellingBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.top_books")

	top, err := h.Svc.TopSellingBooks(ctx, c.Param("period"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return respond.Error(c, http.StatusBadRequest, respond.CodeValidation, `Invalid period. Use "week", "month", or "year".`)
		}
		l.Error("top_books_error", "status", 500, "error", err)
		return respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Error fetching top selling books")
	}
	return respond.OK(c, top)
}
