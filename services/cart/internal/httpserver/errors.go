package httpserver

import (
	"errors"
	"net/http"

	"github.com/satancra/bookstore/pkg/respond"
	"github.com/satancra/bookstore/services/cart/internal/service"
)

func statusAndCode(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, respond.CodeEmptyCart
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, respond.CodeValidation
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, respond.CodeNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, respond.CodeConflict
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, respond.CodeUpstream
	default:
		return http.StatusInternalServerError, respond.CodeInternal
	}
}
