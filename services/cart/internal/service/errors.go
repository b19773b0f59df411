package service

import "errors"

var (
	ErrValidation = errors.New("validation")           // 400
	ErrEmptyCart  = errors.New("cart is empty")        // 400
	ErrNotFound   = errors.New("not found")            // 404
	ErrConflict   = errors.New("conflict")             // 409
	ErrUpstream   = errors.New("upstream unavailable") // 502
)
