package transport

import (
	"github.com/satancra/bookstore/pkg/userclient"
	"github.com/satancra/bookstore/services/cart/internal/models"
)

type AddCartItemRequest struct {
	UserID   uint `json:"userId"`
	BookID   uint `json:"bookId"`
	Quantity int  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	FinalQuantity int `json:"finalQuantity"`
}

type CheckoutRequest struct {
	UserID        uint   `json:"userId"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

type UpdateOrderRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderInfo is an order enriched with purchaser display fields resolved via
// the user service.
type OrderInfo struct {
	models.Order
	Purchaser *Purchaser `json:"purchaser,omitempty"`
}

type Purchaser struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

func NewPurchaser(u *userclient.UserInfo) *Purchaser {
	if u == nil {
		return nil
	}
	return &Purchaser{Username: u.Username, Phone: u.Phone}
}
