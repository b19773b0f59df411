package models

import "time"

// CartItem is mutable pre-purchase state, unique per (user, book).
type CartItem struct {
	ID        uint      `gorm:"primaryKey"                          json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;not null"  json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;not null"  json:"book_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"          json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPlaced    = "placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// KnownStatus reports whether s is one of the accepted order statuses.
// Any transition between known statuses is allowed.
func KnownStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPlaced, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint        `gorm:"primaryKey"      json:"id"`
	UserID        uint        `gorm:"index;not null"  json:"user_id"`
	Total         float64     `gorm:"not null"        json:"total"`
	Address       string      `gorm:"not null"        json:"address"`
	PaymentMethod string      `gorm:"not null"        json:"payment_method"`
	Status        string      `gorm:"not null"        json:"status"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable purchase receipt line. Price is the line total
// (unit price at checkout time multiplied by quantity), never updated.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	OrderID   uint      `gorm:"index;not null"  json:"order_id"`
	BookID    uint      `gorm:"not null"        json:"book_id"`
	Quantity  uint      `gorm:"not null"        json:"quantity"`
	Price     float64   `gorm:"not null"        json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
