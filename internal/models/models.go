package models

import (
	"github.com/shopspring/decimal"
)

type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	AvgRating   float64         `json:"avgRating"`
	Category    *Category       `json:"category,omitempty"`
}

type CartItem struct {
	ID      int64    `json:"id"`
	Product *Product `json:"product"`
	Qty     int      `json:"qty"`
}

type WishlistItem struct {
	ID      int64    `json:"id"`
	Product *Product `json:"product"`
}

type Order struct {
	ID     int64           `json:"id"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Items  []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID      int64           `json:"id"`
	Product *Product        `json:"product"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `json:"price"`
}

type Review struct {
	ID      int64    `json:"id"`
	Product *Product `json:"product"`
	User    *User    `json:"user"`
	Rating  int      `json:"rating"`
	Comment string   `json:"comment"`
	// The service serializes timestamps as zone-less LocalDateTime
	// strings, which time.Time refuses; kept opaque for display.
	CreatedAt string `json:"createdAt,omitempty"`
}

const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusPaid           = "PAID"
)
