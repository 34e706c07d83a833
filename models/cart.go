package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal uses the live product price.
func (c CartItem) Subtotal() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type CartSummary struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
