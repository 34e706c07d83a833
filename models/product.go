package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold splits the in_stock and low_stock catalog filters.
const LowStockThreshold = 10

type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProductSort string

const (
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
	SortNewest    ProductSort = "newest"
)

func (s ProductSort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortName, SortNewest:
		return true
	}
	return false
}

// ProductFilter is the parsed form of the /products query string. Nil pointers mean
// "not filtered".
type ProductFilter struct {
	Search     string
	CategoryID *int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool
	LowStock   bool
	Sort       ProductSort
}
