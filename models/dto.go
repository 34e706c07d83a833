package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity" form:"quantity"`
}

// PlaceOrderRequest is the checkout form. Field rules live on PlaceOrderInput.
type PlaceOrderRequest struct {
	FullName       string `form:"full_name"`
	PhoneNumber    string `form:"phone_number"`
	City           string `form:"city"`
	Address        string `form:"address"`
	PaymentMethod  string `form:"payment_method"`
	JazzCashNumber string `form:"jazzcash_number"`
}

// Input converts the form into the domain checkout input. A transaction number is only
// carried for wallet payments.
func (r PlaceOrderRequest) Input(proofURL string) PlaceOrderInput {
	input := PlaceOrderInput{
		Shipping: ShippingInfo{
			FullName:    r.FullName,
			PhoneNumber: r.PhoneNumber,
			City:        r.City,
			Address:     r.Address,
		},
		Payment: PaymentDetails{Method: PaymentMethod(strings.TrimSpace(r.PaymentMethod))},
	}
	if number := strings.TrimSpace(r.JazzCashNumber); input.Payment.Method == PaymentJazzCash && number != "" {
		input.Payment.Wallet = &WalletPayment{TransactionNumber: number, ProofURL: proofURL}
	}
	return input
}

type UpdateProfileRequest struct {
	FirstName   string `form:"first_name" binding:"max=150"`
	LastName    string `form:"last_name" binding:"max=150"`
	Email       string `form:"email" binding:"omitempty,email"`
	PhoneNumber string `form:"phone_number" binding:"max=20"`
	Address     string `form:"address" binding:"max=500"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	CategoryID  int              `json:"category_id" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Stock       *int             `json:"stock" binding:"required"`
	ImageURL    string           `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *int             `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"image_url"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}
