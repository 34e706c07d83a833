package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentJazzCash       PaymentMethod = "jazzcash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentJazzCash
}

type Order struct {
	ID                int             `json:"id"`
	UserID            int             `json:"user_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            OrderStatus     `json:"status"`
	FullName          string          `json:"full_name"`
	PhoneNumber       string          `json:"phone_number"`
	City              string          `json:"city"`
	Address           string          `json:"address"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	JazzCashNumber    *string         `json:"jazzcash_number,omitempty"`
	PaymentScreenshot *string         `json:"payment_screenshot,omitempty"`
	Items             []OrderItem     `json:"items,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ItemsTotal recomputes Σ price × quantity from the snapshotted items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type OrderItem struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingInfo struct {
	FullName    string `validate:"required,max=100"`
	PhoneNumber string `validate:"required,max=20"`
	City        string `validate:"required,max=100"`
	Address     string `validate:"required"`
}

// WalletPayment carries the mobile-wallet transfer details.
type WalletPayment struct {
	TransactionNumber string `validate:"required,max=50"`
	ProofURL          string
}

type PaymentDetails struct {
	Method PaymentMethod `validate:"required,oneof=cod jazzcash"`
	Wallet *WalletPayment
}

type PlaceOrderInput struct {
	Shipping ShippingInfo
	Payment  PaymentDetails
}
