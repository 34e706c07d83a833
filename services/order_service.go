package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"electronics-store/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var errCartChanged = errors.New("cart changed during checkout")

type OrderService struct {
	tx        Transactor
	carts     CartStore
	orders    OrderStore
	observers []OrderObserver
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewOrderService(tx Transactor, carts CartStore, orders OrderStore, logger *zap.Logger, observers ...OrderObserver) *OrderService {
	return &OrderService{
		tx:        tx,
		carts:     carts,
		orders:    orders,
		observers: observers,
		validate:  validator.New(),
		logger:    logger,
	}
}

// BuildOrder turns cart entries into an unsaved pending order. Item prices are copied
// from the live products, and the total is their Σ price × quantity.
func BuildOrder(userID int, entries []models.CartItem, input models.PlaceOrderInput) (*models.Order, error) {
	if len(entries) == 0 {
		return nil, models.ErrEmptyCart
	}

	order := &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusPending,
		FullName:      input.Shipping.FullName,
		PhoneNumber:   input.Shipping.PhoneNumber,
		City:          input.Shipping.City,
		Address:       input.Shipping.Address,
		PaymentMethod: input.Payment.Method,
		Items:         make([]models.OrderItem, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.Product == nil {
			return nil, fmt.Errorf("cart item %d has no product loaded", entry.ID)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   entry.Product.ID,
			ProductName: entry.Product.Name,
			Quantity:    entry.Quantity,
			Price:       entry.Product.Price,
		})
	}
	order.TotalAmount = order.ItemsTotal()

	if input.Payment.Method == models.PaymentJazzCash && input.Payment.Wallet != nil {
		number := input.Payment.Wallet.TransactionNumber
		order.JazzCashNumber = &number
		if proof := input.Payment.Wallet.ProofURL; proof != "" {
			order.PaymentScreenshot = &proof
		}
	}
	return order, nil
}

// ValidateInput checks shipping and payment details before any store is touched. Wallet
// details are dropped for cash on delivery.
func (s *OrderService) ValidateInput(input *models.PlaceOrderInput) error {
	input.Shipping.FullName = strings.TrimSpace(input.Shipping.FullName)
	input.Shipping.PhoneNumber = strings.TrimSpace(input.Shipping.PhoneNumber)
	input.Shipping.City = strings.TrimSpace(input.Shipping.City)
	input.Shipping.Address = strings.TrimSpace(input.Shipping.Address)

	if err := s.validate.Struct(input); err != nil {
		verr := validationError(err)
		var v *models.ValidationError
		if errors.As(verr, &v) && v.Field == "transaction_number" {
			v.Field = "jazzcash_number"
		}
		return verr
	}

	switch input.Payment.Method {
	case models.PaymentJazzCash:
		if input.Payment.Wallet == nil {
			return models.NewValidationError("jazzcash_number", "is required for JazzCash payments")
		}
	case models.PaymentCashOnDelivery:
		input.Payment.Wallet = nil
	}
	return nil
}

// PlaceOrder converts the caller's cart into an order. Locking the cart, writing the
// order with its items and clearing the ordered entries happen in one transaction, so
// any failure leaves the cart as it was and no order behind.
func (s *OrderService) PlaceOrder(ctx context.Context, ident models.Identity, input models.PlaceOrderInput) (*models.Order, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}
	if err := s.ValidateInput(&input); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entries, err := s.carts.ListByUserForUpdate(ctx, ident.UserID)
		if err != nil {
			return err
		}

		built, err := BuildOrder(ident.UserID, entries, input)
		if err != nil {
			return err
		}

		if err := s.orders.Create(ctx, built); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		ids := make([]int, len(entries))
		for i, entry := range entries {
			ids[i] = entry.ID
		}
		removed, err := s.carts.DeleteItems(ctx, ident.UserID, ids)
		if err != nil {
			return err
		}
		if removed != int64(len(ids)) {
			return errCartChanged
		}

		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", ident.UserID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Int("items", len(order.Items)))

	s.notify(context.WithoutCancel(ctx), ident, order)
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, ident models.Identity, order *models.Order) {
	for _, o := range s.observers {
		if err := o.OrderPlaced(ctx, ident, order); err != nil {
			s.logger.Warn("Order observer failed",
				zap.String("observer", fmt.Sprintf("%T", o)),
				zap.Int("order_id", order.ID),
				zap.Error(err))
		}
	}
}

func (s *OrderService) GetOrder(ctx context.Context, ident models.Identity, orderID int) (*models.Order, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}
	return s.orders.FindForUser(ctx, ident.UserID, orderID)
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, ident models.Identity) ([]models.Order, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, ident.UserID)
}
