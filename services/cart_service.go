package services

import (
	"context"

	"electronics-store/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService struct {
	carts    CartStore
	products CatalogStore
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products CatalogStore, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// CartTotal sums live price × quantity over the entries.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AddToCart puts one more unit of the product into the caller's cart. Stock is not
// checked here.
func (s *CartService) AddToCart(ctx context.Context, ident models.Identity, productID int) (*models.CartItem, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, err := s.carts.AddOrIncrement(ctx, ident.UserID, product.ID)
	if err != nil {
		return nil, err
	}
	item.Product = product

	s.logger.Debug("cart item added",
		zap.Int("user_id", ident.UserID),
		zap.Int("product_id", productID),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateQuantity sets the entry's quantity, or deletes the entry when quantity <= 0.
// It reports whether the entry was removed.
func (s *CartService) UpdateQuantity(ctx context.Context, ident models.Identity, itemID, quantity int) (bool, error) {
	if err := requireUser(ident); err != nil {
		return false, err
	}

	if quantity <= 0 {
		if err := s.carts.Delete(ctx, ident.UserID, itemID); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := s.carts.SetQuantity(ctx, ident.UserID, itemID, quantity); err != nil {
		return false, err
	}
	return false, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, ident models.Identity, itemID int) error {
	if err := requireUser(ident); err != nil {
		return err
	}
	return s.carts.Delete(ctx, ident.UserID, itemID)
}

func (s *CartService) ListCart(ctx context.Context, ident models.Identity) (*models.CartSummary, error) {
	if err := requireUser(ident); err != nil {
		return nil, err
	}

	items, err := s.carts.ListByUser(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	return &models.CartSummary{Items: items, Total: CartTotal(items)}, nil
}

// Checkout is the pre-order review of the cart. It fails with ErrEmptyCart when there
// is nothing to order.
func (s *CartService) Checkout(ctx context.Context, ident models.Identity) (*models.CartSummary, error) {
	summary, err := s.ListCart(ctx, ident)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, models.ErrEmptyCart
	}
	return summary, nil
}

func (s *CartService) ListAllCarts(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	page, limit, offset := normalizePage(page, limit, 20)

	items, total, err := s.carts.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Cart items retrieved successfully",
		Data:    items,
		Meta:    paginationMeta(page, limit, total),
	}, nil
}
