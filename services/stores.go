package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"electronics-store/models"

	"github.com/go-playground/validator/v10"
)

// Transactor runs fn atomically. Stores called with the ctx handed to fn join the
// transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CatalogStore interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
	CreateCategory(ctx context.Context, cat *models.Category) error
	UpdateCategory(ctx context.Context, cat *models.Category) error
	GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	GetRelatedProducts(ctx context.Context, categoryID, excludeID, limit int) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	SearchProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
}

type CartStore interface {
	AddOrIncrement(ctx context.Context, userID, productID int) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID int) ([]models.CartItem, error)
	ListByUserForUpdate(ctx context.Context, userID int) ([]models.CartItem, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.CartItem, int, error)
	FindForUser(ctx context.Context, userID, itemID int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID, quantity int) error
	Delete(ctx context.Context, userID, itemID int) error
	DeleteItems(ctx context.Context, userID int, itemIDs []int) (int64, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int) (*models.Order, error)
	FindForUser(ctx context.Context, userID, id int) (*models.Order, error)
	ListByUser(ctx context.Context, userID int) ([]models.Order, error)
	ListAll(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id int, from, to models.OrderStatus) (bool, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateNames(ctx context.Context, user *models.User) error
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
	GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error)
}

// OrderObserver is told about every committed order.
type OrderObserver interface {
	OrderPlaced(ctx context.Context, ident models.Identity, order *models.Order) error
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

func requireUser(ident models.Identity) error {
	if ident.UserID <= 0 {
		return models.ErrUnauthorized
	}
	return nil
}

func normalizePage(page, limit, defaultLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

func paginationMeta(page, limit, total int) models.PaginationMeta {
	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// validationError converts the first validator failure into a ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return models.NewValidationError(field, "is required")
	case "max":
		return models.NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "oneof":
		return models.NewValidationError(field, fmt.Sprintf("must be one of: %s", fe.Param()))
	}
	return models.NewValidationError(field, fmt.Sprintf("failed %q check", fe.Tag()))
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
