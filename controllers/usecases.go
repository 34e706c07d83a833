package controllers

import (
	"context"

	"electronics-store/models"
)

type CatalogUseCase interface {
	Home(ctx context.Context) (*models.HomePage, error)
	CategoryProducts(ctx context.Context, categoryID int) (*models.CategoryPage, error)
	ProductDetail(ctx context.Context, productID int) (*models.ProductPage, error)
	ListProducts(ctx context.Context, f models.ProductFilter) (*models.ProductListPage, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (*models.Category, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error)
}

type CartUseCase interface {
	AddToCart(ctx context.Context, ident models.Identity, productID int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, ident models.Identity, itemID, quantity int) (bool, error)
	RemoveFromCart(ctx context.Context, ident models.Identity, itemID int) error
	ListCart(ctx context.Context, ident models.Identity) (*models.CartSummary, error)
	Checkout(ctx context.Context, ident models.Identity) (*models.CartSummary, error)
	ListAllCarts(ctx context.Context, page, limit int) (*models.PaginationResponse, error)
}

type OrderUseCase interface {
	ValidateInput(input *models.PlaceOrderInput) error
	PlaceOrder(ctx context.Context, ident models.Identity, input models.PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, ident models.Identity, orderID int) (*models.Order, error)
	ListOrders(ctx context.Context, ident models.Identity) ([]models.Order, error)
}

type OrderAdminUseCase interface {
	ListOrders(ctx context.Context, status string, page, limit int) (*models.PaginationResponse, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, ident models.Identity) error
}

type ProfileUseCase interface {
	GetProfile(ctx context.Context, ident models.Identity) (*models.UserWithProfile, error)
	UpdateProfile(ctx context.Context, ident models.Identity, req models.UpdateProfileRequest, pictureURL string) (*models.UserWithProfile, error)
}
