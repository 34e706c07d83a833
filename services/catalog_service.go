package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"electronics-store/libs"
	"electronics-store/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	featuredProductsLimit = 8
	relatedProductsLimit  = 4
	catalogCacheTTL       = 5 * time.Minute
	homeCacheKey          = "catalog_home"
	productListKeyPrefix  = "products_list_"
)

type CatalogService struct {
	store  CatalogStore
	cache  *libs.Cache
	logger *zap.Logger
}

func NewCatalogService(store CatalogStore, cache *libs.Cache, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, cache: cache, logger: logger}
}

func (s *CatalogService) Home(ctx context.Context) (*models.HomePage, error) {
	var page models.HomePage
	if s.cache.GetJSON(ctx, homeCacheKey, &page) {
		return &page, nil
	}

	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	featured, err := s.store.GetFeaturedProducts(ctx, featuredProductsLimit)
	if err != nil {
		return nil, err
	}

	page = models.HomePage{Categories: categories, FeaturedProducts: featured}
	s.cachePage(ctx, homeCacheKey, page)
	return &page, nil
}

func (s *CatalogService) CategoryProducts(ctx context.Context, categoryID int) (*models.CategoryPage, error) {
	category, err := s.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetProductsByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &models.CategoryPage{Category: *category, Products: products}, nil
}

func (s *CatalogService) ProductDetail(ctx context.Context, productID int) (*models.ProductPage, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	related, err := s.store.GetRelatedProducts(ctx, product.CategoryID, product.ID, relatedProductsLimit)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{Product: *product, RelatedProducts: related}, nil
}

// ParseProductFilter reads search, category, min_price, max_price, in_stock, low_stock
// and sort. Flags are on when present with any non-empty value; unknown sorts are ignored.
func ParseProductFilter(q url.Values) (models.ProductFilter, error) {
	f := models.ProductFilter{Search: strings.TrimSpace(q.Get("search"))}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return f, models.NewValidationError("category", "must be an integer")
		}
		f.CategoryID = &id
	}

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{{"min_price", &f.MinPrice}, {"max_price", &f.MaxPrice}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return f, models.NewValidationError(p.name, "must be a number")
		}
		*p.dst = &d
	}

	f.InStock = q.Get("in_stock") != ""
	f.LowStock = q.Get("low_stock") != ""

	if sort := models.ProductSort(q.Get("sort")); sort.Valid() {
		f.Sort = sort
	}
	return f, nil
}

func productListKey(f models.ProductFilter) string {
	var b strings.Builder
	b.WriteString(productListKeyPrefix)
	fmt.Fprintf(&b, "s=%q", strings.ToLower(f.Search))
	if f.CategoryID != nil {
		fmt.Fprintf(&b, "|c=%d", *f.CategoryID)
	}
	if f.MinPrice != nil {
		fmt.Fprintf(&b, "|min=%s", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		fmt.Fprintf(&b, "|max=%s", f.MaxPrice.String())
	}
	fmt.Fprintf(&b, "|in=%t|low=%t|sort=%s", f.InStock, f.LowStock, f.Sort)
	return b.String()
}

func (s *CatalogService) ListProducts(ctx context.Context, f models.ProductFilter) (*models.ProductListPage, error) {
	key := productListKey(f)

	var page models.ProductListPage
	if s.cache.GetJSON(ctx, key, &page) {
		return &page, nil
	}

	products, err := s.store.SearchProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	page = models.ProductListPage{Products: products, Categories: categories}
	s.cachePage(ctx, key, page)
	return &page, nil
}

func (s *CatalogService) cachePage(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetJSON(ctx, key, value, catalogCacheTTL); err != nil {
		s.logger.Warn("Failed to cache catalog page", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	for _, pattern := range []string{homeCacheKey, productListKeyPrefix + "*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.Warn("Failed to invalidate catalog cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	cat := &models.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if cat.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if err := s.store.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (*models.Category, error) {
	cat := &models.Category{ID: id, Name: strings.TrimSpace(req.Name), Description: req.Description}
	if cat.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if err := s.store.UpdateCategory(ctx, cat); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return cat, nil
}

func validatePriceStock(price decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return models.NewValidationError("price", "must not be negative")
	}
	if stock < 0 {
		return models.NewValidationError("stock", "must not be negative")
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Price == nil || req.Stock == nil {
		return nil, models.NewValidationError("price", "price and stock are required")
	}
	if err := validatePriceStock(*req.Price, *req.Stock); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       *req.Price,
		Stock:       *req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// UpdateProduct applies the non-nil fields of req.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if _, err := s.store.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if product.Name == "" {
		return nil, models.NewValidationError("name", "is required")
	}
	if err := validatePriceStock(product.Price, product.Stock); err != nil {
		return nil, err
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}
