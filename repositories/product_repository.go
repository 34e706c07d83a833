package repositories

import (
	"context"
	"fmt"
	"strings"

	"electronics-store/models"

	"github.com/jackc/pgx/v5"
)

const productColumns = `p.id, p.name, p.description, p.category_id, c.name, p.price, p.stock,
	p.image_url, p.created_at, p.updated_at`

const productFrom = ` FROM products p JOIN categories c ON c.id = p.category_id`

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories ORDER BY name`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`

	var cat models.Category
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("category %d", id))
	}
	return &cat, nil
}

func (r *ProductRepository) CreateCategory(ctx context.Context, cat *models.Category) error {
	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`

	err := conn(ctx, r.db).QueryRow(ctx, query, cat.Name, cat.Description).Scan(&cat.ID, &cat.CreatedAt)
	return translate(err, "category")
}

func (r *ProductRepository) UpdateCategory(ctx context.Context, cat *models.Category) error {
	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3 RETURNING created_at`

	err := conn(ctx, r.db).QueryRow(ctx, query, cat.Name, cat.Description, cat.ID).Scan(&cat.CreatedAt)
	return translate(err, fmt.Sprintf("category %d", cat.ID))
}

// GetFeaturedProducts returns the first limit products in catalog order.
func (r *ProductRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + productFrom + ` ORDER BY p.id LIMIT $1`

	rows, err := conn(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) GetProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + productFrom + ` WHERE p.category_id = $1 ORDER BY p.id`

	rows, err := conn(ctx, r.db).Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products of category %d: %w", categoryID, err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) GetRelatedProducts(ctx context.Context, categoryID, excludeID, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + productFrom +
		` WHERE p.category_id = $1 AND p.id <> $2 ORDER BY p.id LIMIT $3`

	rows, err := conn(ctx, r.db).Query(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + productFrom + ` WHERE p.id = $1`

	var p models.Product
	if err := scanProduct(conn(ctx, r.db).QueryRow(ctx, query, id), &p); err != nil {
		return nil, translate(err, fmt.Sprintf("product %d", id))
	}
	return &p, nil
}

// BuildProductQuery renders the filter as a parameterised SELECT.
func BuildProductQuery(f models.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		p := arg("%" + search + "%")
		where = append(where, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", p, p))
	}
	if f.CategoryID != nil {
		where = append(where, "p.category_id = "+arg(*f.CategoryID))
	}
	if f.MinPrice != nil {
		where = append(where, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price <= "+arg(*f.MaxPrice))
	}
	if f.InStock {
		where = append(where, "p.stock > "+arg(models.LowStockThreshold))
	}
	if f.LowStock {
		where = append(where, "p.stock > 0 AND p.stock <= "+arg(models.LowStockThreshold))
	}

	query := `SELECT ` + productColumns + productFrom
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch f.Sort {
	case models.SortPriceAsc:
		query += " ORDER BY p.price ASC, p.id"
	case models.SortPriceDesc:
		query += " ORDER BY p.price DESC, p.id"
	case models.SortName:
		query += " ORDER BY p.name ASC, p.id"
	case models.SortNewest:
		query += " ORDER BY p.created_at DESC, p.id DESC"
	default:
		query += " ORDER BY p.id"
	}
	return query, args
}

func (r *ProductRepository) SearchProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	query, args := BuildProductQuery(f)

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, category_id, price, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		product.Name, product.Description, product.CategoryID, product.Price, product.Stock, product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	return translate(err, "product")
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET name = $1, description = $2, category_id = $3, price = $4,
	          stock = $5, image_url = $6, updated_at = NOW() WHERE id = $7 RETURNING updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.Stock, product.ImageURL, product.ID,
	).Scan(&product.UpdatedAt)
	return translate(err, fmt.Sprintf("product %d", product.ID))
}
