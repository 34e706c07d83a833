package repositories

import (
	"context"
	"fmt"

	"electronics-store/models"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db DBTX
}

func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{db: db}
}

// AddOrIncrement creates the (user, product) entry with quantity 1 or bumps the existing
// one by 1 in a single statement.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID int) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = NOW()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`
	item := &models.CartItem{}
	err := conn(ctx, r.db).QueryRow(ctx, query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("product %d", productID))
	}
	return item, nil
}

const cartItemSelect = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
	       p.id, p.name, p.description, p.category_id, c.name, p.price, p.stock,
	       p.image_url, p.created_at, p.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	JOIN categories c ON c.id = p.category_id
`

func scanCartItem(row pgx.Row) (models.CartItem, error) {
	var (
		item models.CartItem
		p    models.Product
	)
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName, &p.Price, &p.Stock,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	item.Product = &p
	return item, err
}

func (r *CartRepository) listWhere(ctx context.Context, suffix string, args ...any) ([]models.CartItem, error) {
	rows, err := conn(ctx, r.db).Query(ctx, cartItemSelect+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]models.CartItem, error) {
	return r.listWhere(ctx, ` WHERE ci.user_id = $1 ORDER BY ci.id`, userID)
}

// ListByUserForUpdate locks the user's cart rows until the surrounding transaction ends.
func (r *CartRepository) ListByUserForUpdate(ctx context.Context, userID int) ([]models.CartItem, error) {
	return r.listWhere(ctx, ` WHERE ci.user_id = $1 ORDER BY ci.id FOR UPDATE OF ci`, userID)
}

func (r *CartRepository) ListAll(ctx context.Context, limit, offset int) ([]models.CartItem, int, error) {
	var total int
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM cart_items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cart items: %w", err)
	}

	items, err := r.listWhere(ctx, ` ORDER BY ci.created_at DESC, ci.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CartRepository) FindForUser(ctx context.Context, userID, itemID int) (*models.CartItem, error) {
	rows, err := r.listWhere(ctx, ` WHERE ci.id = $1 AND ci.user_id = $2`, itemID, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NotFoundf("cart item %d", itemID)
	}
	return &rows[0], nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, itemID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`

	tag, err := conn(ctx, r.db).Exec(ctx, query, quantity, itemID, userID)
	if err != nil {
		return translate(err, fmt.Sprintf("cart item %d", itemID))
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundf("cart item %d", itemID)
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, itemID int) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundf("cart item %d", itemID)
	}
	return nil
}

// DeleteItems removes exactly the given entries of the user and reports how many went.
func (r *CartRepository) DeleteItems(ctx context.Context, userID int, itemIDs []int) (int64, error) {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`, userID, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}
