package repositories

import (
	"context"
	"fmt"

	"electronics-store/models"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, user_id, total_amount, status, full_name, phone_number, city, address,
	payment_method, jazzcash_number, payment_screenshot, created_at, updated_at`

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.FullName, &o.PhoneNumber,
		&o.City, &o.Address, &o.PaymentMethod, &o.JazzCashNumber, &o.PaymentScreenshot,
		&o.CreatedAt, &o.UpdatedAt)
}

// Create inserts the order row with every payment field set, then its items. Callers run
// it inside a transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	db := conn(ctx, r.db)

	query := `
		INSERT INTO orders (user_id, total_amount, status, full_name, phone_number, city, address,
		                    payment_method, jazzcash_number, payment_screenshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(ctx, query,
		order.UserID, order.TotalAmount, order.Status, order.FullName, order.PhoneNumber,
		order.City, order.Address, order.PaymentMethod, order.JazzCashNumber, order.PaymentScreenshot,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return translate(err, "order")
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := db.QueryRow(ctx, itemQuery,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price,
		).Scan(&item.ID); err != nil {
			return translate(err, fmt.Sprintf("order item for product %d", item.ProductID))
		}
	}
	return nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, price
		 FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return err
		}
		o := &orders[index[item.OrderID]]
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int) (*models.Order, error) {
	orders, err := r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, models.NotFoundf("order %d", id)
	}
	return &orders[0], nil
}

func (r *OrderRepository) FindForUser(ctx context.Context, userID, id int) (*models.Order, error) {
	orders, err := r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, models.NotFoundf("order %d", id)
	}
	return &orders[0], nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// ListAll pages through every order, optionally narrowed to one status.
func (r *OrderRepository) ListAll(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	orders, err := r.queryOrders(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus moves the order from one status to another only if it still holds from.
// It reports false when the row was not in the expected state.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, from, to models.OrderStatus) (bool, error) {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update order %d status: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}
