package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/mealmoment/internal/db"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

type Repository interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]Order, error)
	GetForUser(ctx context.Context, id, userID string) (*Order, error)
	ListAll(ctx context.Context, f ListFilter) ([]Order, error)
	History(ctx context.Context, id string) ([]StatusChange, error)
	// UpdateStatus moves the order to status and returns the previous one.
	UpdateStatus(ctx context.Context, id string, to Status, changedBy string) (Status, error)
}

type PGRepo struct{ db db.DB }

func NewPGRepo(db db.DB) *PGRepo { return &PGRepo{db: db} }

func orderNumberTaken(ctx context.Context, q db.Querier, number string) (bool, error) {
	var taken bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`, number).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check order number: %w", err)
	}
	return taken, nil
}

// createTx writes the order, its lines and the first status log row.
func createTx(ctx context.Context, q db.Querier, o *Order) error {
	err := q.QueryRow(ctx, `
		INSERT INTO orders (id, order_number, user_id, subtotal, tax, delivery_fee, total,
		                    delivery_address, delivery_city, delivery_state, delivery_zip,
		                    customer_name, customer_phone, note, status, payment_status, payment_ref,
		                    estimated_delivery, created_at, updated_at)
		VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6::numeric,$7::numeric,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, o.OrderNumber, o.UserID,
		o.Subtotal.StringFixed(2), o.Tax.StringFixed(2), o.DeliveryFee.StringFixed(2), o.Total.StringFixed(2),
		o.DeliveryAddress, o.DeliveryCity, o.DeliveryState, o.DeliveryZip,
		o.CustomerName, o.CustomerPhone, o.Note, string(o.Status), o.PaymentStatus, o.PaymentRef,
		o.EstimatedDelivery).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == "orders_order_number_key" {
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		if _, err := q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, item_name, price, quantity, note)
			VALUES ($1,$2,$3,$4,$5::numeric,$6,$7)
		`, it.ID, o.ID, it.MenuItemID, it.Name, it.Price.StringFixed(2), it.Quantity, it.Note); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return logStatus(ctx, q, o.ID, "", o.Status, o.UserID)
}

func logStatus(ctx context.Context, q db.Querier, orderID string, from, to Status, by string) error {
	if _, err := q.Exec(ctx, `
		INSERT INTO order_status_log (order_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, orderID, string(from), string(to), by); err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}

const selectOrder = `
		SELECT o.id::text, o.order_number, o.user_id::text, u.email,
		       o.subtotal::text, o.tax::text, o.delivery_fee::text, o.total::text,
		       o.delivery_address, o.delivery_city, o.delivery_state, o.delivery_zip,
		       o.customer_name, o.customer_phone, o.note, o.status, o.payment_status, o.payment_ref,
		       o.estimated_delivery, o.created_at, o.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o                         Order
		status                    string
		subtotal, tax, fee, total string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerEmail,
		&subtotal, &tax, &fee, &total,
		&o.DeliveryAddress, &o.DeliveryCity, &o.DeliveryState, &o.DeliveryZip,
		&o.CustomerName, &o.CustomerPhone, &o.Note, &status, &o.PaymentStatus, &o.PaymentRef,
		&o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}
	o.Status = Status(status)
	for _, f := range []struct {
		src string
		dst *decimal.Decimal
	}{{subtotal, &o.Subtotal}, {tax, &o.Tax}, {fee, &o.DeliveryFee}, {total, &o.Total}} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return o, fmt.Errorf("order %s amount %q: %w", o.ID, f.src, err)
		}
	}
	o.Items = []Item{}
	return o, nil
}

func (r *PGRepo) listOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachItems loads the lines of every order in one query.
func (r *PGRepo) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	idx := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		idx[o.ID] = i
	}

	rows, err := r.db.Query(ctx, `
		SELECT id::text, order_id::text, menu_item_id, item_name, price::text, quantity, note
		FROM order_items
		WHERE order_id::text = ANY($1)
		ORDER BY item_name
	`, ids)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &price, &it.Quantity, &it.Note); err != nil {
			return err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("order item %s price %q: %w", it.ID, price, err)
		}
		if i, ok := idx[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *PGRepo) ListForUser(ctx context.Context, userID string, limit int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > UserListLimit {
		limit = UserListLimit
	}
	return r.listOrders(ctx, selectOrder+`
		WHERE o.user_id::text = $1
		ORDER BY o.created_at DESC
		LIMIT $2`, userID, limit)
}

func (r *PGRepo) GetForUser(ctx context.Context, id, userID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := r.listOrders(ctx, selectOrder+`
		WHERE o.id::text = $1 AND o.user_id::text = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func (r *PGRepo) ListAll(ctx context.Context, f ListFilter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := f.Limit
	if limit <= 0 {
		limit = AdminListDefault
	}
	if limit > AdminListMax {
		limit = AdminListMax
	}
	return r.listOrders(ctx, selectOrder+`
		WHERE ($1 = '' OR o.status = $1)
		ORDER BY o.created_at DESC
		LIMIT $2`, string(f.Status), limit)
}

func (r *PGRepo) History(ctx context.Context, id string) ([]StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id::text = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id::text, from_status, to_status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id::text = $1
		ORDER BY changed_at, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StatusChange{}
	for rows.Next() {
		var (
			c        StatusChange
			from, to string
		)
		if err := rows.Scan(&c.ID, &c.OrderID, &from, &to, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		c.From, c.To = Status(from), Status(to)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, to Status, changedBy string) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id::text = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lock order: %w", err)
	}
	from := Status(current)
	if from == to {
		return from, nil
	}
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id::text = $1
	`, id, string(to)); err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}
	if err := logStatus(ctx, tx, id, from, to, changedBy); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return from, nil
}
