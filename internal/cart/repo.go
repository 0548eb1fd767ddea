// Package cart stores shopping carts and prices them.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/mealmoment/internal/db"
)

var ErrNotFound = errors.New("cart item not found")

type Repository interface {
	// AddItem resolves or creates the owner's cart and merges the line into it.
	AddItem(ctx context.Context, owner Owner, menuItemID int64, qty int, note string) (string, error)
	FindID(ctx context.Context, owner Owner) (string, error)
	Lines(ctx context.Context, cartID string) ([]Line, error)
	RemoveLine(ctx context.Context, owner Owner, lineID string) (bool, error)
	// Merge moves from's lines into to's cart and deletes from's cart.
	Merge(ctx context.Context, from, to Owner) (int, error)
}

type PGRepo struct{ db db.DB }

func NewPGRepo(db db.DB) *PGRepo { return &PGRepo{db: db} }

func upsertCart(ctx context.Context, q db.Querier, owner Owner) (string, error) {
	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO carts (id, owner_kind, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (owner_kind, owner_id) DO UPDATE SET updated_at = NOW()
		RETURNING id::text
	`, uuid.NewString(), string(owner.Kind), owner.ID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert cart: %w", err)
	}
	return id, nil
}

func (r *PGRepo) AddItem(ctx context.Context, owner Owner, menuItemID int64, qty int, note string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartID, err := upsertCart(ctx, tx, owner)
	if err != nil {
		return "", err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, menu_item_id, quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (cart_id, menu_item_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    note = COALESCE(NULLIF(EXCLUDED.note, ''), cart_items.note)
	`, uuid.NewString(), cartID, menuItemID, qty, note)
	if err != nil {
		return "", fmt.Errorf("upsert cart line: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return cartID, nil
}

func (r *PGRepo) FindID(ctx context.Context, owner Owner) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id string
	err := r.db.QueryRow(ctx, `SELECT id::text FROM carts WHERE owner_kind=$1 AND owner_id=$2`,
		string(owner.Kind), owner.ID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find cart: %w", err)
	}
	return id, nil
}

func (r *PGRepo) Lines(ctx context.Context, cartID string) ([]Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return LoadLines(ctx, r.db, cartID)
}

// RemoveLine deletes one line of the owner's cart. The cart row is locked
// first so a removal cannot interleave with a checkout of the same cart.
func (r *PGRepo) RemoveLine(ctx context.Context, owner Owner, lineID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartID, err := LockOwnerCart(ctx, tx, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id::text = $1 AND cart_id::text = $2`, lineID, cartID)
	if err != nil {
		return false, fmt.Errorf("delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit cart line delete: %w", err)
	}
	return true, nil
}

func (r *PGRepo) Merge(ctx context.Context, from, to Owner) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	fromID, err := LockOwnerCart(ctx, tx, from)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	toID, err := upsertCart(ctx, tx, to)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, menu_item_id, quantity, note, created_at)
		SELECT gen_random_uuid(), $1, menu_item_id, quantity, note, created_at
		FROM cart_items WHERE cart_id = $2
		ON CONFLICT (cart_id, menu_item_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("merge cart lines: %w", err)
	}
	if err := DeleteCart(ctx, tx, fromID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// LockOwnerCart selects the owner's cart row FOR UPDATE. Callers must be in a
// transaction.
func LockOwnerCart(ctx context.Context, q db.Querier, owner Owner) (string, error) {
	var id string
	err := q.QueryRow(ctx, `
		SELECT id::text FROM carts WHERE owner_kind = $1 AND owner_id = $2 FOR UPDATE
	`, string(owner.Kind), owner.ID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lock cart: %w", err)
	}
	return id, nil
}

// LoadLines returns the cart's lines joined with current menu data, oldest first.
func LoadLines(ctx context.Context, q db.Querier, cartID string) ([]Line, error) {
	rows, err := q.Query(ctx, `
		SELECT ci.id::text, ci.menu_item_id, mi.name, mi.description, mi.image_url,
		       mi.price::text, ci.quantity, ci.note, mi.is_available
		FROM cart_items ci
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	out := []Line{}
	for rows.Next() {
		var (
			l     Line
			price string
		)
		if err := rows.Scan(&l.ID, &l.MenuItemID, &l.Name, &l.Description, &l.ImageURL,
			&price, &l.Quantity, &l.Note, &l.Available); err != nil {
			return nil, err
		}
		if l.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("cart line %s price %q: %w", l.ID, price, err)
		}
		l.LineTotal = l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out = append(out, l)
	}
	return out, rows.Err()
}

// DeleteCart removes the cart; its lines go with it.
func DeleteCart(ctx context.Context, q db.Querier, cartID string) error {
	if _, err := q.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
