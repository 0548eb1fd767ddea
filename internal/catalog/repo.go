// Package catalog provides geography lookup, time-of-day menus and admin
// maintenance of menu items.
package catalog

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
	ErrNotFound         = errors.New("not found")
	ErrCategoryNotFound = errors.New("menu category not found")
)

// SpecialsLimit caps the featured items returned with a menu.
const SpecialsLimit = 20

type Repository interface {
	ListStates(ctx context.Context) ([]State, error)
	LookupZip(ctx context.Context, zip string) (*ZipInfo, error)
	GetCity(ctx context.Context, id int64) (*City, error)
	ListSpecials(ctx context.Context, cityID int64, limit int) ([]MenuItem, error)
	ListByMealPeriod(ctx context.Context, cityID int64, period MealPeriod) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*MenuItem, error)
	CreateMenuItem(ctx context.Context, it *MenuItem) error
	UpdateMenuItem(ctx context.Context, id int64, p MenuItemPatch) (*MenuItem, error)
	CreateState(ctx context.Context, st *State) error
	CreateCity(ctx context.Context, c *City) error
	CreateZip(ctx context.Context, z *ZipCode) error
}

type PGRepo struct{ db db.DB }

func NewPGRepo(db db.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListStates(ctx context.Context) ([]State, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, code FROM states ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []State{}
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Name, &s.Code); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) LookupZip(ctx context.Context, zip string) (*ZipInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var z ZipInfo
	err := r.db.QueryRow(ctx, `
		SELECT z.zip_code, c.id, c.name, s.name, s.code, c.timezone
		FROM zip_codes z
		JOIN cities c ON c.id = z.city_id
		JOIN states s ON s.id = c.state_id
		WHERE z.zip_code = $1
	`, zip).Scan(&z.ZipCode, &z.CityID, &z.City, &z.State, &z.StateCode, &z.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup zip: %w", err)
	}
	return &z, nil
}

func (r *PGRepo) GetCity(ctx context.Context, id int64) (*City, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c City
	err := r.db.QueryRow(ctx, `SELECT id, name, state_id, timezone FROM cities WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.StateID, &c.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}

const selectItem = `
		SELECT mi.id, mi.name, mi.description, mi.price::text, mi.category_id, mc.name,
		       mi.city_id, mi.cuisine, mi.image_url, mi.is_special, mi.is_available,
		       mi.preparation_minutes, mi.calories, mi.created_at, mi.updated_at
		FROM menu_items mi
		JOIN menu_categories mc ON mc.id = mi.category_id`

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (MenuItem, error) {
	var (
		it       MenuItem
		price    string
		calories *int32
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &price, &it.CategoryID, &it.CategoryName,
		&it.CityID, &it.Cuisine, &it.ImageURL, &it.IsSpecial, &it.IsAvailable,
		&it.PreparationMinutes, &calories, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return it, err
	}
	if it.Price, err = decimal.NewFromString(price); err != nil {
		return it, fmt.Errorf("menu item %d price %q: %w", it.ID, price, err)
	}
	if calories != nil {
		c := int(*calories)
		it.Calories = &c
	}
	return it, nil
}

func (r *PGRepo) listItems(ctx context.Context, query string, args ...any) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MenuItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListSpecials(ctx context.Context, cityID int64, limit int) ([]MenuItem, error) {
	if limit <= 0 || limit > SpecialsLimit {
		limit = SpecialsLimit
	}
	return r.listItems(ctx, selectItem+`
		WHERE mi.city_id = $1 AND mi.is_special AND mi.is_available
		ORDER BY RANDOM()
		LIMIT $2`, cityID, limit)
}

func (r *PGRepo) ListByMealPeriod(ctx context.Context, cityID int64, period MealPeriod) ([]MenuItem, error) {
	return r.listItems(ctx, selectItem+`
		WHERE mi.city_id = $1 AND mc.meal_period = $2 AND mc.is_active AND mi.is_available
		ORDER BY mi.cuisine, mi.name`, cityID, string(period))
}

func (r *PGRepo) GetMenuItem(ctx context.Context, id int64) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	it, err := scanItem(r.db.QueryRow(ctx, selectItem+` WHERE mi.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &it, nil
}

// CreateMenuItem inserts it; the city is taken from its category.
func (r *PGRepo) CreateMenuItem(ctx context.Context, it *MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category_id, city_id, cuisine, image_url,
		                        is_special, is_available, preparation_minutes, calories, created_at, updated_at)
		SELECT $1, $2, $3::numeric, mc.id, mc.city_id, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		FROM menu_categories mc WHERE mc.id = $4
		RETURNING id, city_id, created_at, updated_at
	`, it.Name, it.Description, it.Price.StringFixed(2), it.CategoryID, it.Cuisine, it.ImageURL,
		it.IsSpecial, it.IsAvailable, it.PreparationMinutes, it.Calories).
		Scan(&it.ID, &it.CityID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem applies the non-nil fields of p. A new category also moves the
// item to that category's city. Order lines keep their own copy of name and
// price, so edits never reach past orders.
func (r *PGRepo) UpdateMenuItem(ctx context.Context, id int64, p MenuItemPatch) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var price *string
	if p.Price != nil {
		s := p.Price.StringFixed(2)
		price = &s
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4::numeric, price),
		    category_id = COALESCE($5::bigint, category_id),
		    city_id = COALESCE((SELECT mc.city_id FROM menu_categories mc WHERE mc.id = $5::bigint), city_id),
		    cuisine = COALESCE($6, cuisine),
		    image_url = COALESCE($7, image_url),
		    is_special = COALESCE($8, is_special),
		    is_available = COALESCE($9, is_available),
		    preparation_minutes = COALESCE($10, preparation_minutes),
		    calories = COALESCE($11, calories),
		    updated_at = NOW()
		WHERE id = $1
	`, id, p.Name, p.Description, price, p.CategoryID, p.Cuisine, p.ImageURL,
		p.IsSpecial, p.IsAvailable, p.PreparationMinutes, p.Calories)
	if err != nil {
		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetMenuItem(ctx, id)
}
