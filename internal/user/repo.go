package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MikeMC777/mealmoment/internal/db"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpsertAdmin(ctx context.Context, u *User) error
}

type PGRepo struct{ db db.DB }

func NewPGRepo(db db.DB) *PGRepo { return &PGRepo{db: db} }

const selectUser = `
		SELECT id::text, email, password_hash, first_name, last_name, phone, is_admin, created_at
		FROM users`

func (r *PGRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, is_admin, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		RETURNING created_at
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.IsAdmin).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExist
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, selectUser+` WHERE id::text=$1`, id)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, selectUser+` WHERE email=$1`, email)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// UpsertAdmin creates the account or promotes an existing one with the same email.
func (r *PGRepo) UpsertAdmin(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_admin, created_at)
		VALUES ($1,$2,$3,$4,$5,TRUE,NOW())
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, is_admin = TRUE
		RETURNING id::text, created_at
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	u.IsAdmin = true
	return nil
}
