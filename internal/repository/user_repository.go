package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

const userColumns = `id, name, email, password_hash, phone, address, answer,
	role, created_at, updated_at`

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.Address, &u.Answer, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

// Create inserts a user and populates its ID and timestamps. The
// password must already be hashed; emails are stored lower-cased.
// A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO users (name, email, password_hash, phone, address, answer, role)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.Address, u.Answer, u.Role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM users WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, u.ID).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + userColumns + " FROM users WHERE email = ? LIMIT 1"
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, email), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = "SELECT " + userColumns + " FROM users WHERE id = ? LIMIT 1"
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmailAndAnswer fetches a user whose email and security answer
// both match; the forgot-password flow depends on this pair lookup.
func (r *UserRepo) GetByEmailAndAnswer(ctx context.Context, email, answer string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + userColumns + " FROM users WHERE email = ? AND answer = ? LIMIT 1"
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, email, answer), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile writes name, password hash, phone and address
// unconditionally (the handler has already computed the effective
// values, falling back to stored ones field by field) and returns the
// post-update record.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, passwordHash, phone, address string) (*model.User, error) {
	const q = `UPDATE users
	           SET name = ?, password_hash = ?, phone = ?, address = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, name, passwordHash, phone, address, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdatePassword replaces the stored hash (forgot-password flow).
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	const q = `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, passwordHash, id)
	return err
}
