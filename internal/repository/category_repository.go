package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

// CategoryRepo encapsulates all database queries related to
// categories. It depends on a sql.DB connection configured at startup.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB
// handle, allowing injection of the database in tests and at startup.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserts a new category. On success the ID field is populated
// with the auto-generated value and a follow-up SELECT fills the
// timestamp columns so callers receive a fully populated record. A
// duplicate-key violation maps to ErrCategoryExists.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const qInsert = "INSERT INTO categories (name, slug) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, c.Name, c.Slug)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = "SELECT name, slug, created_at, updated_at FROM categories WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).
		Scan(&c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a category by id, returning ErrCategoryNotFound when
// no row matches.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	const q = "SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = ?"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByName fetches a category by its exact (trimmed) name. The
// uniqueness check at create time goes through this lookup.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	const q = "SELECT id, name, slug, created_at, updated_at FROM categories WHERE name = ? LIMIT 1"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, name).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetBySlug fetches a category by slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	const q = "SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = ? LIMIT 1"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, slug).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by id.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	const q = "SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Category, 0)
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a category and stores its re-derived slug, then
// re-reads the row so the caller gets the post-update document.
// ErrCategoryNotFound is returned when the id matches nothing.
func (r *CategoryRepo) Update(ctx context.Context, id uint64, name, slug string) (*model.Category, error) {
	const q = `UPDATE categories
	           SET name = ?, slug = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, name, slug, id); err != nil {
		return nil, err
	}
	// RowsAffected is 0 both for a missing row and for a no-op rename,
	// so existence is decided by the follow-up read.
	return r.GetByID(ctx, id)
}

// Delete removes a category by id. The products referential check is a
// separate read owned by ProductRepo.CountByCategory; the two calls do
// not compose atomically.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
