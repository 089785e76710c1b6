package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

// PageSize is the fixed page length of the paginated product listing.
const PageSize = 6

// productColumns are the listing columns; photo bytes are deliberately
// excluded everywhere except the dedicated Photo lookup.
const productColumns = `id, name, slug, description, price, quantity,
	category_id, photo_content_type, shipping, created_at, updated_at`

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func scanProduct(row interface{ Scan(...any) error }, p *model.Product) error {
	var shipping sql.NullBool
	var contentType sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Quantity,
		&p.CategoryID, &contentType, &shipping, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	p.PhotoContentType = contentType.String
	if shipping.Valid {
		v := shipping.Bool
		p.Shipping = &v
	}
	return nil
}

// Create inserts a new product with its photo bytes and re-reads the
// generated id and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const qInsert = `INSERT INTO products
		(name, slug, description, price, quantity, category_id, photo, photo_content_type, shipping)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var shipping sql.NullBool
	if p.Shipping != nil {
		shipping = sql.NullBool{Bool: *p.Shipping, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, qInsert,
		p.Name, p.Slug, p.Description, p.Price, p.Quantity,
		p.CategoryID, p.Photo, p.PhotoContentType, shipping)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM products WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update writes the scalar fields of a product by id and re-reads the
// row, so the caller receives the post-update document. Photo bytes are
// a separate write (UpdatePhoto) because they are optional on update.
// ErrProductNotFound is returned when the id matches nothing.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products
	           SET name = ?, slug = ?, description = ?, price = ?, quantity = ?,
	               category_id = ?, shipping = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	var shipping sql.NullBool
	if p.Shipping != nil {
		shipping = sql.NullBool{Bool: *p.Shipping, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, q,
		p.Name, p.Slug, p.Description, p.Price, p.Quantity,
		p.CategoryID, shipping, p.ID); err != nil {
		return err
	}
	const qSelect = "SELECT " + productColumns + " FROM products WHERE id = ?"
	if err := scanProduct(r.db.QueryRowContext(ctx, qSelect, p.ID), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// UpdatePhoto replaces the stored photo bytes and content type.
func (r *ProductRepo) UpdatePhoto(ctx context.Context, id uint64, photo []byte, contentType string) error {
	const q = `UPDATE products
	           SET photo = ?, photo_content_type = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, photo, contentType, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by id. The orders referential check is a
// separate read (OrderRepo.CountByProduct) performed by the caller
// before this write; the sequence is not atomic.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetByID fetches a product by id without photo bytes.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = "SELECT " + productColumns + " FROM products WHERE id = ?"
	var p model.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBySlug fetches a product by slug with its category expanded.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	const q = `SELECT p.id, p.name, p.slug, p.description, p.price, p.quantity,
	                  p.category_id, p.photo_content_type, p.shipping, p.created_at, p.updated_at,
	                  c.id, c.name, c.slug
	           FROM products p
	           JOIN categories c ON c.id = p.category_id
	           WHERE p.slug = ? LIMIT 1`
	var p model.Product
	var cat model.Category
	var shipping sql.NullBool
	var contentType sql.NullString
	err := r.db.QueryRowContext(ctx, q, slug).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Quantity,
		&p.CategoryID, &contentType, &shipping, &p.CreatedAt, &p.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p.PhotoContentType = contentType.String
	if shipping.Valid {
		v := shipping.Bool
		p.Shipping = &v
	}
	p.CategoryInfo = &cat
	return &p, nil
}

// Photo returns the stored photo bytes and content type for a product.
func (r *ProductRepo) Photo(ctx context.Context, id uint64) ([]byte, string, error) {
	const q = "SELECT photo, photo_content_type FROM products WHERE id = ?"
	var photo []byte
	var contentType sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&photo, &contentType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrProductNotFound
		}
		return nil, "", err
	}
	return photo, contentType.String, nil
}

// List returns the newest products up to limit, photo omitted.
func (r *ProductRepo) List(ctx context.Context, limit int) ([]*model.Product, error) {
	const q = "SELECT " + productColumns + ` FROM products
	           ORDER BY created_at DESC LIMIT ?`
	return r.queryProducts(ctx, q, limit)
}

// Page returns one fixed-size page of the newest-first listing. Pages
// are 1-indexed; the caller defaults invalid pages to 1.
func (r *ProductRepo) Page(ctx context.Context, page int) ([]*model.Product, error) {
	if page < 1 {
		page = 1
	}
	const q = "SELECT " + productColumns + ` FROM products
	           ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return r.queryProducts(ctx, q, PageSize, (page-1)*PageSize)
}

// Count returns the total number of products.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

// CountByCategory returns how many products reference a category. The
// category delete guard is built on this read.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_id = ?", categoryID).Scan(&n)
	return n, err
}

// ByCategory returns all products of one category, newest first.
func (r *ProductRepo) ByCategory(ctx context.Context, categoryID uint64) ([]*model.Product, error) {
	const q = "SELECT " + productColumns + ` FROM products
	           WHERE category_id = ? ORDER BY created_at DESC`
	return r.queryProducts(ctx, q, categoryID)
}

func (r *ProductRepo) queryProducts(ctx context.Context, q string, args ...any) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Product, 0)
	for rows.Next() {
		p := new(model.Product)
		if err := scanProduct(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
