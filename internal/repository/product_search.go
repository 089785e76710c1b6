package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

// FilterQuery describes the compound product filter. CategoryIDs adds
// a category IN (...) constraint only when non-empty; HasPrice adds a
// price BETWEEN constraint only when a two-element range was supplied.
// Both dimensions empty means no constraint at all: every product
// matches.
type FilterQuery struct {
	CategoryIDs []uint64
	PriceMin    float64
	PriceMax    float64
	HasPrice    bool
}

// Filter builds one compound query from the supplied dimensions and
// executes it. Dimensions compose with AND; an absent dimension is no
// constraint on that dimension.
func (r *ProductRepo) Filter(ctx context.Context, q FilterQuery) ([]*model.Product, error) {
	where := []string{}
	args := []any{}

	if len(q.CategoryIDs) > 0 {
		placeholders := strings.Repeat("?,", len(q.CategoryIDs))
		where = append(where, "category_id IN ("+placeholders[:len(placeholders)-1]+")")
		for _, id := range q.CategoryIDs {
			args = append(args, id)
		}
	}
	if q.HasPrice {
		where = append(where, "price >= ? AND price <= ?")
		args = append(args, q.PriceMin, q.PriceMax)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	sqlq := "SELECT " + productColumns + ` FROM products
	        WHERE ` + cond + `
	        ORDER BY created_at DESC`
	return r.queryProducts(ctx, sqlq, args...)
}

// likeEscaper neutralizes the LIKE metacharacters so a keyword always
// matches literally. The backslash goes first since it is the escape
// character itself.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search returns products whose name or description contains the
// keyword, case-insensitively and literally (no wildcard expansion).
// Photo bytes are never selected.
func (r *ProductRepo) Search(ctx context.Context, keyword string) ([]*model.Product, error) {
	kw := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
	const q = "SELECT " + productColumns + ` FROM products
	          WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?`
	return r.queryProducts(ctx, q, kw, kw)
}

// Related returns up to limit products sharing a category with the
// given product while excluding the product itself. Categories are
// expanded so the client can render them without a second round trip.
func (r *ProductRepo) Related(ctx context.Context, productID, categoryID uint64, limit int) ([]*model.Product, error) {
	const q = `SELECT p.id, p.name, p.slug, p.description, p.price, p.quantity,
	                  p.category_id, p.photo_content_type, p.shipping, p.created_at, p.updated_at,
	                  c.id, c.name, c.slug
	           FROM products p
	           JOIN categories c ON c.id = p.category_id
	           WHERE p.category_id = ? AND p.id <> ?
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, categoryID, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Product, 0, limit)
	for rows.Next() {
		p := new(model.Product)
		cat := new(model.Category)
		var shipping sql.NullBool
		var contentType sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Quantity,
			&p.CategoryID, &contentType, &shipping, &p.CreatedAt, &p.UpdatedAt,
			&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, err
		}
		p.PhotoContentType = contentType.String
		if shipping.Valid {
			v := shipping.Bool
			p.Shipping = &v
		}
		p.CategoryInfo = cat
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
