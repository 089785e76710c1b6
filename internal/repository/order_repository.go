package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ecommerce-api/internal/model"
)

// OrderRepo encapsulates all database queries related to orders and
// their order_items rows.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the provided DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// CountByProduct returns how many order items reference a product. The
// product delete guard is built on this read.
func (r *OrderRepo) CountByProduct(ctx context.Context, productID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM order_items WHERE product_id = ?", productID).Scan(&n)
	return n, err
}

// ListByBuyer returns one buyer's orders, newest first, with product
// summaries (no photo bytes) and the buyer's name expanded.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]*model.Order, error) {
	const q = `SELECT o.id, o.buyer_id, o.status, o.created_at, o.updated_at, u.name
	           FROM orders o
	           JOIN users u ON u.id = o.buyer_id
	           WHERE o.buyer_id = ?
	           ORDER BY o.created_at DESC`
	return r.queryOrders(ctx, q, buyerID)
}

// ListAll returns every order, newest first, with the same expansion
// the per-buyer listing performs. Used by the admin back-office.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*model.Order, error) {
	const q = `SELECT o.id, o.buyer_id, o.status, o.created_at, o.updated_at, u.name
	           FROM orders o
	           JOIN users u ON u.id = o.buyer_id
	           ORDER BY o.created_at DESC`
	return r.queryOrders(ctx, q)
}

// UpdateStatus writes the status field unconditionally (any label is
// accepted, last write wins) and returns the post-update order.
// ErrOrderNotFound is returned when the id matches nothing.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID uint64, status string) (*model.Order, error) {
	const q = `UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, orderID); err != nil {
		return nil, err
	}
	const qSelect = `SELECT o.id, o.buyer_id, o.status, o.created_at, o.updated_at, u.name
	                 FROM orders o
	                 JOIN users u ON u.id = o.buyer_id
	                 WHERE o.id = ?`
	var o model.Order
	if err := r.db.QueryRowContext(ctx, qSelect, orderID).
		Scan(&o.ID, &o.BuyerID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.Buyer.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.Buyer.ID = o.BuyerID
	if err := r.attachItems(ctx, []*model.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Order, 0)
	for rows.Next() {
		o := new(model.Order)
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.Buyer.Name); err != nil {
			return nil, err
		}
		o.Buyer.ID = o.BuyerID
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachItems(ctx, out)
}

// attachItems expands order_items into product summaries for a batch
// of orders with a single query.
func (r *OrderRepo) attachItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Order, len(orders))
	placeholders := ""
	args := make([]any, 0, len(orders))
	for i, o := range orders {
		o.Products = make([]*model.Product, 0)
		byID[o.ID] = o
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, o.ID)
	}

	q := `SELECT oi.order_id, p.id, p.name, p.slug, p.description, p.price, p.quantity,
	             p.category_id, p.photo_content_type, p.shipping, p.created_at, p.updated_at
	      FROM order_items oi
	      JOIN products p ON p.id = oi.product_id
	      WHERE oi.order_id IN (` + placeholders + `)
	      ORDER BY oi.order_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uint64
		p := new(model.Product)
		var shipping sql.NullBool
		var contentType sql.NullString
		if err := rows.Scan(&orderID, &p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
			&p.Quantity, &p.CategoryID, &contentType, &shipping, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		p.PhotoContentType = contentType.String
		if shipping.Valid {
			v := shipping.Bool
			p.Shipping = &v
		}
		if o, ok := byID[orderID]; ok {
			o.Products = append(o.Products, p)
		}
	}
	return rows.Err()
}
