package model

import "time"

// Product represents a row in the `products` table. Photo bytes live in
// a MEDIUMBLOB column and are never serialized into listing responses;
// clients fetch them through the dedicated photo endpoint instead.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – trimmed, non-empty display name.
//  Slug             – URL-safe identifier derived from Name.
//  Description      – trimmed, non-empty description text.
//  Price            – unit price, must be >= 0.
//  Quantity         – stock count, must be >= 0.
//  CategoryID       – reference to an existing categories.id.
//  Photo            – raw image bytes, at most 1,000,000 of them.
//  PhotoContentType – MIME type recorded at upload time.
//  Shipping         – optional shipping flag (nil when unspecified).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Product struct {
	ID               uint64    `json:"id"`                 // products.id
	Name             string    `json:"name"`               // products.name
	Slug             string    `json:"slug"`               // products.slug
	Description      string    `json:"description"`        // products.description
	Price            float64   `json:"price"`              // products.price
	Quantity         int64     `json:"quantity"`           // products.quantity
	CategoryID       uint64    `json:"category"`           // products.category_id
	Photo            []byte    `json:"-"`                  // products.photo (never in JSON)
	PhotoContentType string    `json:"-"`                  // products.photo_content_type
	Shipping         *bool     `json:"shipping,omitempty"` // products.shipping (nullable)
	CreatedAt        time.Time `json:"createdAt"`          // products.created_at
	UpdatedAt        time.Time `json:"-"`                  // products.updated_at

	// CategoryInfo carries the expanded category when a query joins it
	// in (single product, related products, products by category).
	CategoryInfo *Category `json:"categoryInfo,omitempty"`
}
