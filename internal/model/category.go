package model

import "time"

// Category represents a row in the `categories` table. The name is
// stored trimmed and must be unique; the slug is derived from the
// name whenever the category is created or renamed.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique, trimmed display name.
//  Slug      – URL-safe identifier derived from Name.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Category struct {
	ID        uint64    `json:"id"`   // categories.id
	Name      string    `json:"name"` // categories.name
	Slug      string    `json:"slug"` // categories.slug
	CreatedAt time.Time `json:"-"`    // categories.created_at
	UpdatedAt time.Time `json:"-"`    // categories.updated_at
}
