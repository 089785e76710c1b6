// Package repository contains the data access layer. Sentinel errors
// defined here let handlers distinguish the failure tiers the API
// exposes: not-found versus conflict versus unexpected storage errors.
package repository

import "errors"

// ErrCategoryNotFound is returned when a category lookup, update or
// delete matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryExists is returned when an insert collides with the
// unique name index. The handler-level lookup catches duplicates
// first; this guards the race between the lookup and the insert.
var ErrCategoryExists = errors.New("category already exists")

// ErrProductNotFound is returned when a product lookup, update or
// delete matches no row.
var ErrProductNotFound = errors.New("product not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrOrderNotFound is returned when an order update matches no row.
var ErrOrderNotFound = errors.New("order not found")
