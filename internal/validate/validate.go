// Package validate holds the pure request validation rules for category,
// product, profile and registration payloads. Every function is free of
// side effects and checks fields in a fixed order so that the first
// failing field determines the returned message. Messages are part of
// the public API contract and must not be reworded.
package validate

import (
	"errors"
	"strconv"
	"strings"
)

// MaxPhotoBytes is the upper bound for product photos. The comparison
// is a strict greater-than: a photo of exactly MaxPhotoBytes passes.
const MaxPhotoBytes = 1_000_000

// MinPasswordLen is the minimum length for a plaintext password when a
// profile update requests a password change.
const MinPasswordLen = 6

var (
	ErrCategoryName    = errors.New("Name is required")
	ErrProductName     = errors.New("Name is Required")
	ErrProductDesc     = errors.New("Description is Required")
	ErrProductPrice    = errors.New("Price is Required and must be a non-negative number")
	ErrProductCategory = errors.New("Category is Required")
	ErrProductQuantity = errors.New("Quantity is Required and must be a non-negative number")
	ErrProductPhoto    = errors.New("Photo is Required")
	ErrPhotoTooLarge   = errors.New("Photo should be less than 1mb")
	ErrShortPassword   = errors.New("Password must be at least 6 characters long")
)

// ProductInput is the raw field bag of a create/update product request
// as it arrives in the multipart form, before any coercion. PhotoSize
// is the byte count of the uploaded photo; HasPhoto distinguishes "no
// file" from an empty file.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	Quantity    string
	HasPhoto    bool
	PhotoSize   int64
}

// CategoryName rejects a missing, empty or whitespace-only name.
func CategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCategoryName
	}
	return nil
}

// Product checks a product field bag in the contract-fixed order:
// name, description, price, category, quantity, photo. The photo is
// mandatory only on create (photoRequired); when one is present its
// size is capped regardless.
func Product(in ProductInput, photoRequired bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrProductName
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrProductDesc
	}
	if !nonNegativeNumber(in.Price) {
		return ErrProductPrice
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrProductCategory
	}
	if !nonNegativeNumber(in.Quantity) {
		return ErrProductQuantity
	}
	if photoRequired && !in.HasPhoto {
		return ErrProductPhoto
	}
	if in.HasPhoto && in.PhotoSize > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	return nil
}

// ProfilePassword applies the password policy of a profile update. An
// empty password means "no change requested" and is not an error; a
// non-empty password shorter than MinPasswordLen is rejected.
func ProfilePassword(password string) error {
	if password != "" && len(password) < MinPasswordLen {
		return ErrShortPassword
	}
	return nil
}

// RegisterInput is the field bag of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// Register checks registration fields in order and names the first
// missing one.
func Register(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errors.New("Name is required")
	case strings.TrimSpace(in.Email) == "":
		return errors.New("Email is required")
	case in.Password == "":
		return errors.New("Password is required")
	case strings.TrimSpace(in.Phone) == "":
		return errors.New("Phone number is required")
	case strings.TrimSpace(in.Address) == "":
		return errors.New("Address is required")
	case strings.TrimSpace(in.Answer) == "":
		return errors.New("Answer is required")
	}
	return nil
}

// nonNegativeNumber reports whether s parses as a number >= 0. Missing,
// non-numeric and negative values all fail the same way so that price
// and quantity each produce a single message for every bad shape.
func nonNegativeNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return n >= 0
}
