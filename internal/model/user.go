package model

import "time"

// Role values stored in users.role. Admins are granted the back-office
// routes by middleware; everyone else is a plain customer.
const (
	RoleCustomer = 0
	RoleAdmin    = 1
)

// User represents a row in the `users` table. The password is stored as
// a bcrypt hash; the security answer is used by the forgot-password
// flow. Email is immutable once registered.
type User struct {
	ID           uint64    `json:"id"`      // users.id
	Name         string    `json:"name"`    // users.name
	Email        string    `json:"email"`   // users.email (unique)
	PasswordHash string    `json:"-"`       // users.password_hash
	Phone        string    `json:"phone"`   // users.phone
	Address      string    `json:"address"` // users.address
	Answer       string    `json:"-"`       // users.answer (forgot-password)
	Role         int       `json:"role"`    // users.role (0 customer, 1 admin)
	CreatedAt    time.Time `json:"-"`       // users.created_at
	UpdatedAt    time.Time `json:"-"`       // users.updated_at
}
