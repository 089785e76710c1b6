package model

import "time"

// Order represents a row in the `orders` table plus its order_items
// rows expanded into product summaries. Status is a free-form label set
// by the admin back-office; no transition rules are enforced, the last
// write wins.
type Order struct {
	ID        uint64    `json:"id"`        // orders.id
	BuyerID   uint64    `json:"-"`         // orders.buyer_id
	Status    string    `json:"status"`    // orders.status
	CreatedAt time.Time `json:"createdAt"` // orders.created_at
	UpdatedAt time.Time `json:"-"`         // orders.updated_at

	// Buyer holds the buyer's display name only, matching the
	// name-only expansion the listing endpoints perform.
	Buyer OrderBuyer `json:"buyer"`
	// Products are the ordered items without photo bytes.
	Products []*Product `json:"products"`
}

// OrderBuyer is the reduced buyer projection embedded in order listings.
type OrderBuyer struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
