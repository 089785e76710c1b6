// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderStatusChangedEvent is published after an admin successfully
// updates an order's status. It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.
type OrderStatusChangedEvent struct {
	OrderID   uint64 `json:"order_id"`
	BuyerID   uint64 `json:"buyer_id"`
	BuyerName string `json:"buyer_name"`
	Status    string `json:"status"`
	ChangedAt string `json:"changed_at"`
}
