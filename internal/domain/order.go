package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the kitchen-side lifecycle of a placed order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// ParseOrderStatus validates a status string from the worker dashboard.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPlaced, OrderPreparing, OrderReady, OrderCompleted:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// OrderLine is a finalized cart line frozen into an order at checkout.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a checked-out transaction as tracked on the kitchen board.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	Lines     []OrderLine `json:"lines"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	PlacedAt  time.Time   `json:"placedAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
