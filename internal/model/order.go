package model

import "time"

// OrderStatus represents the lifecycle state of an order.
// Free-form statuses can be set via the status-update operation;
// these are the ones the system itself assigns.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order represents a purchase placed by a user.
// UserID is a reference to a User; the store performs no referential
// checks, consistency is enforced by the integrity engine.
type Order struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Price       float64     `json:"price"`
	OrderDate   time.Time   `json:"order_date"`
	Status      OrderStatus `json:"status"`
}

// IsCancelled returns true if the order has been cancelled.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}
