package models

import "time"

// OrderStatus is conventional, not enforced: any non-empty string is stored.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Defaults applied to optional order fields.
const (
	DefaultCustomerType  = "Restaurant"
	DefaultOrderCategory = "Food & Beverage"
)

// Order is a single sale. Customer and Product hold the names as they were
// when the order was written; CustomerID and ProductID link to the catalog
// rows and become nil when those rows are deleted.
type Order struct {
	ID           string      `db:"id" json:"id"`
	Customer     string      `db:"customer" json:"customer"`
	Product      string      `db:"product" json:"product"`
	CustomerID   *string     `db:"customer_id" json:"customerId,omitempty"`
	ProductID    *string     `db:"product_id" json:"productId,omitempty"`
	Amount       float64     `db:"amount" json:"amount"`
	Status       OrderStatus `db:"status" json:"status"`
	Date         Date        `db:"date" json:"date"`
	Vendor       string      `db:"vendor" json:"vendor"`
	CustomerType string      `db:"customer_type" json:"customer_type"`
	Category     string      `db:"category" json:"category"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}
