package models

import "time"

// Customer is a row of the customers table.
type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CustomerSummary is a customer enriched with totals derived from orders.
type CustomerSummary struct {
	Customer
	TotalOrders int   `json:"totalOrders"`
	TotalSpent  int64 `json:"totalSpent"`
}
