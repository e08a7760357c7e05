package models

import "time"

// Catalog defaults applied when a product is created without them.
const (
	DefaultMinStockLevel = 10
	DefaultMaxStockLevel = 100
	DefaultVendor        = "Default Vendor"
)

// Product is a catalog entry. Name is unique across the catalog.
type Product struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Category      string    `db:"category" json:"category"`
	Price         float64   `db:"price" json:"price"`
	Stock         int       `db:"stock" json:"stock"`
	MinStockLevel int       `db:"min_stock_level" json:"min_stock_level"`
	MaxStockLevel int       `db:"max_stock_level" json:"max_stock_level"`
	Vendor        string    `db:"vendor" json:"vendor"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// ProductSummary is a product enriched with the number of orders placed for it.
type ProductSummary struct {
	Product
	Sold int `json:"sold"`
}
