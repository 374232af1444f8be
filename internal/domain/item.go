package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a single inventory record
type Item struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Quantity     int       `json:"quantity" db:"quantity"`
	MinimumStock int       `json:"minimum_stock" db:"minimum_stock"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	Location     string    `json:"location" db:"location"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	CreatedBy    string    `json:"created_by" db:"created_by"`
}

// IsLowStock reports whether the item is at or below its restock threshold
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinimumStock
}

// StockMovementEntry summarizes item activity for one calendar day
type StockMovementEntry struct {
	Day             string  `json:"day"`
	TotalItems      int     `json:"total_items"`
	AverageQuantity float64 `json:"average_quantity"`
}

// DashboardSummary is the aggregate rollup shown on the dashboard
type DashboardSummary struct {
	TotalItems          int     `json:"total_items"`
	LowStockCount       int     `json:"low_stock_count"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	CategoriesCount     int     `json:"categories_count"`
}
