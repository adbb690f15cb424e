package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// LocationUnassigned is the sentinel location holding stock not yet allocated
// to a godown or shop.
const LocationUnassigned = "Unassigned"

// InventoryRecord holds the quantity of one product at one location.
// At most one record may exist per (product_id, location) pair; rows are
// merged on reassignment, never duplicated, and a row that reaches zero
// quantity is deleted.
type InventoryRecord struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_inventory_product_location"`
	Location          string    `gorm:"column:location;not null;uniqueIndex:idx_inventory_product_location"`
	Quantity          int       `gorm:"column:quantity;not null;default:0"`
	MinimumStockLevel int       `gorm:"column:minimum_stock_level;not null;default:0"`

	// Denormalized product display fields, synced on product edits and copied
	// when a reassignment creates a destination row.
	Name      string            `gorm:"column:name;not null"`
	SKU       string            `gorm:"column:sku;not null"`
	Category  string            `gorm:"column:category;not null;default:''"`
	Unit      string            `gorm:"column:unit;not null;default:'pcs'"`
	Status    enums.StockStatus `gorm:"column:status;type:text;not null;default:'in_stock'"`
	Price     decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	CostPrice decimal.Decimal   `gorm:"column:cost_price;type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *InventoryRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsUnassigned reports whether the record sits in the unallocated pool.
func (r InventoryRecord) IsUnassigned() bool {
	return r.Location == LocationUnassigned
}
