package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents the canonical catalog entry referenced by inventory records.
type Product struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name      string            `gorm:"column:name;not null"`
	SKU       string            `gorm:"column:sku;not null;uniqueIndex"`
	Category  string            `gorm:"column:category;not null;default:''"`
	Unit      string            `gorm:"column:unit;not null;default:'pcs'"`
	Price     decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	CostPrice decimal.Decimal   `gorm:"column:cost_price;type:numeric(12,2);not null"`
	Tags      pq.StringArray    `gorm:"column:tags;type:text[]"`
	IsActive  bool              `gorm:"column:is_active;not null;default:true"`
	Inventory []InventoryRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
