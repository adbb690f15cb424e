package controllers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// View types shape the public JSON. Models stay internal so fields like
// password hashes never ride along by accident.

type inventoryRecordView struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"productId"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Location          string          `json:"location"`
	Quantity          int             `json:"quantity"`
	MinimumStockLevel int             `json:"minimumStockLevel"`
	Unit              string          `json:"unit"`
	Status            string          `json:"status"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdated       time.Time       `json:"lastUpdated"`
}

func toInventoryRecordView(record *models.InventoryRecord) inventoryRecordView {
	return inventoryRecordView{
		ID:                record.ID,
		ProductID:         record.ProductID,
		Name:              record.Name,
		SKU:               record.SKU,
		Category:          record.Category,
		Location:          record.Location,
		Quantity:          record.Quantity,
		MinimumStockLevel: record.MinimumStockLevel,
		Unit:              record.Unit,
		Status:            record.Status.String(),
		Price:             record.Price,
		CostPrice:         record.CostPrice,
		CreatedAt:         record.CreatedAt,
		LastUpdated:       record.UpdatedAt,
	}
}

func toInventoryRecordViews(records []models.InventoryRecord) []inventoryRecordView {
	views := make([]inventoryRecordView, 0, len(records))
	for i := range records {
		views = append(views, toInventoryRecordView(&records[i]))
	}
	return views
}

type productView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Tags      []string        `json:"tags"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toProductView(product *models.Product) productView {
	return productView{
		ID:        product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Category:  product.Category,
		Unit:      product.Unit,
		Price:     product.Price,
		CostPrice: product.CostPrice,
		Tags:      product.Tags,
		IsActive:  product.IsActive,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func toProductViews(items []models.Product) []productView {
	views := make([]productView, 0, len(items))
	for i := range items {
		views = append(views, toProductView(&items[i]))
	}
	return views
}

type userView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"`
	Location    string     `json:"location,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toUserView(user *models.User) userView {
	return userView{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role.String(),
		Location:    user.Location,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func toUserViews(items []models.User) []userView {
	views := make([]userView, 0, len(items))
	for i := range items {
		views = append(views, toUserView(&items[i]))
	}
	return views
}

type locationView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toGodownView(godown *models.Godown) locationView {
	return locationView{
		ID:        godown.ID,
		Name:      godown.Name,
		Address:   godown.Address,
		CreatedAt: godown.CreatedAt,
		UpdatedAt: godown.UpdatedAt,
	}
}

func toGodownViews(items []models.Godown) []locationView {
	views := make([]locationView, 0, len(items))
	for i := range items {
		views = append(views, toGodownView(&items[i]))
	}
	return views
}

func toShopView(shop *models.Shop) locationView {
	return locationView{
		ID:        shop.ID,
		Name:      shop.Name,
		Address:   shop.Address,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}

func toShopViews(items []models.Shop) []locationView {
	views := make([]locationView, 0, len(items))
	for i := range items {
		views = append(views, toShopView(&items[i]))
	}
	return views
}

type listView[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}
