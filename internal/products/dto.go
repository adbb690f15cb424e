package products

import (
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

type CreateInput struct {
	Name      string          `json:"name" validate:"required"`
	SKU       string          `json:"sku" validate:"required"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Tags      []string        `json:"tags"`
}

type UpdateInput struct {
	Name      *string          `json:"name"`
	Category  *string          `json:"category"`
	Unit      *string          `json:"unit"`
	Price     *decimal.Decimal `json:"price"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	Tags      []string         `json:"tags"`
	IsActive  *bool            `json:"isActive"`
}

type ListParams struct {
	Limit  int
	Cursor string
}

type ListResult struct {
	Items      []models.Product
	NextCursor string
}

func nextCursor(items []models.Product, limit int) ([]models.Product, string) {
	if len(items) <= limit {
		return items, ""
	}
	items = items[:limit]
	last := items[len(items)-1]
	return items, pagination.EncodeCursor(pagination.Cursor{
		CreatedAt: last.CreatedAt,
		ID:        last.ID,
	})
}
