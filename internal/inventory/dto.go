package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

type ListParams struct {
	Limit  int
	Cursor string
	// Location filters to a single location when non-empty.
	Location string
}

type ListResult struct {
	Items      []models.InventoryRecord
	NextCursor string
}

type CreateInput struct {
	Name              string          `json:"name" validate:"required"`
	SKU               string          `json:"sku" validate:"required"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Location          string          `json:"location"`
	Quantity          int             `json:"quantity" validate:"gt=0"`
	MinimumStockLevel int             `json:"minimumStockLevel" validate:"gte=0"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
}

type UpdateInput struct {
	Quantity          *int             `json:"quantity"`
	MinimumStockLevel *int             `json:"minimumStockLevel"`
	Location          *string          `json:"location"`
	Name              *string          `json:"name"`
	Price             *decimal.Decimal `json:"price"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	Category          *string          `json:"category"`
	// OriginalQuantity is accepted for wire compatibility with older clients
	// but ignored; quantities are re-read under lock server side.
	OriginalQuantity *int `json:"originalQuantity"`
}

type ReassignInput struct {
	RecordID uuid.UUID
	// Location is the destination. The sentinel pool location is valid.
	Location string
	Quantity int
}

// ReassignResult reports the rows touched by a stock move. Source is nil when
// the source row was emptied and deleted.
type ReassignResult struct {
	Source      *models.InventoryRecord
	Destination *models.InventoryRecord
}

func nextCursor(items []models.InventoryRecord, limit int) ([]models.InventoryRecord, string) {
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
