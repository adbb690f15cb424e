package inventory

import (
	"context"
	"strings"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// moveLocked transfers qty units from the locked source record into the
// destination location. The caller owns the transaction and must have locked
// source via FindByIDForUpdate; repo must be bound to the same transaction.
//
// The source row is deleted when it empties, and the destination row is
// merged into an existing (product, location) row when one exists. Moving a
// record onto its own location is a no-op that succeeds.
func moveLocked(ctx context.Context, repo *Repository, source *models.InventoryRecord, destLocation string, qty int) (*ReassignResult, error) {
	destLocation = strings.TrimSpace(destLocation)
	if destLocation == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination location is required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity to move must be positive")
	}

	if source.Location == destLocation {
		return &ReassignResult{Source: source, Destination: source}, nil
	}

	if qty > source.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientQty, "not enough stock at source location").
			WithDetails(map[string]any{
				"available": source.Quantity,
				"requested": qty,
				"location":  source.Location,
			})
	}

	result := &ReassignResult{}

	remaining := source.Quantity - qty
	if remaining == 0 {
		if err := repo.Delete(ctx, source.ID); err != nil {
			return nil, err
		}
	} else {
		source.Quantity = remaining
		source.Status = enums.DeriveStockStatus(remaining, source.MinimumStockLevel)
		if err := repo.Save(ctx, source); err != nil {
			return nil, err
		}
		result.Source = source
	}

	dest, err := repo.FindByProductAndLocationForUpdate(ctx, source.ProductID, destLocation)
	switch {
	case err == nil:
		dest.Quantity += qty
		dest.Status = enums.DeriveStockStatus(dest.Quantity, dest.MinimumStockLevel)
		if err := repo.Save(ctx, dest); err != nil {
			return nil, err
		}
		result.Destination = dest
	case IsNotFound(err):
		dest = &models.InventoryRecord{
			ProductID:         source.ProductID,
			Location:          destLocation,
			Quantity:          qty,
			MinimumStockLevel: source.MinimumStockLevel,
			Name:              source.Name,
			SKU:               source.SKU,
			Category:          source.Category,
			Unit:              source.Unit,
			Status:            enums.DeriveStockStatus(qty, source.MinimumStockLevel),
			Price:             source.Price,
			CostPrice:         source.CostPrice,
		}
		if err := repo.Create(ctx, dest); err != nil {
			return nil, err
		}
		result.Destination = dest
	default:
		return nil, err
	}

	return result, nil
}

// returnToPoolLocked merges the locked record's full quantity into the
// product's pool row and deletes the record. Records already in the pool are
// simply deleted. Caller owns the transaction.
func returnToPoolLocked(ctx context.Context, repo *Repository, record *models.InventoryRecord) error {
	if !record.IsUnassigned() && record.Quantity > 0 {
		if _, err := moveLocked(ctx, repo, record, models.LocationUnassigned, record.Quantity); err != nil {
			return err
		}
		return nil
	}
	return repo.Delete(ctx, record.ID)
}
