package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/products"
	"github.com/stockmasterhq/stockmaster-backend/pkg/auth"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

// Service exposes inventory operations to the API layer. Every mutation that
// touches quantities runs in a single transaction with the affected rows
// locked, so concurrent moves against the same stock serialize instead of
// clobbering each other.
type Service interface {
	List(ctx context.Context, actor auth.Actor, params ListParams) (*ListResult, error)
	Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.InventoryRecord, error)
	Create(ctx context.Context, actor auth.Actor, input CreateInput) (*models.InventoryRecord, error)
	Update(ctx context.Context, actor auth.Actor, id uuid.UUID, input UpdateInput) (*models.InventoryRecord, error)
	Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error
	Reassign(ctx context.Context, actor auth.Actor, input ReassignInput) (*ReassignResult, error)

	// ReleaseLocationTx returns all stock at a location to the pool inside an
	// existing transaction. Used when a godown or shop is deleted.
	ReleaseLocationTx(ctx context.Context, tx *gorm.DB, location string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx       txRunner
	repo     *Repository
	products *products.Repository
}

func NewService(tx txRunner, repo *Repository, productsRepo *products.Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("inventory service: tx runner is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("inventory service: repository is required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("inventory service: products repository is required")
	}
	return &service{tx: tx, repo: repo, products: productsRepo}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, params ListParams) (*ListResult, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	q := listQuery{Limit: limit, Cursor: cursor}
	switch {
	case params.Location != "":
		if !actor.CanAccessLocation(params.Location) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
		}
		q.Locations = []string{params.Location}
	case actor.Role.IsLocationScoped():
		q.Locations = []string{actor.Location, models.LocationUnassigned}
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	items, next := nextCursor(items, limit)
	return &ListResult{Items: items, NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.InventoryRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find inventory record")
	}
	if !actor.CanAccessLocation(record.Location) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
	}
	return record, nil
}

// Create registers incoming stock. The product is looked up by SKU and
// created on first sight; quantity lands on the (product, location) row,
// merging into an existing one rather than duplicating it.
func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*models.InventoryRecord, error) {
	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = models.LocationUnassigned
	}
	if !actor.CanAccessLocation(location) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
	}
	// Zero-quantity rows never exist, so an incoming entry must carry stock.
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.MinimumStockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimumStockLevel must not be negative")
	}
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}

	var record *models.InventoryRecord

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		productsRepo := s.products.WithTx(tx)

		product, err := productsRepo.FindBySKU(ctx, sku)
		if products.IsNotFound(err) {
			product = &models.Product{
				Name:      strings.TrimSpace(input.Name),
				SKU:       sku,
				Category:  strings.TrimSpace(input.Category),
				Unit:      unitOrDefault(input.Unit),
				Price:     input.Price,
				CostPrice: input.CostPrice,
				IsActive:  true,
			}
			if err := productsRepo.Create(ctx, product); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		existing, err := repo.FindByProductAndLocationForUpdate(ctx, product.ID, location)
		switch {
		case err == nil:
			existing.Quantity += input.Quantity
			if input.MinimumStockLevel > 0 {
				existing.MinimumStockLevel = input.MinimumStockLevel
			}
			existing.Status = enums.DeriveStockStatus(existing.Quantity, existing.MinimumStockLevel)
			if err := repo.Save(ctx, existing); err != nil {
				return err
			}
			record = existing
		case IsNotFound(err):
			record = &models.InventoryRecord{
				ProductID:         product.ID,
				Location:          location,
				Quantity:          input.Quantity,
				MinimumStockLevel: input.MinimumStockLevel,
				Name:              product.Name,
				SKU:               product.SKU,
				Category:          product.Category,
				Unit:              product.Unit,
				Status:            enums.DeriveStockStatus(input.Quantity, input.MinimumStockLevel),
				Price:             product.Price,
				CostPrice:         product.CostPrice,
			}
			if err := repo.Create(ctx, record); err != nil {
				return err
			}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory record")
	}
	return record, nil
}

// Update edits a record in place, or moves stock when a new location is
// supplied. A location change takes precedence over the other fields: the
// quantity field becomes the amount to move and name/price/costPrice/category
// edits are not applied, so clients must send those in a separate request.
// Clients may send an originalQuantity snapshot; it is ignored and the
// authoritative quantity is re-read under lock.
func (s *service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, input UpdateInput) (*models.InventoryRecord, error) {
	var updated *models.InventoryRecord

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
			}
			return err
		}
		if !actor.CanAccessLocation(record.Location) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
		}

		if input.Location != nil && strings.TrimSpace(*input.Location) != record.Location {
			dest := strings.TrimSpace(*input.Location)
			if !actor.CanAccessLocation(dest) {
				return pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
			}
			qty := record.Quantity
			if input.Quantity != nil {
				qty = *input.Quantity
			}
			result, err := moveLocked(ctx, repo, record, dest, qty)
			if err != nil {
				return err
			}
			updated = result.Destination
			return nil
		}

		if input.Quantity != nil {
			if *input.Quantity < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
			}
			record.Quantity = *input.Quantity
		}
		if input.MinimumStockLevel != nil {
			if *input.MinimumStockLevel < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "minimumStockLevel must not be negative")
			}
			record.MinimumStockLevel = *input.MinimumStockLevel
		}
		if input.Name != nil {
			record.Name = strings.TrimSpace(*input.Name)
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
			}
			record.Price = *input.Price
		}
		if input.CostPrice != nil {
			if input.CostPrice.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "costPrice must not be negative")
			}
			record.CostPrice = *input.CostPrice
		}

		// Quantity edited down to zero removes the row outright.
		if record.Quantity == 0 {
			if err := repo.Delete(ctx, record.ID); err != nil {
				return err
			}
			if err := s.cleanupProduct(ctx, tx, record.ProductID); err != nil {
				return err
			}
			record.Status = enums.DeriveStockStatus(0, record.MinimumStockLevel)
			updated = record
			return nil
		}

		record.Status = enums.DeriveStockStatus(record.Quantity, record.MinimumStockLevel)
		if err := repo.Save(ctx, record); err != nil {
			return err
		}

		if err := s.syncProduct(ctx, tx, record, input); err != nil {
			return err
		}

		updated = record
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory record")
	}
	return updated, nil
}

// syncProduct pushes edited display fields back onto the canonical product
// and out to its other inventory rows.
func (s *service) syncProduct(ctx context.Context, tx *gorm.DB, record *models.InventoryRecord, input UpdateInput) error {
	if input.Name == nil && input.Price == nil && input.CostPrice == nil && input.Category == nil {
		return nil
	}

	productsRepo := s.products.WithTx(tx)
	product, err := productsRepo.FindByID(ctx, record.ProductID)
	if err != nil {
		return err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}

	if err := productsRepo.Save(ctx, product); err != nil {
		return err
	}
	return productsRepo.SyncInventoryDisplayFields(ctx, product)
}

// Delete removes a record, returning any assigned quantity to the pool
// first. When the record was the product's last row the product is removed
// with it.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
			}
			return err
		}
		if !actor.CanAccessLocation(record.Location) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
		}

		if err := returnToPoolLocked(ctx, repo, record); err != nil {
			return err
		}
		return s.cleanupProduct(ctx, tx, record.ProductID)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory record")
	}
	return nil
}

// Reassign moves quantity between locations in one transaction.
func (s *service) Reassign(ctx context.Context, actor auth.Actor, input ReassignInput) (*ReassignResult, error) {
	var result *ReassignResult

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		source, err := repo.FindByIDForUpdate(ctx, input.RecordID)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
			}
			return err
		}
		if !actor.CanAccessLocation(source.Location) || !actor.CanAccessLocation(input.Location) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "location not accessible")
		}

		result, err = moveLocked(ctx, repo, source, input.Location, input.Quantity)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reassign inventory")
	}
	return result, nil
}

func (s *service) ReleaseLocationTx(ctx context.Context, tx *gorm.DB, location string) error {
	repo := s.repo.WithTx(tx)

	records, err := repo.ListByLocationForUpdate(ctx, location)
	if err != nil {
		return err
	}
	for i := range records {
		record := records[i]
		if err := returnToPoolLocked(ctx, repo, &record); err != nil {
			return err
		}
		if err := s.cleanupProduct(ctx, tx, record.ProductID); err != nil {
			return err
		}
	}
	return nil
}

// cleanupProduct removes the product once no inventory rows reference it.
func (s *service) cleanupProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	count, err := repo.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.products.WithTx(tx).Delete(ctx, productID)
}

func unitOrDefault(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "pcs"
	}
	return unit
}
