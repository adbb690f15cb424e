package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/pagination"
)

// Repository provides storage access for inventory records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// forUpdate adds a row lock on dialects that support it. SQLite has no row
// locks; its writes serialize on the database lock instead.
func (r *Repository) forUpdate(query *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByIDForUpdate locks and returns the record with the given id. Must be
// called inside a transaction.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	query := r.forUpdate(r.db.WithContext(ctx))
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByProductAndLocationForUpdate locks and returns the record for the
// (product, location) pair. Must be called inside a transaction.
func (r *Repository) FindByProductAndLocationForUpdate(ctx context.Context, productID uuid.UUID, location string) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	query := r.forUpdate(r.db.WithContext(ctx))
	if err := query.First(&record, "product_id = ? AND location = ?", productID, location).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Create(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *Repository) Save(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryRecord{}, "id = ?", id).Error
}

// CountByProduct returns the number of records that reference the product.
func (r *Repository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// ListByLocationForUpdate locks and returns every record at the location,
// oldest first. Must be called inside a transaction.
func (r *Repository) ListByLocationForUpdate(ctx context.Context, location string) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	query := r.forUpdate(r.db.WithContext(ctx)).
		Where("location = ?", location).
		Order("created_at ASC, id ASC")
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type listQuery struct {
	Limit  int
	Cursor *pagination.Cursor
	// Locations restricts the result set; empty means all locations.
	Locations []string
}

// List returns inventory records ordered newest first using cursor pagination.
func (r *Repository) List(ctx context.Context, q listQuery) ([]models.InventoryRecord, error) {
	query := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(q.Limit))

	if len(q.Locations) > 0 {
		query = query.Where("location IN ?", q.Locations)
	}
	if q.Cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			q.Cursor.CreatedAt, q.Cursor.ID,
		)
	}

	var records []models.InventoryRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SumQuantityByProduct returns the total stock for a product across all
// locations.
func (r *Repository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
