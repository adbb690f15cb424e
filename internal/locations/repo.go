package locations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// Repository provides storage access for godowns and shops.
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

func (r *Repository) FindGodownByID(ctx context.Context, id uuid.UUID) (*models.Godown, error) {
	var godown models.Godown
	if err := r.db.WithContext(ctx).First(&godown, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &godown, nil
}

func (r *Repository) FindShopByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *Repository) ListGodowns(ctx context.Context) ([]models.Godown, error) {
	var godowns []models.Godown
	err := r.db.WithContext(ctx).Order("name ASC").Find(&godowns).Error
	return godowns, err
}

func (r *Repository) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error
	return shops, err
}

func (r *Repository) CreateGodown(ctx context.Context, godown *models.Godown) error {
	return r.db.WithContext(ctx).Create(godown).Error
}

func (r *Repository) CreateShop(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *Repository) SaveGodown(ctx context.Context, godown *models.Godown) error {
	return r.db.WithContext(ctx).Save(godown).Error
}

func (r *Repository) SaveShop(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *Repository) DeleteGodown(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Godown{}, "id = ?", id).Error
}

func (r *Repository) DeleteShop(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error
}

// NameInUse reports whether any godown or shop already claims the name.
// Location names share one namespace because inventory rows reference
// locations by name alone.
func (r *Repository) NameInUse(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Godown{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
