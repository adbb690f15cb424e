package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// Service manages godowns and shops. Deleting either returns its stock to the
// unassigned pool; renaming one follows the name through inventory rows and
// scoped user accounts, which reference locations by name.
type Service interface {
	ListGodowns(ctx context.Context) ([]models.Godown, error)
	CreateGodown(ctx context.Context, input CreateInput) (*models.Godown, error)
	UpdateGodown(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Godown, error)
	DeleteGodown(ctx context.Context, id uuid.UUID) error

	ListShops(ctx context.Context) ([]models.Shop, error)
	CreateShop(ctx context.Context, input CreateInput) (*models.Shop, error)
	UpdateShop(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Shop, error)
	DeleteShop(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type inventoryReleaser interface {
	ReleaseLocationTx(ctx context.Context, tx *gorm.DB, location string) error
}

type service struct {
	tx        txRunner
	repo      *Repository
	inventory inventoryReleaser
}

func NewService(tx txRunner, repo *Repository, inventory inventoryReleaser) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("locations service: tx runner is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("locations service: repository is required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("locations service: inventory releaser is required")
	}
	return &service{tx: tx, repo: repo, inventory: inventory}, nil
}

func (s *service) ListGodowns(ctx context.Context) ([]models.Godown, error) {
	godowns, err := s.repo.ListGodowns(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list godowns")
	}
	return godowns, nil
}

func (s *service) ListShops(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return shops, nil
}

func (s *service) CreateGodown(ctx context.Context, input CreateInput) (*models.Godown, error) {
	name, err := s.validateName(ctx, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	godown := &models.Godown{Name: name, Address: strings.TrimSpace(input.Address)}
	if err := s.repo.CreateGodown(ctx, godown); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create godown")
	}
	return godown, nil
}

func (s *service) CreateShop(ctx context.Context, input CreateInput) (*models.Shop, error) {
	name, err := s.validateName(ctx, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	shop := &models.Shop{Name: name, Address: strings.TrimSpace(input.Address)}
	if err := s.repo.CreateShop(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return shop, nil
}

func (s *service) UpdateGodown(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Godown, error) {
	var updated *models.Godown

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		godown, err := repo.FindGodownByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "godown not found")
			}
			return err
		}

		oldName := godown.Name
		if input.Name != nil {
			name, err := s.validateNameTx(ctx, repo, *input.Name, id)
			if err != nil {
				return err
			}
			godown.Name = name
		}
		if input.Address != nil {
			godown.Address = strings.TrimSpace(*input.Address)
		}

		if err := repo.SaveGodown(ctx, godown); err != nil {
			return err
		}
		if godown.Name != oldName {
			if err := renameLocationRefs(ctx, tx, oldName, godown.Name); err != nil {
				return err
			}
		}
		updated = godown
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update godown")
	}
	return updated, nil
}

func (s *service) UpdateShop(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Shop, error) {
	var updated *models.Shop

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		shop, err := repo.FindShopByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
			}
			return err
		}

		oldName := shop.Name
		if input.Name != nil {
			name, err := s.validateNameTx(ctx, repo, *input.Name, id)
			if err != nil {
				return err
			}
			shop.Name = name
		}
		if input.Address != nil {
			shop.Address = strings.TrimSpace(*input.Address)
		}

		if err := repo.SaveShop(ctx, shop); err != nil {
			return err
		}
		if shop.Name != oldName {
			if err := renameLocationRefs(ctx, tx, oldName, shop.Name); err != nil {
				return err
			}
		}
		updated = shop
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return updated, nil
}

func (s *service) DeleteGodown(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		godown, err := repo.FindGodownByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "godown not found")
			}
			return err
		}
		if err := s.inventory.ReleaseLocationTx(ctx, tx, godown.Name); err != nil {
			return err
		}
		return repo.DeleteGodown(ctx, id)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete godown")
	}
	return nil
}

func (s *service) DeleteShop(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		shop, err := repo.FindShopByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
			}
			return err
		}
		if err := s.inventory.ReleaseLocationTx(ctx, tx, shop.Name); err != nil {
			return err
		}
		return repo.DeleteShop(ctx, id)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	return nil
}

func (s *service) validateName(ctx context.Context, raw string, excludeID uuid.UUID) (string, error) {
	return s.validateNameTx(ctx, s.repo, raw, excludeID)
}

func (s *service) validateNameTx(ctx context.Context, repo *Repository, raw string, excludeID uuid.UUID) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.EqualFold(name, models.LocationUnassigned) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is reserved")
	}
	inUse, err := repo.NameInUse(ctx, name, excludeID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check location name")
	}
	if inUse {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "a location with this name already exists")
	}
	return name, nil
}

// renameLocationRefs follows a location rename through the tables that store
// location names denormalized.
func renameLocationRefs(ctx context.Context, tx *gorm.DB, oldName, newName string) error {
	now := time.Now().UTC()
	if err := tx.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("location = ?", oldName).
		Updates(map[string]any{"location": newName, "updated_at": now}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).
		Model(&models.User{}).
		Where("location = ?", oldName).
		Updates(map[string]any{"location": newName, "updated_at": now}).Error
}
