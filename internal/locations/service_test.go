package locations

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/internal/products"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:locations_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.InventoryRecord{},
		&models.Godown{},
		&models.Shop{},
		&models.User{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	inventoryService, err := inventory.NewService(
		gormTxRunner{db: conn},
		inventory.NewRepository(conn),
		products.NewRepository(conn),
	)
	require.NoError(t, err)

	svc, err := NewService(gormTxRunner{db: conn}, NewRepository(conn), inventoryService)
	require.NoError(t, err)
	return svc
}

func seedStock(t *testing.T, conn *gorm.DB, location string, qty int) uuid.UUID {
	t.Helper()

	product := &models.Product{
		Name:      "Cement Bag",
		SKU:       "SKU-" + uuid.NewString()[:8],
		Unit:      "pcs",
		Price:     decimal.NewFromInt(400),
		CostPrice: decimal.NewFromInt(320),
		IsActive:  true,
	}
	require.NoError(t, conn.Create(product).Error)

	record := &models.InventoryRecord{
		ProductID: product.ID,
		Location:  location,
		Quantity:  qty,
		Name:      product.Name,
		Unit:      product.Unit,
		Status:    enums.StockStatusInStock,
		Price:     product.Price,
		CostPrice: product.CostPrice,
	}
	require.NoError(t, conn.Create(record).Error)
	return product.ID
}

func TestCreateGodownRejectsReservedName(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.CreateGodown(context.Background(), CreateInput{Name: "unassigned"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateShopRejectsNameTakenByGodown(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.CreateGodown(context.Background(), CreateInput{Name: "Central"})
	require.NoError(t, err)

	_, err = svc.CreateShop(context.Background(), CreateInput{Name: "Central"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDeleteGodownReturnsStockToPool(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	godown, err := svc.CreateGodown(ctx, CreateInput{Name: "Godown A"})
	require.NoError(t, err)
	productID := seedStock(t, conn, "Godown A", 30)

	require.NoError(t, svc.DeleteGodown(ctx, godown.ID))

	var pool models.InventoryRecord
	require.NoError(t, conn.First(&pool, "product_id = ? AND location = ?", productID, models.LocationUnassigned).Error)
	require.Equal(t, 30, pool.Quantity)

	err = conn.First(&models.Godown{}, "id = ?", godown.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteShopReturnsStockToPool(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	shop, err := svc.CreateShop(ctx, CreateInput{Name: "Shop B"})
	require.NoError(t, err)
	productID := seedStock(t, conn, "Shop B", 12)

	require.NoError(t, svc.DeleteShop(ctx, shop.ID))

	var pool models.InventoryRecord
	require.NoError(t, conn.First(&pool, "product_id = ? AND location = ?", productID, models.LocationUnassigned).Error)
	require.Equal(t, 12, pool.Quantity)
}

func TestRenameGodownFollowsReferences(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	godown, err := svc.CreateGodown(ctx, CreateInput{Name: "Old Name"})
	require.NoError(t, err)
	productID := seedStock(t, conn, "Old Name", 9)

	user := &models.User{
		Email:        "admin@example.com",
		PasswordHash: "x",
		FullName:     "Admin",
		Role:         enums.RoleGodownAdmin,
		Location:     "Old Name",
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)

	newName := "New Name"
	updated, err := svc.UpdateGodown(ctx, godown.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, updated.Name)

	var record models.InventoryRecord
	require.NoError(t, conn.First(&record, "product_id = ?", productID).Error)
	require.Equal(t, newName, record.Location)

	var reloadedUser models.User
	require.NoError(t, conn.First(&reloadedUser, "id = ?", user.ID).Error)
	require.Equal(t, newName, reloadedUser.Location)
}

func TestDeleteGodownNotFound(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	err := svc.DeleteGodown(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
