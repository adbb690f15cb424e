package products

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

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.InventoryRecord{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(gormTxRunner{db: conn}, NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateProduct(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	product, err := svc.Create(context.Background(), CreateInput{
		Name:      "Steel Rod",
		SKU:       " SKU-100 ",
		Price:     decimal.NewFromInt(150),
		CostPrice: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	require.Equal(t, "SKU-100", product.SKU)
	require.Equal(t, "pcs", product.Unit)
	require.True(t, product.IsActive)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	input := CreateInput{Name: "Steel Rod", SKU: "SKU-101"}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateProductNegativePrice(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:  "Steel Rod",
		SKU:   "SKU-102",
		Price: decimal.NewFromInt(-1),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateSyncsInventoryDisplayFields(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateInput{
		Name:      "Steel Rod",
		SKU:       "SKU-103",
		Price:     decimal.NewFromInt(150),
		CostPrice: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	record := &models.InventoryRecord{
		ProductID: product.ID,
		Location:  "Godown A",
		Quantity:  10,
		Name:      product.Name,
		Unit:      product.Unit,
		Status:    enums.StockStatusInStock,
		Price:     product.Price,
		CostPrice: product.CostPrice,
	}
	require.NoError(t, conn.Create(record).Error)

	name := "Steel Rod 10mm"
	price := decimal.NewFromInt(180)
	_, err = svc.Update(ctx, product.ID, UpdateInput{Name: &name, Price: &price})
	require.NoError(t, err)

	var reloaded models.InventoryRecord
	require.NoError(t, conn.First(&reloaded, "id = ?", record.ID).Error)
	require.Equal(t, name, reloaded.Name)
	require.True(t, price.Equal(reloaded.Price))
}

func TestGetMissingProduct(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListPagination(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, CreateInput{
			Name: fmt.Sprintf("Item %d", i),
			SKU:  fmt.Sprintf("SKU-PG-%d", i),
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, ListParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(ctx, ListParams{Limit: 3, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	require.Empty(t, second.NextCursor)
}
