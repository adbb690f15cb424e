package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/security"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), testPasswordCfg())
	require.NoError(t, err)
	return svc
}

func TestCreateScopedAdmin(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	user, err := svc.Create(context.Background(), CreateInput{
		Email:    "Alice@Example.com",
		Password: "long enough pw",
		FullName: "Alice",
		Role:     "godownadmin",
		Location: "Godown A",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, enums.RoleGodownAdmin, user.Role)
	require.Equal(t, "Godown A", user.Location)

	ok, err := security.VerifyPassword("long enough pw", user.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCreateScopedAdminRequiresLocation(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "bob@example.com",
		Password: "long enough pw",
		FullName: "Bob",
		Role:     "shopadmin",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateSuperadminDropsLocation(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	user, err := svc.Create(context.Background(), CreateInput{
		Email:    "root@example.com",
		Password: "long enough pw",
		FullName: "Root",
		Role:     "superadmin",
		Location: "should be ignored",
	})
	require.NoError(t, err)
	require.Empty(t, user.Location)
}

func TestCreateDuplicateEmail(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	input := CreateInput{
		Email:    "dup@example.com",
		Password: "long enough pw",
		FullName: "Dup",
		Role:     "superadmin",
	}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateRoleChangeValidatesLocation(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateInput{
		Email:    "carol@example.com",
		Password: "long enough pw",
		FullName: "Carol",
		Role:     "superadmin",
	})
	require.NoError(t, err)

	role := "godownadmin"
	_, err = svc.Update(ctx, user.ID, UpdateInput{Role: &role})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	location := "Godown B"
	updated, err := svc.Update(ctx, user.ID, UpdateInput{Role: &role, Location: &location})
	require.NoError(t, err)
	require.Equal(t, enums.RoleGodownAdmin, updated.Role)
	require.Equal(t, "Godown B", updated.Location)
}

func TestUpdatePasswordRehashes(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateInput{
		Email:    "dave@example.com",
		Password: "original password",
		FullName: "Dave",
		Role:     "superadmin",
	})
	require.NoError(t, err)

	newPassword := "rotated password"
	updated, err := svc.Update(ctx, user.ID, UpdateInput{Password: &newPassword})
	require.NoError(t, err)

	ok, err := security.VerifyPassword(newPassword, updated.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = security.VerifyPassword("original password", updated.PasswordHash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteMissingUser(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
