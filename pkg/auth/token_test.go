package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

func testJWTCfg() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stockmaster-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParse(t *testing.T) {
	userID := uuid.New()
	token, err := MintAccessToken(testJWTCfg(), time.Now(), AccessTokenPayload{
		UserID:   userID,
		Role:     enums.RoleGodownAdmin,
		Location: "Godown A",
		JTI:      "jti-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(testJWTCfg(), token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != enums.RoleGodownAdmin || claims.Location != "Godown A" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("jti mismatch: %s", claims.ID)
	}
}

func TestMintScopedRoleRequiresLocation(t *testing.T) {
	_, err := MintAccessToken(testJWTCfg(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleShopAdmin,
	})
	if err == nil {
		t.Fatal("expected error for scoped role without location")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testJWTCfg(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleSuperAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	badCfg := testJWTCfg()
	badCfg.Secret = "other-secret"
	if _, err := ParseAccessToken(badCfg, token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := MintAccessToken(testJWTCfg(), time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleSuperAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(testJWTCfg(), token); err == nil {
		t.Fatal("expected expiry failure")
	}

	// The refresh path still needs to read the jti off expired tokens.
	claims, err := ParseAccessTokenAllowExpired(testJWTCfg(), token)
	if err != nil {
		t.Fatalf("parse allow expired: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected jti on expired token")
	}
}

func TestActorCanAccessLocation(t *testing.T) {
	super := Actor{Role: enums.RoleSuperAdmin}
	if !super.CanAccessLocation("anywhere") {
		t.Fatal("superadmin must access every location")
	}

	scoped := Actor{Role: enums.RoleGodownAdmin, Location: "Godown A"}
	if !scoped.CanAccessLocation("Godown A") {
		t.Fatal("scoped admin must access own location")
	}
	if !scoped.CanAccessLocation(models.LocationUnassigned) {
		t.Fatal("scoped admin must access the pool")
	}
	if scoped.CanAccessLocation("Godown B") {
		t.Fatal("scoped admin must not access other locations")
	}
}
