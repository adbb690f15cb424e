package enums

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("godownadmin")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if role != RoleGodownAdmin {
		t.Fatalf("role = %s", role)
	}

	if _, err := ParseRole("manager"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestRoleScoping(t *testing.T) {
	if RoleSuperAdmin.IsLocationScoped() {
		t.Fatal("superadmin is not location scoped")
	}
	if !RoleGodownAdmin.IsLocationScoped() || !RoleShopAdmin.IsLocationScoped() {
		t.Fatal("godown and shop admins are location scoped")
	}
}

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		qty, min int
		want     StockStatus
	}{
		{0, 0, StockStatusOutOfStock},
		{-1, 5, StockStatusOutOfStock},
		{3, 5, StockStatusLowStock},
		{5, 5, StockStatusLowStock},
		{6, 5, StockStatusInStock},
		{100, 0, StockStatusInStock},
	}
	for _, tc := range cases {
		if got := DeriveStockStatus(tc.qty, tc.min); got != tc.want {
			t.Fatalf("DeriveStockStatus(%d, %d) = %s, want %s", tc.qty, tc.min, got, tc.want)
		}
	}
}
