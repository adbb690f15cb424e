package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Role     enums.Role
	Location string
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID  `json:"user_id"`
	Role     enums.Role `json:"role"`
	Location string     `json:"location,omitempty"`
	jwt.RegisteredClaims
}

// Actor is the authenticated caller as seen by services.
type Actor struct {
	UserID   uuid.UUID
	Role     enums.Role
	Location string
}

// CanAccessLocation reports whether the actor may read or mutate inventory at
// the given location. Superadmins are unrestricted; location-scoped admins may
// touch their own location and the unassigned pool.
func (a Actor) CanAccessLocation(location string) bool {
	if a.Role == enums.RoleSuperAdmin {
		return true
	}
	if !a.Role.IsLocationScoped() {
		return false
	}
	return location == a.Location || location == models.LocationUnassigned
}
