package controllers

import (
	"net/http"

	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/auth"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// AuthController exposes login, refresh, and logout endpoints.
type AuthController struct {
	service auth.Service
	logg    *logger.Logger
}

func NewAuthController(service auth.Service, logg *logger.Logger) *AuthController {
	return &AuthController{service: service, logg: logg}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input auth.LoginInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	result, err := c.service.Login(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	responses.WriteSuccess(w, struct {
		AccessToken  string   `json:"accessToken"`
		RefreshToken string   `json:"refreshToken"`
		User         userView `json:"user"`
	}{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		User:         toUserView(result.User),
	})
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input auth.RefreshInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	tokens, err := c.service.Refresh(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, tokens)
}

// Logout revokes the caller's session; must run behind the auth middleware.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accessID, ok := middleware.AccessIDFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := c.service.Logout(ctx, accessID); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, responses.MessageBody{Message: "logged out"})
}
