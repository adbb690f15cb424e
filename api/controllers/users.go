package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/users"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// UsersController exposes account administration endpoints.
type UsersController struct {
	service users.Service
	logg    *logger.Logger
}

func NewUsersController(service users.Service, logg *logger.Logger) *UsersController {
	return &UsersController{service: service, logg: logg}
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := c.service.List(ctx)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toUserViews(items))
}

func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	user, err := c.service.Get(ctx, id)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toUserView(user))
}

func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input users.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	user, err := c.service.Create(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toUserView(user))
}

func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var input users.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	user, err := c.service.Update(ctx, id, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toUserView(user))
}

func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, responses.MessageBody{Message: "user deleted"})
}
