package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/locations"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// ShopsController manages retail locations. Deleting a shop returns its
// stock to the unassigned pool.
type ShopsController struct {
	service locations.Service
	logg    *logger.Logger
}

func NewShopsController(service locations.Service, logg *logger.Logger) *ShopsController {
	return &ShopsController{service: service, logg: logg}
}

func (c *ShopsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := c.service.ListShops(ctx)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toShopViews(items))
}

func (c *ShopsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input locations.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	shop, err := c.service.CreateShop(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toShopView(shop))
}

func (c *ShopsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var input locations.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	shop, err := c.service.UpdateShop(ctx, id, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toShopView(shop))
}

func (c *ShopsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.service.DeleteShop(ctx, id); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, responses.MessageBody{Message: "shop deleted"})
}
