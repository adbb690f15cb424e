package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/products"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// ProductsController exposes catalog management endpoints.
type ProductsController struct {
	service products.Service
	logg    *logger.Logger
}

func NewProductsController(service products.Service, logg *logger.Logger) *ProductsController {
	return &ProductsController{service: service, logg: logg}
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := validators.QueryInt(r, "limit", 0)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	result, err := c.service.List(ctx, products.ListParams{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	responses.WriteSuccess(w, listView[productView]{
		Items:      toProductViews(result.Items),
		NextCursor: result.NextCursor,
	})
}

func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	product, err := c.service.Get(ctx, id)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toProductView(product))
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input products.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	product, err := c.service.Create(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toProductView(product))
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var input products.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	product, err := c.service.Update(ctx, id, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toProductView(product))
}

func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) {
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
	responses.WriteSuccess(w, responses.MessageBody{Message: "product deleted"})
}
