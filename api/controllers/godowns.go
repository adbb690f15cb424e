package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/locations"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// GodownsController manages warehouse locations. Deleting a godown returns
// its stock to the unassigned pool.
type GodownsController struct {
	service locations.Service
	logg    *logger.Logger
}

func NewGodownsController(service locations.Service, logg *logger.Logger) *GodownsController {
	return &GodownsController{service: service, logg: logg}
}

func (c *GodownsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := c.service.ListGodowns(ctx)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toGodownViews(items))
}

func (c *GodownsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input locations.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	godown, err := c.service.CreateGodown(ctx, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toGodownView(godown))
}

func (c *GodownsController) Update(w http.ResponseWriter, r *http.Request) {
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

	godown, err := c.service.UpdateGodown(ctx, id, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toGodownView(godown))
}

func (c *GodownsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.service.DeleteGodown(ctx, id); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, responses.MessageBody{Message: "godown deleted"})
}
