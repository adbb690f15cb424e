package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockmasterhq/stockmaster-backend/api/middleware"
	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/api/validators"
	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// InventoryController exposes the stock management endpoints.
type InventoryController struct {
	service inventory.Service
	logg    *logger.Logger
}

func NewInventoryController(service inventory.Service, logg *logger.Logger) *InventoryController {
	return &InventoryController{service: service, logg: logg}
}

func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit, err := validators.QueryInt(r, "limit", 0)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	result, err := c.service.List(ctx, actor, inventory.ListParams{
		Limit:    limit,
		Cursor:   r.URL.Query().Get("cursor"),
		Location: r.URL.Query().Get("location"),
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	responses.WriteSuccess(w, listView[inventoryRecordView]{
		Items:      toInventoryRecordViews(result.Items),
		NextCursor: result.NextCursor,
	})
}

func (c *InventoryController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	record, err := c.service.Get(ctx, actor, id)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toInventoryRecordView(record))
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	var input inventory.CreateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	record, err := c.service.Create(ctx, actor, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toInventoryRecordView(record))
}

// Update edits a record; when the body carries a new location it moves stock
// instead, returning the destination row. On a move the quantity field is the
// amount to transfer and the remaining field edits are not applied.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var input inventory.UpdateInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	record, err := c.service.Update(ctx, actor, id, input)
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, toInventoryRecordView(record))
}

func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	if err := c.service.Delete(ctx, actor, id); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}
	responses.WriteSuccess(w, responses.MessageBody{Message: "inventory record deleted"})
}

type reassignBody struct {
	Location string `json:"location" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// Reassign moves quantity from one record toward a destination location.
func (c *InventoryController) Reassign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		responses.WriteError(ctx, w, c.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := validators.PathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	var body reassignBody
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	result, err := c.service.Reassign(ctx, actor, inventory.ReassignInput{
		RecordID: id,
		Location: body.Location,
		Quantity: body.Quantity,
	})
	if err != nil {
		responses.WriteError(ctx, w, c.logg, err)
		return
	}

	view := struct {
		Source      *inventoryRecordView `json:"source"`
		Destination inventoryRecordView  `json:"destination"`
	}{
		Destination: toInventoryRecordView(result.Destination),
	}
	if result.Source != nil {
		src := toInventoryRecordView(result.Source)
		view.Source = &src
	}
	responses.WriteSuccess(w, view)
}
