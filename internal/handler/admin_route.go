package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
)

// RouteHandler exposes route CRUD and filtered listing.
type RouteHandler struct {
	Routes   *repository.RouteRepo
	Airports *repository.AirportRepo
}

func NewRouteHandler(r *repository.RouteRepo, a *repository.AirportRepo) *RouteHandler {
	return &RouteHandler{Routes: r, Airports: a}
}

type routeReq struct {
	SourceID      uint64 `json:"source_id"`
	DestinationID uint64 `json:"destination_id"`
	Distance      uint32 `json:"distance"`
}

// validate checks the route request shape. A route from an airport to
// itself is rejected with a field error rather than a bare message.
func (req routeReq) validate() *model.ValidationError {
	var fields []model.FieldError
	if req.SourceID == 0 {
		fields = append(fields, model.FieldError{Field: "source_id", Message: "required"})
	}
	if req.DestinationID == 0 {
		fields = append(fields, model.FieldError{Field: "destination_id", Message: "required"})
	}
	if req.SourceID != 0 && req.SourceID == req.DestinationID {
		fields = append(fields, model.FieldError{Field: "destination_id", Message: "source and destination must differ"})
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

func (h *RouteHandler) Create(c echo.Context) error {
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Airports.GetByID(ctx, req.SourceID); err != nil {
		return catalogErr(c, err)
	}
	if _, err := h.Airports.GetByID(ctx, req.DestinationID); err != nil {
		return catalogErr(c, err)
	}

	route := model.Route{SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance}
	if err := h.Routes.Create(ctx, &route); err != nil {
		return catalogErr(c, err)
	}
	created, err := h.Routes.GetByID(ctx, route.ID)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns routes, optionally narrowed by ?source= and ?destination=
// substring matches on airport or city names.
func (h *RouteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Routes.List(ctx, c.QueryParam("source"), c.QueryParam("destination"))
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RouteHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	route, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Airports.GetByID(ctx, req.SourceID); err != nil {
		return catalogErr(c, err)
	}
	if _, err := h.Airports.GetByID(ctx, req.DestinationID); err != nil {
		return catalogErr(c, err)
	}
	if err := h.Routes.Update(ctx, model.Route{
		ID: id, SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance,
	}); err != nil {
		return catalogErr(c, err)
	}
	updated, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *RouteHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Routes.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
