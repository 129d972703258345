package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/repository"
)

// FlightBrowseHandler serves the read side of flights: filtered listing
// with availability and the seat-map detail view.
type FlightBrowseHandler struct {
	Flights *repository.FlightRepo
}

func NewFlightBrowseHandler(f *repository.FlightRepo) *FlightBrowseHandler {
	return &FlightBrowseHandler{Flights: f}
}

// timeLayouts accepted for the date filters. A bare date means midnight
// UTC, so ?departure_before=2026-01-02 excludes the whole of Jan 2.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

func parseTimeParam(c echo.Context, name string) (*time.Time, *string) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}
	msg := "must be RFC 3339 or YYYY-MM-DD"
	return nil, &msg
}

// List returns flight summaries. Supported query parameters: source,
// destination (substring matches) and departure_after, departure_before,
// arrival_after, arrival_before (timestamps or dates).
func (h *FlightBrowseHandler) List(c echo.Context) error {
	filter := repository.FlightFilter{
		Source:      c.QueryParam("source"),
		Destination: c.QueryParam("destination"),
	}

	type bound struct {
		name string
		dst  **time.Time
	}
	for _, b := range []bound{
		{"departure_after", &filter.DepartureAfter},
		{"departure_before", &filter.DepartureBefore},
		{"arrival_after", &filter.ArrivalAfter},
		{"arrival_before", &filter.ArrivalBefore},
	} {
		t, msg := parseTimeParam(c, b.name)
		if msg != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "validation failed",
				"fields": []echo.Map{{"field": b.name, "message": *msg}},
			})
		}
		*b.dst = t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Flights.List(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns the detail view of one flight, including every taken seat.
func (h *FlightBrowseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Flights.GetDetail(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}
