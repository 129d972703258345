package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
)

// FlightAdminHandler creates, updates and deletes flights. Deleting a
// flight with sold tickets is refused; orders reference those tickets
// and must stay intact.
type FlightAdminHandler struct {
	Flights *repository.FlightRepo
	Routes  *repository.RouteRepo
	Planes  *repository.AirplaneRepo
	Crews   *repository.CrewRepo
}

func NewFlightAdminHandler(f *repository.FlightRepo, r *repository.RouteRepo, p *repository.AirplaneRepo, c *repository.CrewRepo) *FlightAdminHandler {
	return &FlightAdminHandler{Flights: f, Routes: r, Planes: p, Crews: c}
}

type flightReq struct {
	RouteID       uint64    `json:"route_id"`
	AirplaneID    uint64    `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []uint64  `json:"crew_ids"`
}

func (req flightReq) validate() *model.ValidationError {
	var fields []model.FieldError
	if req.RouteID == 0 {
		fields = append(fields, model.FieldError{Field: "route_id", Message: "required"})
	}
	if req.AirplaneID == 0 {
		fields = append(fields, model.FieldError{Field: "airplane_id", Message: "required"})
	}
	if req.DepartureTime.IsZero() {
		fields = append(fields, model.FieldError{Field: "departure_time", Message: "required"})
	}
	if req.ArrivalTime.IsZero() {
		fields = append(fields, model.FieldError{Field: "arrival_time", Message: "required"})
	}
	if !req.DepartureTime.IsZero() && !req.ArrivalTime.IsZero() && !req.ArrivalTime.After(req.DepartureTime) {
		fields = append(fields, model.FieldError{Field: "arrival_time", Message: "must be after departure_time"})
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// Create schedules a flight. The same airplane cannot depart twice at the
// same instant; that unique key surfaces as 409.
func (h *FlightAdminHandler) Create(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Routes.GetByID(ctx, req.RouteID); err != nil {
		return catalogErr(c, err)
	}
	if _, err := h.Planes.GetByID(ctx, req.AirplaneID); err != nil {
		return catalogErr(c, err)
	}
	for _, crewID := range req.CrewIDs {
		if _, err := h.Crews.GetByID(ctx, crewID); err != nil {
			return catalogErr(c, err)
		}
	}

	flight := model.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		CrewIDs:       req.CrewIDs,
	}
	if err := h.Flights.Create(ctx, &flight); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, flight)
}

// Update rewrites a flight's schedule and crew. Sold seats keep their
// (row, seat) addresses on the flight.
func (h *FlightAdminHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Routes.GetByID(ctx, req.RouteID); err != nil {
		return catalogErr(c, err)
	}
	if _, err := h.Planes.GetByID(ctx, req.AirplaneID); err != nil {
		return catalogErr(c, err)
	}
	for _, crewID := range req.CrewIDs {
		if _, err := h.Crews.GetByID(ctx, crewID); err != nil {
			return catalogErr(c, err)
		}
	}

	flight := model.Flight{
		ID:            id,
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		CrewIDs:       req.CrewIDs,
	}
	if err := h.Flights.Update(ctx, flight); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, flight)
}

// Delete removes a flight that has no sold tickets.
func (h *FlightAdminHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Flights.TicketCount(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "flight has sold tickets"})
	}
	if err := h.Flights.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
