package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
)

// FleetHandler exposes crew, airplane type and airplane CRUD.
type FleetHandler struct {
	Crews  *repository.CrewRepo
	Types  *repository.AirplaneTypeRepo
	Planes *repository.AirplaneRepo
}

func NewFleetHandler(c *repository.CrewRepo, t *repository.AirplaneTypeRepo, p *repository.AirplaneRepo) *FleetHandler {
	return &FleetHandler{Crews: c, Types: t, Planes: p}
}

type crewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
type typeReq struct {
	Name string `json:"name"`
}
type airplaneReq struct {
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	TypeID     uint64 `json:"airplane_type_id"`
}

// validate rejects a degenerate seat grid before it reaches the schema
// check. Both dimensions are reported at once.
func (req airplaneReq) validate() *model.ValidationError {
	var fields []model.FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, model.FieldError{Field: "name", Message: "required"})
	}
	if req.Rows < 1 {
		fields = append(fields, model.FieldError{Field: "rows", Message: "must be at least 1"})
	}
	if req.SeatsInRow < 1 {
		fields = append(fields, model.FieldError{Field: "seats_in_row", Message: "must be at least 1"})
	}
	if req.TypeID == 0 {
		fields = append(fields, model.FieldError{Field: "airplane_type_id", Message: "required"})
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// ----- crews -----

func (h *FleetHandler) CreateCrew(c echo.Context) error {
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	crew := model.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Crews.Create(ctx, &crew); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, crew)
}

func (h *FleetHandler) ListCrews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Crews.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FleetHandler) GetCrew(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	crew, err := h.Crews.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, crew)
}

func (h *FleetHandler) UpdateCrew(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	crew := model.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Crews.Update(ctx, crew); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, crew)
}

func (h *FleetHandler) DeleteCrew(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Crews.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- airplane types -----

func (h *FleetHandler) CreateAirplaneType(c echo.Context) error {
	var req typeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.AirplaneType{Name: req.Name}
	if err := h.Types.Create(ctx, &t); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *FleetHandler) ListAirplaneTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Types.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FleetHandler) GetAirplaneType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Types.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) UpdateAirplaneType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req typeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.AirplaneType{ID: id, Name: req.Name}
	if err := h.Types.Update(ctx, t); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) DeleteAirplaneType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Types.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- airplanes -----

func (h *FleetHandler) CreateAirplane(c echo.Context) error {
	var req airplaneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Types.GetByID(ctx, req.TypeID); err != nil {
		return catalogErr(c, err)
	}
	plane := model.Airplane{
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
		TypeID:     req.TypeID,
	}
	if err := h.Planes.Create(ctx, &plane); err != nil {
		return catalogErr(c, err)
	}
	created, err := h.Planes.GetByID(ctx, plane.ID)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FleetHandler) ListAirplanes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Planes.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FleetHandler) GetAirplane(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plane, err := h.Planes.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, plane)
}

func (h *FleetHandler) UpdateAirplane(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airplaneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if verr := req.validate(); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Types.GetByID(ctx, req.TypeID); err != nil {
		return catalogErr(c, err)
	}
	if err := h.Planes.Update(ctx, model.Airplane{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
		TypeID:     req.TypeID,
	}); err != nil {
		return catalogErr(c, err)
	}
	updated, err := h.Planes.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FleetHandler) DeleteAirplane(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Planes.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
