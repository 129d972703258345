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

// GeoHandler exposes country, city and airport CRUD. Reads require any
// authenticated user; writes are wired behind the ADMIN role.
type GeoHandler struct {
	Countries *repository.CountryRepo
	Cities    *repository.CityRepo
	Airports  *repository.AirportRepo
}

func NewGeoHandler(co *repository.CountryRepo, ci *repository.CityRepo, a *repository.AirportRepo) *GeoHandler {
	return &GeoHandler{Countries: co, Cities: ci, Airports: a}
}

type countryReq struct {
	Name string `json:"name"`
}
type cityReq struct {
	Name      string `json:"name"`
	CountryID uint64 `json:"country_id"`
}
type airportReq struct {
	Name   string  `json:"name"`
	CityID *uint64 `json:"closest_big_city_id"`
}

// ----- countries -----

func (h *GeoHandler) CreateCountry(c echo.Context) error {
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	country := model.Country{Name: req.Name}
	if err := h.Countries.Create(ctx, &country); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, country)
}

func (h *GeoHandler) ListCountries(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Countries.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GeoHandler) GetCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	country, err := h.Countries.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

func (h *GeoHandler) UpdateCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	country := model.Country{ID: id, Name: req.Name}
	if err := h.Countries.Update(ctx, country); err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

func (h *GeoHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Countries.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- cities -----

func (h *GeoHandler) CreateCity(c echo.Context) error {
	var req cityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CountryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and country_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Countries.GetByID(ctx, req.CountryID); err != nil {
		return catalogErr(c, err)
	}
	city := model.City{Name: req.Name, CountryID: req.CountryID}
	if err := h.Cities.Create(ctx, &city); err != nil {
		return catalogErr(c, err)
	}
	created, err := h.Cities.GetByID(ctx, city.ID)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *GeoHandler) ListCities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Cities.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GeoHandler) GetCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	city, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, city)
}

func (h *GeoHandler) UpdateCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CountryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and country_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Countries.GetByID(ctx, req.CountryID); err != nil {
		return catalogErr(c, err)
	}
	if err := h.Cities.Update(ctx, model.City{ID: id, Name: req.Name, CountryID: req.CountryID}); err != nil {
		return catalogErr(c, err)
	}
	updated, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *GeoHandler) DeleteCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cities.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- airports -----

func (h *GeoHandler) CreateAirport(c echo.Context) error {
	var req airportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.CityID != nil {
		if _, err := h.Cities.GetByID(ctx, *req.CityID); err != nil {
			return catalogErr(c, err)
		}
	}
	airport := model.Airport{Name: req.Name, CityID: req.CityID}
	if err := h.Airports.Create(ctx, &airport); err != nil {
		return catalogErr(c, err)
	}
	created, err := h.Airports.GetByID(ctx, airport.ID)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *GeoHandler) ListAirports(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Airports.List(ctx)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GeoHandler) GetAirport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	airport, err := h.Airports.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, airport)
}

func (h *GeoHandler) UpdateAirport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.CityID != nil {
		if _, err := h.Cities.GetByID(ctx, *req.CityID); err != nil {
			return catalogErr(c, err)
		}
	}
	if err := h.Airports.Update(ctx, model.Airport{ID: id, Name: req.Name, CityID: req.CityID}); err != nil {
		return catalogErr(c, err)
	}
	updated, err := h.Airports.GetByID(ctx, id)
	if err != nil {
		return catalogErr(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *GeoHandler) DeleteAirport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Airports.Delete(ctx, id); err != nil {
		return catalogErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
