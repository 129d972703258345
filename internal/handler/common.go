// Package handler implements the HTTP layer: request parsing, auth
// context extraction and mapping repository errors to statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/repository"
)

// getUserID extracts the user_id set by the JWT middleware. JWT numeric
// claims decode as float64, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// catalogErr maps the shared repository sentinels of catalog CRUD to
// responses; specific handlers deal with their own domain errors first.
func catalogErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate entry"})
	case errors.Is(err, repository.ErrCountryNotFound),
		errors.Is(err, repository.ErrCityNotFound),
		errors.Is(err, repository.ErrAirportNotFound),
		errors.Is(err, repository.ErrRouteNotFound),
		errors.Is(err, repository.ErrCrewNotFound),
		errors.Is(err, repository.ErrTypeNotFound),
		errors.Is(err, repository.ErrPlaneNotFound),
		errors.Is(err, repository.ErrFlightNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
