package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/config"
	"github.com/skylane/airport-reservation/internal/handler"
	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
	"github.com/skylane/airport-reservation/internal/utils"
)

const routeTestSecret = "route-test-secret"

// fullyRoutedEcho wires every route group the server registers, so the
// tests see the same routing table as production.
func fullyRoutedEcho() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, handler.NewAuthHandler(config.Config{JWTSecret: routeTestSecret},
		repository.NewUserRepo(nil), repository.NewTokenRepo(nil)), routeTestSecret)
	RegisterCatalog(e, CatalogHandlers{
		Geo:          handler.NewGeoHandler(repository.NewCountryRepo(nil), repository.NewCityRepo(nil), repository.NewAirportRepo(nil)),
		Routes:       handler.NewRouteHandler(repository.NewRouteRepo(nil), repository.NewAirportRepo(nil)),
		Fleet:        handler.NewFleetHandler(repository.NewCrewRepo(nil), repository.NewAirplaneTypeRepo(nil), repository.NewAirplaneRepo(nil)),
		FlightAdmin:  handler.NewFlightAdminHandler(repository.NewFlightRepo(nil), repository.NewRouteRepo(nil), repository.NewAirplaneRepo(nil), repository.NewCrewRepo(nil)),
		FlightBrowse: handler.NewFlightBrowseHandler(repository.NewFlightRepo(nil)),
	}, routeTestSecret, nil)
	RegisterOrders(e, handler.NewOrderHandler(repository.NewOrderRepo(nil), nil), routeTestSecret)
	return e
}

// Orders and tickets are immutable: only POST, list and get are
// registered, so mutation attempts fall through to echo's 405.
func TestOrderRoutesRejectMutation(t *testing.T) {
	e := echo.New()
	RegisterOrders(e, handler.NewOrderHandler(repository.NewOrderRepo(nil), nil), routeTestSecret)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		req := httptest.NewRequest(method, "/v1/orders/1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// The 405 contract must survive the full routing table: no group under
// /v1 may register a catch-all that shadows method-not-allowed handling,
// and an authenticated caller gets the same answer as an anonymous one.
func TestOrderMutationRejectedWithFullRouting(t *testing.T) {
	e := fullyRoutedEcho()

	tok, err := utils.NewAccessToken(routeTestSecret, 5, model.RoleCustomer, 15)
	require.NoError(t, err)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		req := httptest.NewRequest(method, "/v1/orders/1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s anonymous", method)

		req = httptest.NewRequest(method, "/v1/orders/1", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s authenticated", method)
	}
}

// Unauthenticated requests on registered order routes are rejected by the
// JWT middleware before any handler logic runs.
func TestOrderRoutesRequireToken(t *testing.T) {
	e := echo.New()
	RegisterOrders(e, handler.NewOrderHandler(repository.NewOrderRepo(nil), nil), routeTestSecret)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
