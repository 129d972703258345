package router

import (
	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/handler"
	"github.com/skylane/airport-reservation/internal/middleware"
	"github.com/skylane/airport-reservation/internal/model"
)

// CatalogHandlers groups everything mounted under the catalog routes.
type CatalogHandlers struct {
	Geo          *handler.GeoHandler
	Routes       *handler.RouteHandler
	Fleet        *handler.FleetHandler
	FlightAdmin  *handler.FlightAdminHandler
	FlightBrowse *handler.FlightBrowseHandler
}

// RegisterCatalog mounts the catalog under /v1. Every route requires a
// valid access token; mutating routes additionally require the ADMIN
// role. Middleware is attached per route rather than with Group.Use so
// no catch-all route is registered under /v1 and unregistered methods
// anywhere below it still reach echo's 405 handling. flightCache wraps
// only the flight listing, where short-lived staleness of
// tickets_available is acceptable.
func RegisterCatalog(e *echo.Echo, h CatalogHandlers, jwtSecret string, flightCache echo.MiddlewareFunc) {
	read := middleware.JWTAuth(jwtSecret)
	admin := []echo.MiddlewareFunc{read, middleware.RequireRole(model.RoleAdmin)}
	g := e.Group("/v1")

	g.GET("/countries", h.Geo.ListCountries, read)
	g.GET("/countries/:id", h.Geo.GetCountry, read)
	g.POST("/countries", h.Geo.CreateCountry, admin...)
	g.PUT("/countries/:id", h.Geo.UpdateCountry, admin...)
	g.DELETE("/countries/:id", h.Geo.DeleteCountry, admin...)

	g.GET("/cities", h.Geo.ListCities, read)
	g.GET("/cities/:id", h.Geo.GetCity, read)
	g.POST("/cities", h.Geo.CreateCity, admin...)
	g.PUT("/cities/:id", h.Geo.UpdateCity, admin...)
	g.DELETE("/cities/:id", h.Geo.DeleteCity, admin...)

	g.GET("/airports", h.Geo.ListAirports, read)
	g.GET("/airports/:id", h.Geo.GetAirport, read)
	g.POST("/airports", h.Geo.CreateAirport, admin...)
	g.PUT("/airports/:id", h.Geo.UpdateAirport, admin...)
	g.DELETE("/airports/:id", h.Geo.DeleteAirport, admin...)

	g.GET("/routes", h.Routes.List, read)
	g.GET("/routes/:id", h.Routes.Get, read)
	g.POST("/routes", h.Routes.Create, admin...)
	g.PUT("/routes/:id", h.Routes.Update, admin...)
	g.DELETE("/routes/:id", h.Routes.Delete, admin...)

	g.GET("/crews", h.Fleet.ListCrews, read)
	g.GET("/crews/:id", h.Fleet.GetCrew, read)
	g.POST("/crews", h.Fleet.CreateCrew, admin...)
	g.PUT("/crews/:id", h.Fleet.UpdateCrew, admin...)
	g.DELETE("/crews/:id", h.Fleet.DeleteCrew, admin...)

	g.GET("/airplane-types", h.Fleet.ListAirplaneTypes, read)
	g.GET("/airplane-types/:id", h.Fleet.GetAirplaneType, read)
	g.POST("/airplane-types", h.Fleet.CreateAirplaneType, admin...)
	g.PUT("/airplane-types/:id", h.Fleet.UpdateAirplaneType, admin...)
	g.DELETE("/airplane-types/:id", h.Fleet.DeleteAirplaneType, admin...)

	g.GET("/airplanes", h.Fleet.ListAirplanes, read)
	g.GET("/airplanes/:id", h.Fleet.GetAirplane, read)
	g.POST("/airplanes", h.Fleet.CreateAirplane, admin...)
	g.PUT("/airplanes/:id", h.Fleet.UpdateAirplane, admin...)
	g.DELETE("/airplanes/:id", h.Fleet.DeleteAirplane, admin...)

	if flightCache != nil {
		g.GET("/flights", h.FlightBrowse.List, read, flightCache)
	} else {
		g.GET("/flights", h.FlightBrowse.List, read)
	}
	g.GET("/flights/:id", h.FlightBrowse.Get, read)
	g.POST("/flights", h.FlightAdmin.Create, admin...)
	g.PUT("/flights/:id", h.FlightAdmin.Update, admin...)
	g.DELETE("/flights/:id", h.FlightAdmin.Delete, admin...)
}
