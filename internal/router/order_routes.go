package router

import (
	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/handler"
	"github.com/skylane/airport-reservation/internal/middleware"
)

// RegisterOrders mounts the order endpoints. Only POST, list and get are
// registered; orders are immutable, so PUT/PATCH/DELETE must answer 405.
// JWTAuth is attached per route, not via Group.Use: a group-level Use
// registers a catch-all route that would swallow unregistered methods
// with 404 instead of letting echo's method-not-allowed handling run.
func RegisterOrders(e *echo.Echo, o *handler.OrderHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	g := e.Group("/v1/orders")

	g.POST("", o.Create, auth)
	g.GET("", o.List, auth)
	g.GET("/:id", o.Get, auth)
}
