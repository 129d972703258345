package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/skylane/airport-reservation/internal/config"
	"github.com/skylane/airport-reservation/internal/database"
	"github.com/skylane/airport-reservation/internal/handler"
	"github.com/skylane/airport-reservation/internal/middleware"
	"github.com/skylane/airport-reservation/internal/queue"
	"github.com/skylane/airport-reservation/internal/repository"
	"github.com/skylane/airport-reservation/internal/router"
	"github.com/skylane/airport-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and flight cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	countries := repository.NewCountryRepo(db)
	cities := repository.NewCityRepo(db)
	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	crews := repository.NewCrewRepo(db)
	types := repository.NewAirplaneTypeRepo(db)
	planes := repository.NewAirplaneRepo(db)
	flights := repository.NewFlightRepo(db)
	orders := repository.NewOrderRepo(db)

	publisher := service.NewEventPublisher(queue.BrokerURL())

	auth := handler.NewAuthHandler(cfg, users, tokens)
	catalog := router.CatalogHandlers{
		Geo:          handler.NewGeoHandler(countries, cities, airports),
		Routes:       handler.NewRouteHandler(routes, airports),
		Fleet:        handler.NewFleetHandler(crews, types, planes),
		FlightAdmin:  handler.NewFlightAdminHandler(flights, routes, planes, crews),
		FlightBrowse: handler.NewFlightBrowseHandler(flights),
	}
	orderHandler := handler.NewOrderHandler(orders, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	flightCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterCatalog(e, catalog, cfg.JWTSecret, flightCache)
	router.RegisterOrders(e, orderHandler, cfg.JWTSecret)

	go queue.StartOrderConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
