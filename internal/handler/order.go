package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// OrderPublisher emits an event after an order commits. Publishing is
// best-effort; a broker outage never fails the booking.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order *model.Order)
}

// OrderHandler creates and reads orders. There are no update or delete
// handlers: committed orders and tickets are immutable, and echo answers
// unregistered methods on these routes with 405.
type OrderHandler struct {
	Orders    *repository.OrderRepo
	Publisher OrderPublisher
}

func NewOrderHandler(o *repository.OrderRepo, p OrderPublisher) *OrderHandler {
	return &OrderHandler{Orders: o, Publisher: p}
}

type orderReq struct {
	Tickets []repository.TicketRequest `json:"tickets"`
}

type orderPage struct {
	Count    int           `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Results  []model.Order `json:"results"`
}

// Create books all requested tickets atomically. On any failure the
// response names the offending ticket by its index in the request array;
// nothing is booked.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req orderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	order, err := h.Orders.CreateWithTickets(ctx, userID, req.Tickets)
	if err != nil {
		return h.mapCreateErr(c, err)
	}

	if h.Publisher != nil {
		h.Publisher.PublishOrderCreated(ctx, order)
	}
	return c.JSON(http.StatusCreated, order)
}

// mapCreateErr translates booking failures. Conflicts on a seat are 409
// so clients know retrying the same request is pointless; everything the
// client can fix in the body is 400.
func (h *OrderHandler) mapCreateErr(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrEmptyOrder) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": []echo.Map{{"field": "tickets", "message": "order must contain at least one ticket"}},
		})
	}

	var reqErr *repository.TicketRequestError
	if errors.As(err, &reqErr) {
		body := echo.Map{"ticket": reqErr.Index}
		var verr *model.ValidationError
		switch {
		case errors.As(reqErr.Err, &verr):
			body["error"] = "validation failed"
			body["fields"] = verr.Fields
			return c.JSON(http.StatusBadRequest, body)
		case errors.Is(reqErr.Err, repository.ErrFlightNotFound):
			body["error"] = "validation failed"
			body["fields"] = []echo.Map{{"field": "flight", "message": "flight not found"}}
			return c.JSON(http.StatusBadRequest, body)
		case errors.Is(reqErr.Err, repository.ErrSeatTaken):
			body["error"] = repository.ErrSeatTaken.Error()
			return c.JSON(http.StatusConflict, body)
		}
	}
	if errors.Is(err, repository.ErrSeatTaken) {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatTaken.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// List returns one page of the caller's orders. Pagination uses ?page=
// and ?page_size= with a default of 10 and a cap of 100.
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size := queryInt(c, "page_size", defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, total, err := h.Orders.ListByUser(ctx, userID, size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, orderPage{
		Count:    total,
		Page:     page,
		PageSize: size,
		Results:  orders,
	})
}

// Get returns one of the caller's orders with its tickets. Someone else's
// order id yields 404, not 403, so order ids are not probeable.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, order)
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
