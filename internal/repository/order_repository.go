package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skylane/airport-reservation/internal/model"
)

// OrderRepo creates and lists orders. CreateWithTickets is the only write
// path for orders and tickets in the whole system; both are immutable once
// committed.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// TicketRequest is one requested seat within an order.
type TicketRequest struct {
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	FlightID uint64 `json:"flight"`
}

// TicketRequestError ties a failure to the index of the ticket request
// that caused it, so clients can point at the offending entry.
type TicketRequestError struct {
	Index int
	Err   error
}

func (e *TicketRequestError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Index, e.Err)
}

func (e *TicketRequestError) Unwrap() error { return e.Err }

// CreateWithTickets books an order atomically. Inside one transaction it
// inserts the order row, then for every request resolves the flight's
// airplane, re-runs the seat validation and inserts the ticket. Any
// failure rolls the whole order back; nothing from a failed call is ever
// visible to other readers.
//
// The (flight, row, seat) unique key on tickets is the concurrency guard:
// when two transactions race for the same seat the second insert fails
// with a duplicate-key error at commit ordering decided by the database,
// which surfaces here as ErrSeatTaken. No availability pre-check is
// consulted; a count check would be racy and the constraint is not.
func (r *OrderRepo) CreateWithTickets(ctx context.Context, userID uint64, reqs []TicketRequest) (*model.Order, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, "INSERT INTO orders (user_id) VALUES (?)", userID)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order := &model.Order{ID: uint64(orderID), UserID: userID, Tickets: make([]model.Ticket, 0, len(reqs))}

	for i, req := range reqs {
		// resolve the layout inside the transaction; the airplane seen
		// here is the one the uniqueness constraint will be judged against
		var plane model.Airplane
		err := tx.QueryRowContext(ctx,
			`SELECT a.row_count, a.seats_in_row
			 FROM flights f JOIN airplanes a ON a.id = f.airplane_id
			 WHERE f.id=? LIMIT 1`, req.FlightID).Scan(&plane.Rows, &plane.SeatsInRow)
		if err == sql.ErrNoRows {
			return nil, &TicketRequestError{Index: i, Err: ErrFlightNotFound}
		}
		if err != nil {
			return nil, err
		}
		if _, err := plane.Capacity(); err != nil {
			return nil, err
		}
		if err := model.ValidateSeat(req.Row, req.Seat, plane); err != nil {
			return nil, &TicketRequestError{Index: i, Err: err}
		}

		tres, err := tx.ExecContext(ctx,
			"INSERT INTO tickets (row_no, seat_no, flight_id, order_id) VALUES (?,?,?,?)",
			req.Row, req.Seat, req.FlightID, orderID)
		if err != nil {
			if isDuplicateKey(err) {
				return nil, &TicketRequestError{Index: i, Err: ErrSeatTaken}
			}
			return nil, err
		}
		ticketID, err := tres.LastInsertId()
		if err != nil {
			return nil, err
		}
		order.Tickets = append(order.Tickets, model.Ticket{
			ID:       uint64(ticketID),
			Row:      req.Row,
			Seat:     req.Seat,
			FlightID: req.FlightID,
			OrderID:  order.ID,
		})
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id=?", orderID).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		// a deferred constraint failure at commit time is still a conflict
		if isDuplicateKey(err) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	committed = true
	return order, nil
}

// ListByUser returns one page of the user's orders, newest first, with
// their tickets, plus the total order count for pagination. Orders are
// strictly scoped to the requesting user.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Order, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE user_id=?", userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, created_at FROM orders WHERE user_id=? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		o.Tickets = []model.Ticket{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByIDForUser returns one order with tickets, enforcing ownership: an
// order that exists but belongs to someone else is indistinguishable from
// a missing one.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, created_at FROM orders WHERE id=? AND user_id=? LIMIT 1",
		orderID, userID).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return o, ErrOrderNotFound
	}
	if err != nil {
		return o, err
	}
	o.Tickets = []model.Ticket{}
	single := []model.Order{o}
	if err := r.attachTickets(ctx, single); err != nil {
		return o, err
	}
	return single[0], nil
}

// attachTickets loads tickets for the given orders in one query.
func (r *OrderRepo) attachTickets(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Order, len(orders))
	placeholders := make([]string, 0, len(orders))
	args := make([]interface{}, 0, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
		placeholders = append(placeholders, "?")
		args = append(args, orders[i].ID)
	}

	q := "SELECT id, row_no, seat_no, flight_id, order_id FROM tickets WHERE order_id IN (" +
		strings.Join(placeholders, ",") + ") ORDER BY flight_id, row_no, seat_no"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID); err != nil {
			return err
		}
		if o, ok := byID[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return rows.Err()
}
