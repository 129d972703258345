// Package repository implements data access over MySQL. Sentinel errors
// defined here let handlers map failures to HTTP statuses without string
// matching: not-found values become 404, ErrDuplicate and ErrSeatTaken
// become 409, ErrEmptyOrder becomes 400.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicate signals a unique-key violation on a catalog entity
	// (country name, route pair, airplane+departure and so on).
	ErrDuplicate = errors.New("duplicate entry")

	// ErrSeatTaken is the booking conflict: another committed ticket
	// already holds the same (flight, row, seat). The client should pick
	// a different seat, not retry the same request.
	ErrSeatTaken = errors.New("seat already taken for this flight")

	// ErrEmptyOrder rejects an order with no ticket requests.
	ErrEmptyOrder = errors.New("order must contain at least one ticket")

	ErrEmailExists     = errors.New("email already exists")
	ErrCountryNotFound = errors.New("country not found")
	ErrCityNotFound    = errors.New("city not found")
	ErrAirportNotFound = errors.New("airport not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrCrewNotFound    = errors.New("crew not found")
	ErrTypeNotFound    = errors.New("airplane type not found")
	ErrPlaneNotFound   = errors.New("airplane not found")
	ErrFlightNotFound  = errors.New("flight not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// mysqlDuplicateEntry is the server error number for a unique-key violation.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate-entry error.
// This is the signal the booking transaction relies on: the unique key on
// tickets decides concurrent double-bookings, and 1062 marks the loser.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
