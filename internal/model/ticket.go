package model

import (
	"fmt"
	"strings"
	"time"
)

// Ticket is a single seat reservation on a single flight. Tickets are
// created only through order booking and are immutable afterwards. No two
// tickets may share the same (flight, row, seat); the tickets table
// enforces that with a unique key.
type Ticket struct {
	ID       uint64 `json:"id"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	FlightID uint64 `json:"flight"`
	OrderID  uint64 `json:"-"`
}

// Order is a user's atomic purchase of one or more tickets. All tickets of
// an order are created in one transaction or not at all.
type Order struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// FieldError names the request field that failed and why, so clients can
// surface the problem next to the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError batches one or more field errors from a single check.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// ValidateSeat checks a proposed (row, seat) against an airplane's grid.
// Both dimensions are checked independently so a ticket that is off the
// grid in both directions reports both fields in one error. The check is
// pure and cheap; callers run it when a ticket request is parsed and again
// inside the booking transaction right before the insert.
func ValidateSeat(row, seat uint32, airplane Airplane) error {
	var fields []FieldError
	if row < 1 || row > airplane.Rows {
		fields = append(fields, FieldError{
			Field:   "row",
			Message: fmt.Sprintf("row number must be in available range: (1, %d)", airplane.Rows),
		})
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		fields = append(fields, FieldError{
			Field:   "seat",
			Message: fmt.Sprintf("seat number must be in available range: (1, %d)", airplane.SeatsInRow),
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
