package model

import "fmt"

// AirplaneType is a named aircraft model, e.g. "Boeing 737".
type AirplaneType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Airplane describes one aircraft and its seat grid. Rows and SeatsInRow
// define the layout: seats are addressed as (row, seat) with both starting
// at 1. The grid is effectively immutable once a flight references the
// airplane, though the schema does not enforce that.
type Airplane struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       uint32 `json:"rows"`
	SeatsInRow uint32 `json:"seats_in_row"`
	TypeID     uint64 `json:"airplane_type_id"`
	TypeName   string `json:"airplane_type_name,omitempty"`
}

// Capacity returns rows * seats-in-row. A zero dimension means the row was
// written past the schema check and must surface as a data-integrity error,
// never as a zero capacity that listings would render as "sold out".
func Capacity(rows, seatsInRow uint32) (uint32, error) {
	if rows == 0 || seatsInRow == 0 {
		return 0, fmt.Errorf("airplane layout is corrupt: rows=%d seats_in_row=%d", rows, seatsInRow)
	}
	return rows * seatsInRow, nil
}

// Capacity is the total seat count of this airplane's grid.
func (a Airplane) Capacity() (uint32, error) {
	return Capacity(a.Rows, a.SeatsInRow)
}
