package model

import "time"

// Flight is a scheduled operation of one airplane over one route.
// Invariants enforced by schema and validated at create time:
// arrival_time > departure_time, and no two flights share the same
// (airplane, departure_time) pair.
type Flight struct {
	ID            uint64    `json:"id"`
	RouteID       uint64    `json:"route_id"`
	AirplaneID    uint64    `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []uint64  `json:"crew_ids,omitempty"`
}

// FlightSummary is the list-view shape of a flight. TicketsAvailable is
// capacity minus issued tickets, computed by the repository in a single
// aggregate query so count and capacity come from one snapshot. It is a
// display value only; the booking path never consults it.
type FlightSummary struct {
	ID               uint64    `json:"id"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity uint32    `json:"airplane_capacity"`
	TicketsAvailable int64     `json:"tickets_available"`
	Crew             []string  `json:"crew"`
}

// SeatRef is an occupied (row, seat) pair shown on the flight detail view.
type SeatRef struct {
	Row  uint32 `json:"row"`
	Seat uint32 `json:"seat"`
}

// FlightDetail is the retrieve-view shape: the flight with its resolved
// route, airplane and crew, plus every seat already taken.
type FlightDetail struct {
	ID            uint64    `json:"id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Route         Route     `json:"route"`
	Airplane      Airplane  `json:"airplane"`
	Crew          []Crew    `json:"crew"`
	TakenPlaces   []SeatRef `json:"taken_places"`
}
