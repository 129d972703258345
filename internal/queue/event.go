// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// OrderCreatedEvent is published after an order commits. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type OrderCreatedEvent struct {
	OrderID     uint64          `json:"order_id"`
	UserID      uint64          `json:"user_id"`
	TicketCount int             `json:"ticket_count"`
	Tickets     []OrderedTicket `json:"tickets"`
	CreatedAt   string          `json:"created_at"`
}

// OrderedTicket is one booked seat inside an OrderCreatedEvent.
type OrderedTicket struct {
	TicketID uint64 `json:"ticket_id"`
	FlightID uint64 `json:"flight_id"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
}
