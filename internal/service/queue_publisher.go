// Package service publishes domain events to RabbitMQ. Errors are logged
// and swallowed so a broker outage never interrupts the request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/queue"
)

// EventPublisher pushes order events to the order.created queue. Each
// publish dials its own short-lived connection; order creation is rare
// enough that connection churn is not a concern here.
type EventPublisher struct {
	URL string
}

func NewEventPublisher(url string) *EventPublisher {
	return &EventPublisher{URL: url}
}

// PublishOrderCreated emits an OrderCreatedEvent for a committed order.
// The order is already durable in MySQL; this is a notification, so all
// failures are logged and dropped.
func (p *EventPublisher) PublishOrderCreated(ctx context.Context, order *model.Order) {
	ev := queue.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TicketCount: len(order.Tickets),
		CreatedAt:   order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range order.Tickets {
		ev.Tickets = append(ev.Tickets, queue.OrderedTicket{
			TicketID: t.ID,
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	// idempotent declare; durable so events survive broker restarts
	if _, err := ch.QueueDeclare("order.created", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", "order.created", false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
}
