// Package messaging encodes domain events and hands them to a broker. Events reach this package
// only through the outbox relay, so a broker outage never fails a booking.
package messaging

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	EntityReservation = "reservation"

	EventCreated   = "created"
	EventCancelled = "cancelled"
)

type Envelope struct {
	Type      string          `json:"type"`
	Entity    string          `json:"entity"`
	EntityID  uuid.UUID       `json:"entity_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// ReservationData is the event body for reservation events.
type ReservationData struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ResourceID    uuid.UUID `json:"resource_id"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	StartMinute   int       `json:"start_minute"`
	EndMinute     int       `json:"end_minute"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"total_price"`
}

// RoutingKey is "<entity>.<type>", e.g. reservation.created.
func RoutingKey(entity, eventType string) string {
	return entity + "." + eventType
}

func Encode(entity, eventType string, entityID uuid.UUID, data any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Data:      raw,
		Timestamp: at.UTC(),
	})
}

func Decode(body []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(body, &env)
	return env, err
}
