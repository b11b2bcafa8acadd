package shared

import "time"

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Events are pulled by the unit of work and saved to the outbox table in the
// same transaction as the state change.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string

	// Payload returns the event-specific data for outbox serialization.
	Payload() map[string]interface{}
}
