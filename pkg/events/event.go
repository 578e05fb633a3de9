package events

import "time"

// Event is something that happened to a reader's notebook and is worth telling
// other tabs or other services about.
type Event interface {
	// EventType is the upper-case code, e.g. TypeInsightSaved. It also picks
	// the bus subject.
	EventType() string

	// Payload is the JSON-ready body.
	Payload() map[string]interface{}

	Timestamp() time.Time
}

// BaseEvent carries any event type; NewInsightSaved builds the one the
// notebook emits.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }
