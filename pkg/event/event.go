// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ContactDetected Type = "contact_detected"
	SensorOverlap   Type = "sensor_overlap"
	BodyAdded       Type = "body_added"
	BodyRemoved     Type = "body_removed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching. Publishing is
// synchronous: handlers run on the caller's goroutine, so a handler
// fired from inside World.Step must not call back into the world.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// BodyEvent reports a body entering or leaving a world
type BodyEvent struct {
	BaseEvent
	BodyID int64
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, source interface{}, bodyID int64) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
	}
}

// ContactEvent reports a narrow-phase contact between two bodies
type ContactEvent struct {
	BaseEvent
	BodyA       int64
	BodyB       int64
	Penetration float64
}

// NewContactEvent creates a new contact event
func NewContactEvent(eventType Type, source interface{}, bodyA, bodyB int64, penetration float64) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyA:       bodyA,
		BodyB:       bodyB,
		Penetration: penetration,
	}
}
