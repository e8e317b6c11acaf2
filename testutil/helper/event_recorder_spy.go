package helper

import (
	"sync"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// EventRecorderSpy is a catalog.EventRecorder that captures the recorded domain events.
// It fails every Record call with failWith, if set.
type EventRecorderSpy struct {
	events   catalog.DomainEvents
	failWith error
	mu       sync.Mutex
}

// NewEventRecorderSpy creates an EventRecorderSpy that accepts every event.
func NewEventRecorderSpy() *EventRecorderSpy {
	return &EventRecorderSpy{events: make(catalog.DomainEvents, 0)}
}

// NewFailingEventRecorderSpy creates an EventRecorderSpy that rejects every event with err.
func NewFailingEventRecorderSpy(err error) *EventRecorderSpy {
	return &EventRecorderSpy{events: make(catalog.DomainEvents, 0), failWith: err}
}

// Record implements catalog.EventRecorder.
func (s *EventRecorderSpy) Record(event catalog.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.events = append(s.events, event)

	return nil
}

// GetEvents returns a copy of the recorded events.
func (s *EventRecorderSpy) GetEvents() catalog.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make(catalog.DomainEvents, len(s.events))
	copy(events, s.events)

	return events
}

// GetEventTypes returns the event types of the recorded events in order.
func (s *EventRecorderSpy) GetEventTypes() []string {
	events := s.GetEvents()
	eventTypes := make([]string, 0, len(events))

	for _, event := range events {
		eventTypes = append(eventTypes, event.EventType())
	}

	return eventTypes
}

// LastEvent returns the most recently recorded event, or nil.
func (s *EventRecorderSpy) LastEvent() catalog.DomainEvent {
	events := s.GetEvents()
	if len(events) == 0 {
		return nil
	}

	return events[len(events)-1]
}
