package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents journal.StorableEvents) (catalog.DomainEvents, error) {
	domainEvents := make(catalog.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (catalog.DomainEvent, error) {
	switch storableEvent.EventType {
	case catalog.MemberRegisteredEventType:
		return unmarshalPayload[catalog.MemberRegistered](storableEvent.PayloadJSON)

	case catalog.DocumentCatalogedEventType:
		return unmarshalPayload[catalog.DocumentCataloged](storableEvent.PayloadJSON)

	case catalog.BookLentToMemberEventType:
		return unmarshalPayload[catalog.BookLentToMember](storableEvent.PayloadJSON)

	case catalog.BookReturnedByMemberEventType:
		return unmarshalPayload[catalog.BookReturnedByMember](storableEvent.PayloadJSON)

	case catalog.LendingBookToMemberFailedEventType:
		return unmarshalPayload[catalog.LendingBookToMemberFailed](storableEvent.PayloadJSON)

	case catalog.ReturningBookFromMemberFailedEventType:
		return unmarshalPayload[catalog.ReturningBookFromMemberFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// unmarshalPayload works for every event whose payload is the JSON form of the event struct itself.
func unmarshalPayload[E catalog.DomainEvent](payloadJSON []byte) (catalog.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
