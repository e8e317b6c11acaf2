package shell

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

// ErrRecordingToJournalFailed is returned when an event could not be appended to the journal.
var ErrRecordingToJournalFailed = errors.New("recording to journal failed")

// EventJournal is the part of the journal the JournalRecorder needs.
type EventJournal interface {
	Query(ctx context.Context, filter journal.Filter) (journal.StorableEvents, journal.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter journal.Filter,
		expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
		event journal.StorableEvent,
		additionalEvents ...journal.StorableEvent,
	) error
}

// JournalRecorder implements catalog.EventRecorder by appending every domain event to a journal.
//
// Each event is appended to the "dynamic event stream" of the entities it is about,
// with the stream's current max sequence number as expectation.
// All events of one recorder share a correlation ID, and every event is caused by the previous one.
type JournalRecorder struct {
	mu            sync.Mutex
	journal       EventJournal
	correlationID uuid.UUID
	lastMessageID uuid.UUID
}

// NewJournalRecorder creates a JournalRecorder with a fresh correlation ID.
func NewJournalRecorder(j EventJournal) *JournalRecorder {
	correlationID := uuid.New()

	return &JournalRecorder{
		journal:       j,
		correlationID: correlationID,
		lastMessageID: correlationID,
	}
}

// CorrelationID returns the ID shared by all events of this recorder.
func (r *JournalRecorder) CorrelationID() uuid.UUID {
	return r.correlationID
}

// Record implements catalog.EventRecorder.
func (r *JournalRecorder) Record(event catalog.DomainEvent) error {
	return r.RecordContext(context.Background(), event)
}

// RecordContext is Record with a context for the journal operations.
func (r *JournalRecorder) RecordContext(ctx context.Context, event catalog.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	messageID, err := uuid.NewV7()
	if err != nil {
		return errors.Join(ErrRecordingToJournalFailed, err)
	}

	storableEvent, err := StorableEventFrom(event, BuildEventMetadata(messageID, r.lastMessageID, r.correlationID))
	if err != nil {
		return err
	}

	filter := StreamFilterFor(event)

	_, maxSequenceNumber, err := r.journal.Query(ctx, filter)
	if err != nil {
		return errors.Join(ErrRecordingToJournalFailed, err)
	}

	if err = r.journal.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return errors.Join(ErrRecordingToJournalFailed, err)
	}

	r.lastMessageID = messageID

	return nil
}

// StreamFilterFor returns the filter of the "dynamic event stream" a domain event belongs to.
func StreamFilterFor(event catalog.DomainEvent) journal.Filter {
	switch e := event.(type) {
	case catalog.MemberRegistered:
		return journal.BuildEventFilter().
			Matching().
			AnyEventTypeOf(catalog.MemberRegisteredEventType).
			AndAnyPredicateOf(journal.P("MemberID", e.MemberID)).
			Finalize()

	case catalog.DocumentCataloged:
		return journal.BuildEventFilter().
			Matching().
			AnyEventTypeOf(catalog.DocumentCatalogedEventType).
			AndAnyPredicateOf(journal.P("DocumentID", e.DocumentID)).
			Finalize()

	case catalog.BookLentToMember:
		return lendingStreamFilter(e.BookID, e.MemberID)

	case catalog.BookReturnedByMember:
		return lendingStreamFilter(e.BookID, e.MemberID)

	case catalog.LendingBookToMemberFailed:
		return lendingStreamFilter(e.BookID, e.MemberID)

	case catalog.ReturningBookFromMemberFailed:
		return lendingStreamFilter(e.BookID, e.MemberID)
	}

	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(event.EventType()).
		Finalize()
}

// lendingStreamFilter covers all lending events that touch the book or the member.
// Empty IDs (from rejected operations on nil entities) are dropped by the filter builder.
func lendingStreamFilter(bookID, memberID string) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			catalog.BookLentToMemberEventType,
			catalog.BookReturnedByMemberEventType,
			catalog.LendingBookToMemberFailedEventType,
			catalog.ReturningBookFromMemberFailedEventType).
		AndAnyPredicateOf(journal.P("BookID", bookID), journal.P("MemberID", memberID)).
		Finalize()
}
