package catalog

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MemberRegisteredEventType is the event type identifier.
	MemberRegisteredEventType = "MemberRegistered"

	// DocumentCatalogedEventType is the event type identifier.
	DocumentCatalogedEventType = "DocumentCataloged"

	// BookLentToMemberEventType is the event type identifier.
	BookLentToMemberEventType = "BookLentToMember"

	// BookReturnedByMemberEventType is the event type identifier.
	BookReturnedByMemberEventType = "BookReturnedByMember"

	// LendingBookToMemberFailedEventType is the event type identifier.
	LendingBookToMemberFailedEventType = "LendingBookToMemberFailed"

	// ReturningBookFromMemberFailedEventType is the event type identifier.
	ReturningBookFromMemberFailedEventType = "ReturningBookFromMemberFailed"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the catalog.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event represents a rejected operation.
	IsErrorEvent() bool
}

// EventRecorder receives the domain events of a Catalog, e.g., to append them to a journal.
type EventRecorder interface {
	Record(event DomainEvent) error
}

/***** MemberRegistered *****/

// MemberRegistered represents when a member was added to the catalog.
type MemberRegistered struct {
	MemberID   string
	FirstName  string
	LastName   string
	OccurredAt OccurredAt
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(memberID uuid.UUID, firstName, lastName string, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		MemberID:   memberID.String(),
		FirstName:  firstName,
		LastName:   lastName,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e MemberRegistered) EventType() string { return MemberRegisteredEventType }

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false.
func (e MemberRegistered) IsErrorEvent() bool { return false }

/***** DocumentCataloged *****/

// DocumentCataloged represents when a document was added to the catalog.
type DocumentCataloged struct {
	DocumentID string
	Kind       string
	Title      string
	OccurredAt OccurredAt
}

// BuildDocumentCataloged creates a new DocumentCataloged event.
func BuildDocumentCataloged(documentID uuid.UUID, kind Kind, title string, occurredAt time.Time) DocumentCataloged {
	return DocumentCataloged{
		DocumentID: documentID.String(),
		Kind:       kind.String(),
		Title:      title,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e DocumentCataloged) EventType() string { return DocumentCatalogedEventType }

// HasOccurredAt returns when this event occurred.
func (e DocumentCataloged) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false.
func (e DocumentCataloged) IsErrorEvent() bool { return false }

/***** BookLentToMember *****/

// BookLentToMember represents when a book was lent to a member.
type BookLentToMember struct {
	BookID     string
	MemberID   string
	Title      string
	LoanDate   time.Time
	DueDate    time.Time
	OccurredAt OccurredAt
}

// BuildBookLentToMember creates a new BookLentToMember event.
func BuildBookLentToMember(
	bookID uuid.UUID,
	memberID uuid.UUID,
	title string,
	loanDate time.Time,
	dueDate time.Time,
	occurredAt time.Time,
) BookLentToMember {

	return BookLentToMember{
		BookID:     bookID.String(),
		MemberID:   memberID.String(),
		Title:      title,
		LoanDate:   loanDate,
		DueDate:    dueDate,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookLentToMember) EventType() string { return BookLentToMemberEventType }

// HasOccurredAt returns when this event occurred.
func (e BookLentToMember) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false.
func (e BookLentToMember) IsErrorEvent() bool { return false }

/***** BookReturnedByMember *****/

// BookReturnedByMember represents when a member gave a book back.
type BookReturnedByMember struct {
	BookID     string
	MemberID   string
	OccurredAt OccurredAt
}

// BuildBookReturnedByMember creates a new BookReturnedByMember event.
func BuildBookReturnedByMember(bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) BookReturnedByMember {
	return BookReturnedByMember{
		BookID:     bookID.String(),
		MemberID:   memberID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByMember) EventType() string { return BookReturnedByMemberEventType }

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByMember) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false.
func (e BookReturnedByMember) IsErrorEvent() bool { return false }

/***** LendingBookToMemberFailed *****/

// LendingBookToMemberFailed represents when lending a book was rejected by a business rule.
type LendingBookToMemberFailed struct {
	BookID      string
	MemberID    string
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildLendingBookToMemberFailed creates a new LendingBookToMemberFailed event.
func BuildLendingBookToMemberFailed(
	bookID string,
	memberID string,
	failureInfo string,
	occurredAt time.Time,
) LendingBookToMemberFailed {

	return LendingBookToMemberFailed{
		BookID:      bookID,
		MemberID:    memberID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LendingBookToMemberFailed) EventType() string { return LendingBookToMemberFailedEventType }

// HasOccurredAt returns when this event occurred.
func (e LendingBookToMemberFailed) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns true.
func (e LendingBookToMemberFailed) IsErrorEvent() bool { return true }

/***** ReturningBookFromMemberFailed *****/

// ReturningBookFromMemberFailed represents when returning a book was rejected by a business rule.
type ReturningBookFromMemberFailed struct {
	BookID      string
	MemberID    string
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildReturningBookFromMemberFailed creates a new ReturningBookFromMemberFailed event.
func BuildReturningBookFromMemberFailed(
	bookID string,
	memberID string,
	failureInfo string,
	occurredAt time.Time,
) ReturningBookFromMemberFailed {

	return ReturningBookFromMemberFailed{
		BookID:      bookID,
		MemberID:    memberID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReturningBookFromMemberFailed) EventType() string { return ReturningBookFromMemberFailedEventType }

// HasOccurredAt returns when this event occurred.
func (e ReturningBookFromMemberFailed) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns true.
func (e ReturningBookFromMemberFailed) IsErrorEvent() bool { return true }
