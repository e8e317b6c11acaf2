package catalog

import (
	"errors"
	"time"
)

const (
	// MaxMembers is the maximum number of members a Catalog can hold.
	MaxMembers = 3000

	// MaxDocuments is the maximum number of documents a Catalog can hold, counting all variants.
	MaxDocuments = 500

	// MaxLoansPerMember is the maximum number of books a member can hold at the same time.
	MaxLoansPerMember = 10

	// LoanDurationDays is the number of days a book can be kept before it is due.
	LoanDurationDays = 30
)

var (
	// ErrCapacityExceeded is returned when a member or document is added to a full Catalog.
	ErrCapacityExceeded = errors.New("catalog capacity exceeded")

	// ErrDuplicatePublicationDate is returned when a second periodical with the same publication date is added.
	ErrDuplicatePublicationDate = errors.New("a periodical with the same publication date already exists")

	// ErrAlreadyBorrowed is returned when lending a book that already has a borrower.
	ErrAlreadyBorrowed = errors.New("book is already lent")

	// ErrBorrowLimitReached is returned when a member who already holds MaxLoansPerMember books borrows another one.
	ErrBorrowLimitReached = errors.New("member has too many books")

	// ErrNotBorrower is returned when a member returns a book they did not borrow.
	ErrNotBorrower = errors.New("book is not lent to this member")

	// ErrNotOnLoan is returned when the due date of a book that is not on loan is requested.
	ErrNotOnLoan = errors.New("book is not on loan")

	// ErrEmptyCatalog is returned when a random book is requested from a Catalog without books.
	ErrEmptyCatalog = errors.New("no book found in the catalog")

	// ErrMalformedFullName is returned by MemberFromString for input not shaped like "First, Last".
	ErrMalformedFullName = errors.New(`full name must be formatted as "First, Last"`)

	// ErrNilMember is returned when a nil *Member is supplied.
	ErrNilMember = errors.New("member must not be nil")

	// ErrNilBook is returned when a nil *Book is supplied.
	ErrNilBook = errors.New("book must not be nil")

	// ErrNilDocument is returned when a nil Document is supplied.
	ErrNilDocument = errors.New("document must not be nil")

	// ErrNilOption is returned by New when a nil clock or random source is configured.
	ErrNilOption = errors.New("option value must not be nil")

	// ErrRecordingEventFailed is returned when the configured EventRecorder rejects an event.
	// The state change that produced the event has been applied nevertheless.
	ErrRecordingEventFailed = errors.New("recording domain event failed")
)

// ToDate reduces a point in time to its calendar day, normalized to midnight UTC.
// Loan dates, due dates and publication dates are all calendar days.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OccurredAt represents when a domain event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
