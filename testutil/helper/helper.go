package helper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// Day returns midnight UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock that always reports the given time.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time {
		return now
	}
}

func GivenCatalog(t testing.TB, options ...catalog.Option) *catalog.Catalog {
	c, err := catalog.New(options...)
	require.NoError(t, err, "error in arranging test data")

	return c
}

func GivenMembers(t testing.TB, c *catalog.Catalog, count int) []*catalog.Member {
	members := make([]*catalog.Member, 0, count)

	for i := range count {
		member := catalog.NewMember(fmt.Sprintf("First%d", i), fmt.Sprintf("Last%d", i))
		require.NoError(t, c.AddMember(member), "error in arranging test data")
		members = append(members, member)
	}

	return members
}

func GivenBooks(t testing.TB, c *catalog.Catalog, count int) []*catalog.Book {
	books := make([]*catalog.Book, 0, count)

	for i := range count {
		book := catalog.NewBook(fmt.Sprintf("Title %d", i), fmt.Sprintf("Author %d", i))
		require.NoError(t, c.AddDocument(book), "error in arranging test data")
		books = append(books, book)
	}

	return books
}

func GivenJournal(t testing.TB, options ...journal.Option) *journal.Journal {
	j, err := journal.New(options...)
	require.NoError(t, err, "error in arranging test data")

	return j
}

func GivenStorableEvent(t testing.TB, eventType string, payloadJSON string) journal.StorableEvent {
	event, err := journal.BuildStorableEventWithEmptyMetadata(eventType, time.Now(), []byte(payloadJSON))
	require.NoError(t, err, "error in arranging test data")

	return event
}

func QueryMaxSequenceNumberBeforeAppend(
	t testing.TB,
	ctx context.Context,
	j *journal.Journal,
	filter journal.Filter,
) journal.MaxSequenceNumberUint {

	_, maxSequenceNumber, err := j.Query(ctx, filter)
	assert.NoError(t, err, "error in arranging test data")

	return maxSequenceNumber
}

func FilterAllEventTypesForOneBook(bookID uuid.UUID) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			catalog.DocumentCatalogedEventType,
			catalog.BookLentToMemberEventType,
			catalog.BookReturnedByMemberEventType).
		AndAnyPredicateOf(journal.P("BookID", bookID.String()), journal.P("DocumentID", bookID.String())).
		Finalize()
}

func FilterAllEventTypesForOneMember(memberID uuid.UUID) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			catalog.MemberRegisteredEventType,
			catalog.BookLentToMemberEventType,
			catalog.BookReturnedByMemberEventType).
		AndAnyPredicateOf(journal.P("MemberID", memberID.String())).
		Finalize()
}
