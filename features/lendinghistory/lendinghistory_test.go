package lendinghistory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/features/lendinghistory"
	"github.com/AntonStoeckl/library-catalog-go/shell"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_Project_CurrentAndFinishedLoans(t *testing.T) {
	// arrange
	memberID := GivenUniqueID(t)
	otherMemberID := GivenUniqueID(t)
	book1, book2, book3 := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	day1 := Day(2025, time.January, 10)
	day2 := Day(2025, time.January, 12)

	history := catalog.DomainEvents{
		catalog.BuildBookLentToMember(book1, memberID, "Oubli", day1, day1.AddDate(0, 0, 30), day1),
		catalog.BuildBookLentToMember(book2, memberID, "Les Piafs", day2, day2.AddDate(0, 0, 30), day2),
		catalog.BuildBookLentToMember(book3, otherMemberID, "Larousse", day2, day2.AddDate(0, 0, 30), day2),
		catalog.BuildLendingBookToMemberFailed(book1.String(), memberID.String(), "book is already lent", day2),
		catalog.BuildBookReturnedByMember(book1, memberID, day2.Add(time.Hour)),
	}

	// act
	result := lendinghistory.Project(history, lendinghistory.BuildQuery(memberID), 5)

	// assert
	assert.Equal(t, memberID.String(), result.MemberID)
	assert.Equal(t, uint(5), result.SequenceNumber)

	require.Len(t, result.CurrentLoans, 1)
	assert.Equal(t, book2.String(), result.CurrentLoans[0].BookID)
	assert.Equal(t, Day(2025, time.February, 11), result.CurrentLoans[0].DueDate)

	require.Len(t, result.FinishedLendings, 1)
	assert.Equal(t, "Oubli", result.FinishedLendings[0].Title)
	assert.Equal(t, day1, result.FinishedLendings[0].LoanDate)
}

func Test_Project_EmptyHistory(t *testing.T) {
	// act
	result := lendinghistory.Project(catalog.DomainEvents{}, lendinghistory.BuildQuery(GivenUniqueID(t)), 0)

	// assert
	assert.Empty(t, result.CurrentLoans)
	assert.Empty(t, result.FinishedLendings)
}

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	now := Day(2025, time.April, 1)
	c := GivenCatalog(
		t,
		catalog.WithEventRecorder(shell.NewJournalRecorder(j)),
		catalog.WithClock(func() time.Time { return now }),
	)

	member := catalog.NewMember("Elvis", "Presley")
	require.NoError(t, c.AddMember(member))
	books := GivenBooks(t, c, 3)

	require.NoError(t, c.BorrowBook(member, books[0]))
	now = now.AddDate(0, 0, 1)
	require.NoError(t, c.BorrowBook(member, books[1]))
	require.NoError(t, c.ReturnBook(member, books[0]))

	var queryTime, unmarshalTime, businessTime time.Duration
	timing := shell.NewTimingCollector(&queryTime, &unmarshalTime, &businessTime)

	// act
	result, err := lendinghistory.NewQueryHandler(j).Handle(ctx, lendinghistory.BuildQuery(member.ID()), timing)

	// assert
	require.NoError(t, err)
	require.Len(t, result.CurrentLoans, 1)
	assert.Equal(t, books[1].ID().String(), result.CurrentLoans[0].BookID)
	require.Len(t, result.FinishedLendings, 1)
	assert.Equal(t, books[0].Title(), result.FinishedLendings[0].Title)
	assert.Positive(t, result.SequenceNumber)
	assert.Positive(t, queryTime+unmarshalTime+businessTime)
}

func Test_QueryHandler_Handle_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := lendinghistory.NewQueryHandler(GivenJournal(t)).Handle(ctx, lendinghistory.BuildQuery(GivenUniqueID(t)), shell.TimingCollector{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
