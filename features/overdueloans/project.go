package overdueloans

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

const hoursPerDay = 24

// Project implements the query logic to determine the overdue loans.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All lending and return events
//	WHEN: OverdueLoans query is executed for the AsOf day
//	THEN: OverdueLoans struct is returned, most overdue first
//	INCLUDES: Books still lent whose due date lies before the AsOf day
//	EXCLUDES: Returned books, and books due on the AsOf day or later
func Project(history catalog.DomainEvents, query Query, maxSequence uint) OverdueLoans {
	asOf := catalog.ToDate(query.AsOf)
	open := make(map[string]catalog.BookLentToMember)

	for _, event := range history {
		switch e := event.(type) {
		case catalog.BookLentToMember:
			open[e.BookID] = e

		case catalog.BookReturnedByMember:
			delete(open, e.BookID)
		}
	}

	loans := make([]OverdueLoan, 0)
	for _, lent := range open {
		if !lent.DueDate.Before(asOf) {
			continue
		}

		loans = append(loans, OverdueLoan{
			BookID:      lent.BookID,
			MemberID:    lent.MemberID,
			Title:       lent.Title,
			DueDate:     lent.DueDate,
			DaysOverdue: int(asOf.Sub(lent.DueDate).Hours()) / hoursPerDay,
		})
	}

	slices.SortFunc(loans, func(a, b OverdueLoan) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}

		return strings.Compare(a.BookID, b.BookID)
	})

	return OverdueLoans{
		AsOf:           asOf,
		Loans:          loans,
		Count:          len(loans),
		SequenceNumber: maxSequence,
	}
}

// BuildEventFilter creates the filter for querying all lending and return events.
func BuildEventFilter() journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			catalog.BookLentToMemberEventType,
			catalog.BookReturnedByMemberEventType,
		).
		Finalize()
}
