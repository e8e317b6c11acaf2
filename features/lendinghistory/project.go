package lendinghistory

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

// Project implements the query logic for the lending history of one member.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: The lending events of a member with MemberID
//	WHEN: LendingHistory query is executed
//	THEN: LendingHistory struct is returned
//	INCLUDES: Books currently lent (oldest loan first) and finished lendings (oldest return first)
//	EXCLUDES: Rejected lending or returning attempts, events of other members
func Project(history catalog.DomainEvents, query Query, maxSequence uint) LendingHistory {
	memberID := query.MemberID.String()
	current := make(map[string]CurrentLoan)
	finished := make([]FinishedLending, 0)

	for _, event := range history {
		switch e := event.(type) {
		case catalog.BookLentToMember:
			if e.MemberID != memberID {
				continue
			}

			current[e.BookID] = CurrentLoan{
				BookID:   e.BookID,
				Title:    e.Title,
				LoanDate: e.LoanDate,
				DueDate:  e.DueDate,
			}

		case catalog.BookReturnedByMember:
			if e.MemberID != memberID {
				continue
			}

			loan, ok := current[e.BookID]
			if !ok {
				continue
			}

			delete(current, e.BookID)
			finished = append(finished, FinishedLending{
				BookID:     e.BookID,
				Title:      loan.Title,
				LoanDate:   loan.LoanDate,
				ReturnedAt: e.OccurredAt,
			})
		}
	}

	currentLoans := make([]CurrentLoan, 0, len(current))
	for _, loan := range current {
		currentLoans = append(currentLoans, loan)
	}

	slices.SortFunc(currentLoans, func(a, b CurrentLoan) int {
		if c := a.LoanDate.Compare(b.LoanDate); c != 0 {
			return c
		}

		return strings.Compare(a.BookID, b.BookID)
	})

	slices.SortStableFunc(finished, func(a, b FinishedLending) int {
		return a.ReturnedAt.Compare(b.ReturnedAt)
	})

	return LendingHistory{
		MemberID:         memberID,
		CurrentLoans:     currentLoans,
		FinishedLendings: finished,
		SequenceNumber:   maxSequence,
	}
}

// BuildEventFilter creates the filter for querying the lending events of one member.
func BuildEventFilter(query Query) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			catalog.BookLentToMemberEventType,
			catalog.BookReturnedByMemberEventType,
		).
		AndAnyPredicateOf(
			journal.P("MemberID", query.MemberID.String()),
		).
		Finalize()
}
