package lendinghistory

import (
	"time"

	"github.com/google/uuid"
)

// Query represents the intent to query the lending history of a member.
type Query struct {
	MemberID uuid.UUID
}

// BuildQuery creates a new Query with the provided member ID.
func BuildQuery(memberID uuid.UUID) Query {
	return Query{
		MemberID: memberID,
	}
}

// CurrentLoan is a book the member holds right now.
type CurrentLoan struct {
	BookID   string
	Title    string
	LoanDate time.Time
	DueDate  time.Time
}

// FinishedLending is a lending cycle that ended with the member returning the book.
type FinishedLending struct {
	BookID     string
	Title      string
	LoanDate   time.Time
	ReturnedAt time.Time
}

// LendingHistory is the query result.
type LendingHistory struct {
	MemberID         string
	CurrentLoans     []CurrentLoan
	FinishedLendings []FinishedLending
	SequenceNumber   uint
}
