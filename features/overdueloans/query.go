package overdueloans

import (
	"time"
)

// Query represents the intent to query the loans that are overdue on the AsOf day.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query for the given day.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: asOf,
	}
}

// OverdueLoan is a book that was not returned by its due date.
type OverdueLoan struct {
	BookID      string
	MemberID    string
	Title       string
	DueDate     time.Time
	DaysOverdue int
}

// OverdueLoans is the query result.
type OverdueLoans struct {
	AsOf           time.Time
	Loans          []OverdueLoan
	Count          int
	SequenceNumber uint
}
