package catalog

import (
	"fmt"
	"time"
)

// Book is a volume that can be lent to exactly one member at a time.
//
// The borrower and the loan date are only changed by the loan transition in loan.go,
// which keeps them consistent with the borrower's loan list.
type Book struct {
	Volume
	borrower *Member
	loanedOn time.Time
}

// NewBook creates a book that is not on loan.
func NewBook(title, author string) *Book {
	return &Book{Volume: Volume{record: newRecord(title), author: author}}
}

// Kind returns KindBook.
func (b *Book) Kind() Kind {
	return KindBook
}

func (b *Book) String() string {
	return "Livre [Auteur=" + b.author + ", Titre=" + b.title + "]"
}

// Borrower returns the member currently holding the book, or nil if the book is available.
func (b *Book) Borrower() *Member {
	return b.borrower
}

// IsOnLoan reports whether the book currently has a borrower.
func (b *Book) IsOnLoan() bool {
	return b.borrower != nil
}

// LoanDate returns the day the current loan started. The bool is false if the book is not on loan.
func (b *Book) LoanDate() (time.Time, bool) {
	if b.borrower == nil {
		return time.Time{}, false
	}

	return b.loanedOn, true
}

// BorrowBy lends the book to the member, stamping today's date as the loan date.
// See Member.Borrow for the rules.
func (b *Book) BorrowBy(member *Member) error {
	return lend(member, b, time.Now())
}

// BorrowByOn lends the book to the member with the given day as the loan date.
func (b *Book) BorrowByOn(member *Member, day time.Time) error {
	return lend(member, b, day)
}

// DueDate returns the day the book must be back: the loan date plus LoanDurationDays.
// It fails with ErrNotOnLoan when the book has no active loan.
func (b *Book) DueDate() (time.Time, error) {
	loanedOn, onLoan := b.LoanDate()
	if !onLoan {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNotOnLoan, b.title)
	}

	return loanedOn.AddDate(0, 0, LoanDurationDays), nil
}

// IsOverdue reports whether the book is on loan and its due date lies before the day of asOf.
func (b *Book) IsOverdue(asOf time.Time) bool {
	due, err := b.DueDate()
	if err != nil {
		return false
	}

	return due.Before(ToDate(asOf))
}
