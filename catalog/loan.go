package catalog

import (
	"fmt"
	"slices"
	"time"
)

// decideLending checks whether the book can be lent to the member. It changes nothing.
//
// Business Rules:
//
//	GIVEN: A book and a member
//	WHEN: the member borrows the book (from the member, the book or the catalog)
//	THEN: the book can be lent
//	ERROR: ErrAlreadyBorrowed if the book is currently lent to any member, this one included
//	ERROR: ErrBorrowLimitReached if the member already holds MaxLoansPerMember books
func decideLending(member *Member, book *Book) error {
	if member == nil {
		return ErrNilMember
	}

	if book == nil {
		return ErrNilBook
	}

	if book.borrower != nil {
		return fmt.Errorf("%w: %q", ErrAlreadyBorrowed, book.title)
	}

	if len(member.loans) >= MaxLoansPerMember {
		return fmt.Errorf("%w: %s already holds %d books", ErrBorrowLimitReached, member.fullName(), len(member.loans))
	}

	return nil
}

// decideReturn checks whether the member can give the book back. It changes nothing.
//
// Business Rules:
//
//	GIVEN: A book and a member
//	WHEN: the member returns the book
//	THEN: the loan can be closed
//	ERROR: ErrNotBorrower if the book is not lent to this member
func decideReturn(member *Member, book *Book) error {
	if member == nil {
		return ErrNilMember
	}

	if book == nil {
		return ErrNilBook
	}

	if book.borrower != member {
		return fmt.Errorf("%w: %q, %s", ErrNotBorrower, book.title, member.fullName())
	}

	return nil
}

// lend is the only place where a loan starts.
// Both sides of the association and the loan date are updated together, or not at all.
func lend(member *Member, book *Book, day time.Time) error {
	if err := decideLending(member, book); err != nil {
		return err
	}

	book.borrower = member
	book.loanedOn = ToDate(day)
	member.loans = append(member.loans, book)

	return nil
}

// giveBack is the only place where a loan ends.
func giveBack(member *Member, book *Book) error {
	if err := decideReturn(member, book); err != nil {
		return err
	}

	book.borrower = nil
	book.loanedOn = time.Time{}
	member.loans = slices.DeleteFunc(member.loans, func(held *Book) bool {
		return held == book
	})

	return nil
}
