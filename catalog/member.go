package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const fullNameSeparator = ", "

// Member is a registered reader of the library.
//
// The loan list references books the member currently holds; it does not own them.
type Member struct {
	id        uuid.UUID
	firstName string
	lastName  string
	loans     []*Book
}

// NewMember creates a member without loans.
func NewMember(firstName, lastName string) *Member {
	return &Member{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		loans:     make([]*Book, 0, MaxLoansPerMember),
	}
}

// MemberFromString creates a member from a "First, Last" formatted full name.
// The input must contain the ", " separator exactly once.
func MemberFromString(fullName string) (*Member, error) {
	parts := strings.Split(fullName, fullNameSeparator)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: got %q", ErrMalformedFullName, fullName)
	}

	return NewMember(parts[0], parts[1]), nil
}

// ID returns the identity assigned at construction.
func (m *Member) ID() uuid.UUID {
	return m.id
}

// FirstName returns the first name.
func (m *Member) FirstName() string {
	return m.firstName
}

// SetFirstName replaces the first name.
func (m *Member) SetFirstName(firstName string) {
	m.firstName = firstName
}

// LastName returns the last name as it was given.
func (m *Member) LastName() string {
	return m.lastName
}

// SetLastName replaces the last name.
func (m *Member) SetLastName(lastName string) {
	m.lastName = lastName
}

// Loans returns the books the member currently holds, in borrowing order.
// The returned slice is a copy.
func (m *Member) Loans() []*Book {
	return slices.Clone(m.loans)
}

// LoanCount returns the number of books the member currently holds.
func (m *Member) LoanCount() int {
	return len(m.loans)
}

// Holds reports whether the book is in the member's loan list.
func (m *Member) Holds(book *Book) bool {
	return slices.Contains(m.loans, book)
}

// Borrow lends the book to the member, stamping today's date as the loan date.
//
// It fails with ErrAlreadyBorrowed if the book has a borrower,
// or with ErrBorrowLimitReached if the member already holds MaxLoansPerMember books.
// On failure, neither the member nor the book is changed.
func (m *Member) Borrow(book *Book) error {
	return lend(m, book, time.Now())
}

// BorrowOn is Borrow with the given day as the loan date.
func (m *Member) BorrowOn(book *Book, day time.Time) error {
	return lend(m, book, day)
}

// Return gives the book back. It fails with ErrNotBorrower if the book is not lent to this member.
func (m *Member) Return(book *Book) error {
	return giveBack(m, book)
}

// String renders the member with the last name in upper case; the stored last name is unchanged.
func (m *Member) String() string {
	return "Adherent [prenom=" + m.firstName + ", nom=" + strings.ToUpper(m.lastName) + "]"
}

func (m *Member) fullName() string {
	return m.firstName + fullNameSeparator + m.lastName
}
