package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	logMsgMemberRegistered     = "member registered"
	logMsgDocumentCataloged    = "document cataloged"
	logMsgBookLent             = "book lent"
	logMsgBookReturned         = "book returned"
	logMsgMemberRejected       = "adding member rejected"
	logMsgDocumentRejected     = "adding document rejected"
	logMsgLendingRejected      = "lending book rejected"
	logMsgReturningRejected    = "returning book rejected"
	logMsgRecordingEventFailed = "recording domain event failed"
	logAttrError               = "error"
	logAttrMemberID            = "member_id"
	logAttrDocumentID          = "document_id"
	logAttrBookID              = "book_id"
	logAttrKind                = "kind"
	logAttrDueDate             = "due_date"
	logAttrEventType           = "event_type"
	logAttrCount               = "count"
)

// Catalog is the library: it owns bounded collections of members and documents
// and mediates loans between them.
//
// All methods are safe for concurrent use; every compound operation runs under one mutex.
// Loans started directly through Member or Book bypass that mutex.
type Catalog struct {
	mu        sync.Mutex
	members   []*Member
	documents []Document
	now       func() time.Time
	intN      func(n int) int
	logger    Logger
	recorder  EventRecorder
}

// New creates an empty Catalog.
func New(options ...Option) (*Catalog, error) {
	c := &Catalog{
		members:   make([]*Member, 0),
		documents: make([]Document, 0),
		now:       time.Now,
		intN:      rand.IntN,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// AddMember registers a member. It fails with ErrCapacityExceeded once MaxMembers members are registered.
func (c *Catalog) AddMember(member *Member) error {
	if member == nil {
		return ErrNilMember
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.members) >= MaxMembers {
		err := fmt.Errorf("%w: the limit of %d members is reached", ErrCapacityExceeded, MaxMembers)
		c.logWarn(logMsgMemberRejected, err, logAttrMemberID, member.ID().String())

		return err
	}

	c.members = append(c.members, member)
	c.logDebug(logMsgMemberRegistered, logAttrMemberID, member.ID().String(), logAttrCount, len(c.members))

	return c.record(BuildMemberRegistered(member.ID(), member.FirstName(), member.LastName(), c.now()))
}

// AddDocument adds a document of any variant.
//
// It fails with ErrCapacityExceeded once MaxDocuments documents are held,
// and with ErrDuplicatePublicationDate when a periodical with the same publication date is already held.
func (c *Catalog) AddDocument(document Document) error {
	if document == nil {
		return ErrNilDocument
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.documents) >= MaxDocuments {
		err := fmt.Errorf("%w: the limit of %d documents is reached", ErrCapacityExceeded, MaxDocuments)
		c.logWarn(logMsgDocumentRejected, err, logAttrDocumentID, document.ID().String())

		return err
	}

	if periodical, ok := document.(*Periodical); ok {
		if err := c.checkPublicationDateIsFree(periodical); err != nil {
			c.logWarn(logMsgDocumentRejected, err, logAttrDocumentID, document.ID().String())

			return err
		}
	}

	c.documents = append(c.documents, document)
	c.logDebug(logMsgDocumentCataloged, logAttrDocumentID, document.ID().String(), logAttrKind, document.Kind().String())

	return c.record(BuildDocumentCataloged(document.ID(), document.Kind(), document.Title(), c.now()))
}

func (c *Catalog) checkPublicationDateIsFree(candidate *Periodical) error {
	for _, document := range c.documents {
		if document.Kind() != KindPeriodical {
			continue
		}

		held := document.(*Periodical) //nolint:errcheck,forcetypeassert // the Kind tag guarantees the type
		if held.PublishedOn().Equal(candidate.PublishedOn()) {
			return fmt.Errorf(
				"%w: %s is already held for %s",
				ErrDuplicatePublicationDate,
				held.Title(),
				held.PublishedOn().Format(dateLayout),
			)
		}
	}

	return nil
}

// Members returns the registered members in registration order.
func (c *Catalog) Members() []*Member {
	c.mu.Lock()
	defer c.mu.Unlock()

	members := make([]*Member, len(c.members))
	copy(members, c.members)

	return members
}

// Documents returns all documents in insertion order.
func (c *Catalog) Documents() []Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	documents := make([]Document, len(c.documents))
	copy(documents, c.documents)

	return documents
}

// Member looks up a registered member by ID.
func (c *Catalog) Member(id uuid.UUID) (*Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, member := range c.members {
		if member.ID() == id {
			return member, true
		}
	}

	return nil, false
}

// Document looks up a document by ID.
func (c *Catalog) Document(id uuid.UUID) (Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, document := range c.documents {
		if document.ID() == id {
			return document, true
		}
	}

	return nil, false
}

// FindByTitle returns the documents whose title equals the given one, ignoring case, in insertion order.
func (c *Catalog) FindByTitle(title string) []Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := make([]Document, 0)
	for _, document := range c.documents {
		if strings.EqualFold(document.Title(), title) {
			found = append(found, document)
		}
	}

	return found
}

// Books returns the documents that are books, in insertion order.
func (c *Catalog) Books() []*Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.books()
}

func (c *Catalog) books() []*Book {
	books := make([]*Book, 0)
	for _, document := range c.documents {
		if document.Kind() == KindBook {
			books = append(books, document.(*Book)) //nolint:errcheck,forcetypeassert // the Kind tag guarantees the type
		}
	}

	return books
}

// RandomBook picks one of the books uniformly. It fails with ErrEmptyCatalog when there are no books.
func (c *Catalog) RandomBook() (*Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	books := c.books()
	if len(books) == 0 {
		return nil, ErrEmptyCatalog
	}

	return books[c.intN(len(books))], nil
}

// OverdueBooks returns the books on loan whose due date lies before today, in insertion order.
func (c *Catalog) OverdueBooks() []*Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now()
	overdue := make([]*Book, 0)
	for _, book := range c.books() {
		if book.IsOverdue(today) {
			overdue = append(overdue, book)
		}
	}

	return overdue
}

// BorrowBook lends the book to the member, stamping the catalog clock's day as the loan date.
// The rules are the ones of Member.Borrow.
func (c *Catalog) BorrowBook(member *Member, book *Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if err := lend(member, book, now); err != nil {
		c.logWarn(logMsgLendingRejected, err, logAttrMemberID, memberIDOf(member), logAttrBookID, bookIDOf(book))

		return errors.Join(err, c.record(BuildLendingBookToMemberFailed(bookIDOf(book), memberIDOf(member), err.Error(), now)))
	}

	loanDate, _ := book.LoanDate()
	dueDate, _ := book.DueDate()
	c.logInfo(logMsgBookLent, logAttrMemberID, member.ID().String(), logAttrBookID, book.ID().String(), logAttrDueDate, dueDate.Format(dateLayout))

	return c.record(BuildBookLentToMember(book.ID(), member.ID(), book.Title(), loanDate, dueDate, now))
}

// ReturnBook ends the member's loan of the book. It fails with ErrNotBorrower if the book is not lent to the member.
func (c *Catalog) ReturnBook(member *Member, book *Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if err := giveBack(member, book); err != nil {
		c.logWarn(logMsgReturningRejected, err, logAttrMemberID, memberIDOf(member), logAttrBookID, bookIDOf(book))

		return errors.Join(err, c.record(BuildReturningBookFromMemberFailed(bookIDOf(book), memberIDOf(member), err.Error(), now)))
	}

	c.logInfo(logMsgBookReturned, logAttrMemberID, member.ID().String(), logAttrBookID, book.ID().String())

	return c.record(BuildBookReturnedByMember(book.ID(), member.ID(), now))
}

// String summarizes how full the catalog is, e.g.:
//
//	2 adhérents (0.1%) - 4 documents (0.8%) dont 1 livres (0.2%)
//
// The share of books is computed against MaxDocuments.
func (c *Catalog) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberCount := len(c.members)
	documentCount := len(c.documents)
	bookCount := len(c.books())

	return fmt.Sprintf(
		"%d adhérents (%.1f%%) - %d documents (%.1f%%) dont %d livres (%.1f%%)",
		memberCount, percentOf(memberCount, MaxMembers),
		documentCount, percentOf(documentCount, MaxDocuments),
		bookCount, percentOf(bookCount, MaxDocuments),
	)
}

func percentOf(count, limit int) float64 {
	return float64(count) * 100.0 / float64(limit)
}

// record hands the event to the recorder, if one is configured.
func (c *Catalog) record(event DomainEvent) error {
	if c.recorder == nil {
		return nil
	}

	if err := c.recorder.Record(event); err != nil {
		if c.logger != nil {
			c.logger.Error(logMsgRecordingEventFailed, logAttrError, err.Error(), logAttrEventType, event.EventType())
		}

		return errors.Join(ErrRecordingEventFailed, err)
	}

	return nil
}

func (c *Catalog) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Catalog) logInfo(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Catalog) logWarn(msg string, err error, args ...any) {
	if c.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		c.logger.Warn(msg, allArgs...)
	}
}

func memberIDOf(member *Member) string {
	if member == nil {
		return ""
	}

	return member.ID().String()
}

func bookIDOf(book *Book) string {
	if book == nil {
		return ""
	}

	return book.ID().String()
}
