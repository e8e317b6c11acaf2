// Package catalog models the lending operations of a public library:
// members, the documents held by the library and the loans of books to members.
//
// The package is the functional core of the module. It owns the lending rules:
//   - a book has at most one borrower
//   - a member holds at most MaxLoansPerMember books at the same time
//   - a periodical issue is unique per publication date within one Catalog
//   - a Catalog holds at most MaxMembers members and MaxDocuments documents
//
// Loans can be started from three places: Member.Borrow, Book.BorrowBy and Catalog.BorrowBook.
// All three delegate to the same loan transition, so the rules cannot drift apart.
//
// Documents form a closed set of variants (Record, Volume, Comic, Dictionary, Periodical, Book)
// behind the sealed Document interface; use Kind to tell them apart.
//
// Typical usage:
//
//	lib, err := catalog.New(catalog.WithLogger(slog.Default()))
//	if err != nil {
//		// handle error
//	}
//
//	member, _ := catalog.MemberFromString("Jean, Dupont")
//	book := catalog.NewBook("Le Petit Prince", "Antoine de Saint-Exupéry")
//
//	_ = lib.AddMember(member)
//	_ = lib.AddDocument(book)
//
//	if err := lib.BorrowBook(member, book); errors.Is(err, catalog.ErrAlreadyBorrowed) {
//		// someone else has it
//	}
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package catalog
