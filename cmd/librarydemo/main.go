package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/features/lendinghistory"
	"github.com/AntonStoeckl/library-catalog-go/features/overdueloans"
	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/shell"
)

// demoClock lets the demo lend books in the past, so that the overdue report has something to show.
type demoClock struct {
	now time.Time
}

func (c *demoClock) Now() time.Time {
	return c.now
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	logger := cfg.NewLogger()

	obsConfig, err := cfg.NewObservabilityConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to create observability providers: %v", err)
	}

	defer func() {
		if shutdownErr := obsConfig.Shutdown(ctx); shutdownErr != nil {
			log.Printf("Failed to shut down observability providers: %v", shutdownErr)
		}
	}()

	eventJournal, err := journal.New(obsConfig.JournalOptions(logger)...)
	if err != nil {
		log.Fatalf("Failed to create journal: %v", err)
	}

	today := time.Now()
	clock := &demoClock{now: today.AddDate(0, 0, -(catalog.LoanDurationDays + 5))}

	library, err := catalog.New(
		catalog.WithClock(clock.Now),
		catalog.WithLogger(logger),
		catalog.WithEventRecorder(shell.NewJournalRecorder(eventJournal)),
	)
	if err != nil {
		log.Fatalf("Failed to create catalog: %v", err)
	}

	elvis := catalog.NewMember("Elvis", "Presley")
	john := catalog.NewMember("John", "Lennon")
	book := catalog.NewBook("Oubli", "Sartre")
	secondBook := catalog.NewBook("Les Mots", "Sartre")

	if seedErr := seed(
		library,
		[]*catalog.Member{elvis, john},
		[]catalog.Document{
			catalog.NewPeriodical("Journal 1", today),
			catalog.NewDictionary("Larousse", "Bellemaire"),
			catalog.NewComic("Les Piafs", "Uderzo", "Goscinny"),
			book,
			secondBook,
		},
	); seedErr != nil {
		log.Fatalf("Failed to seed the catalog: %v", seedErr)
	}

	if lendErr := library.BorrowBook(elvis, book); lendErr != nil {
		log.Fatalf("Failed to lend %q: %v", book.Title(), lendErr)
	}

	clock.now = today
	if lendErr := library.BorrowBook(john, book); !errors.Is(lendErr, catalog.ErrAlreadyBorrowed) {
		log.Fatalf("Expected %q to be rejected as already lent, got: %v", book.Title(), lendErr)
	}

	if lendErr := library.BorrowBook(john, secondBook); lendErr != nil {
		log.Fatalf("Failed to lend %q: %v", secondBook.Title(), lendErr)
	}

	fmt.Println(library.String())
	for _, member := range library.Members() {
		fmt.Printf("  %s holds %d book(s)\n", member, member.LoanCount())
	}

	if printErr := printLendingHistory(ctx, eventJournal, elvis); printErr != nil {
		log.Fatalf("Failed to query lending history: %v", printErr)
	}

	if printErr := printOverdueLoans(ctx, eventJournal, today); printErr != nil {
		log.Fatalf("Failed to query overdue loans: %v", printErr)
	}

	summary, err := obsConfig.Summary(ctx)
	if err != nil {
		log.Printf("Failed to summarize telemetry: %v", err)
	}

	for _, line := range summary {
		fmt.Println("  " + line)
	}
}

func seed(library *catalog.Catalog, members []*catalog.Member, documents []catalog.Document) error {
	for _, member := range members {
		if err := library.AddMember(member); err != nil {
			return err
		}
	}

	for _, document := range documents {
		if err := library.AddDocument(document); err != nil {
			return err
		}
	}

	return nil
}

func printLendingHistory(ctx context.Context, eventJournal *journal.Journal, member *catalog.Member) error {
	var queryTime, unmarshalTime, businessTime time.Duration

	history, err := lendinghistory.NewQueryHandler(eventJournal).Handle(
		ctx,
		lendinghistory.BuildQuery(member.ID()),
		shell.NewTimingCollector(&queryTime, &unmarshalTime, &businessTime),
	)
	if err != nil {
		return err
	}

	fmt.Printf("Lending history of %s (query %s, unmarshal %s, projection %s):\n", member, queryTime, unmarshalTime, businessTime)
	for _, loan := range history.CurrentLoans {
		fmt.Printf("  on loan: %s since %s, due %s\n", loan.Title, loan.LoanDate.Format(time.DateOnly), loan.DueDate.Format(time.DateOnly))
	}

	for _, lending := range history.FinishedLendings {
		fmt.Printf("  returned: %s on %s\n", lending.Title, lending.ReturnedAt.Format(time.DateOnly))
	}

	return nil
}

func printOverdueLoans(ctx context.Context, eventJournal *journal.Journal, asOf time.Time) error {
	overdue, err := overdueloans.NewQueryHandler(eventJournal).Handle(ctx, overdueloans.BuildQuery(asOf), shell.TimingCollector{})
	if err != nil {
		return err
	}

	fmt.Printf("Overdue loans as of %s: %d\n", asOf.Format(time.DateOnly), overdue.Count)
	for _, loan := range overdue.Loans {
		fmt.Printf("  %s was due %s (%d days overdue)\n", loan.Title, loan.DueDate.Format(time.DateOnly), loan.DaysOverdue)
	}

	return nil
}
