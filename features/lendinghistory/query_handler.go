package lendinghistory

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/shell"
)

// EventJournal defines the interface needed by the QueryHandler for journal operations.
type EventJournal interface {
	Query(ctx context.Context, filter journal.Filter) (
		journal.StorableEvents,
		journal.MaxSequenceNumberUint,
		error,
	)
}

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	journal EventJournal
}

// NewQueryHandler creates a new QueryHandler with the provided EventJournal dependency.
func NewQueryHandler(j EventJournal) QueryHandler {
	return QueryHandler{
		journal: j,
	}
}

// Handle queries the member's lending events and delegates to Project.
// The timingCollector is optional; its zero value records nothing.
func (h QueryHandler) Handle(ctx context.Context, query Query, timingCollector shell.TimingCollector) (LendingHistory, error) {
	start := time.Now()
	storableEvents, maxSequence, err := h.journal.Query(ctx, BuildEventFilter(query))
	timingCollector.RecordQuery(time.Since(start))
	if err != nil {
		return LendingHistory{}, err
	}

	start = time.Now()
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return LendingHistory{}, err
	}
	timingCollector.RecordUnmarshal(time.Since(start))

	start = time.Now()
	result := Project(history, query, maxSequence)
	timingCollector.RecordBusiness(time.Since(start))

	return result, nil
}
