package journal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-catalog-go/journal"
)

func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() journal.Filter
		validate func(t *testing.T, f journal.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() journal.Filter {
				return journal.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Empty(t, f.Items())
			},
		},
		{
			name: "event_types_are_sorted_deduplicated_and_empty_ones_dropped",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("B", "A", "", "B").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"A", "B"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "partial_predicates_are_dropped",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyPredicateOf(journal.P("MemberID", "m1"), journal.P("", "x"), journal.P("BookID", "")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Equal(t, []journal.FilterPredicate{journal.P("MemberID", "m1")}, f.Items()[0].Predicates())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_and_all_predicates",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookLentToMember").
					AndAllPredicatesOf(journal.P("MemberID", "m1"), journal.P("BookID", "b1")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				item := f.Items()[0]
				assert.Equal(t, []string{"BookLentToMember"}, item.EventTypes())
				assert.True(t, item.AllPredicatesMustMatch())
				assert.Equal(t, "BookID", item.Predicates()[0].Key())
				assert.Equal(t, "b1", item.Predicates()[0].Val())
			},
		},
		{
			name: "predicates_and_event_types",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyPredicateOf(journal.P("BookID", "b1")).
					AndAnyEventTypeOf("BookReturnedByMember", "BookLentToMember").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Equal(t, []string{"BookLentToMember", "BookReturnedByMember"}, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 1)
			},
		},
		{
			name: "or_matching_creates_multiple_items",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("MemberRegistered").
					OrMatching().
					AnyPredicateOf(journal.P("BookID", "b1")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"MemberRegistered"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[1].EventTypes())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_BranchesDoNotShareState(t *testing.T) {
	// arrange
	base := journal.BuildEventFilter().Matching().AnyEventTypeOf("A")

	// act
	first := base.AndAnyPredicateOf(journal.P("k", "1")).Finalize()
	second := base.AndAnyPredicateOf(journal.P("k", "2")).Finalize()

	// assert
	assert.Equal(t, "1", first.Items()[0].Predicates()[0].Val())
	assert.Equal(t, "2", second.Items()[0].Predicates()[0].Val())
}
