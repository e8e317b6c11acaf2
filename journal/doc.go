// Package journal provides an in-memory, append-only journal of storable events
// with dynamic event streams.
//
// A "dynamic event stream" is the set of events matching a Filter. The Journal hands out
// the highest sequence number of that stream with every Query, and Append only succeeds
// if the stream did not move in the meantime (optimistic concurrency).
//
// Events can be filtered by:
//   - Event types
//   - JSON payload predicates on top-level keys
//
// Key types:
//   - Filter: Defines criteria for querying events
//   - StorableEvent: Represents an event that can be stored and retrieved
//   - Journal: The in-memory store, safe for concurrent use
//
// Common usage pattern:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			catalog.BookLentToMemberEventType,
//			catalog.BookReturnedByMemberEventType).
//		AndAnyPredicateOf(P("MemberID", memberID.String())).
//		Finalize()
//
//	events, maxSeq, err := j.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, _ := BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = j.Append(ctx, filter, maxSeq, newEvent)
//
// Nothing is persisted; a Journal lives as long as the process.
package journal
