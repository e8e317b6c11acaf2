package journal

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when the event stream moved since it was queried.
	ErrConcurrencyConflict = errors.New("concurrency error, the event stream has changed")

	// ErrEmptyEventType is returned when a storable event without an event type is built.
	ErrEmptyEventType = errors.New("event type must not be empty")

	// ErrInvalidPayloadJSON is returned when the payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when the metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

	// ErrPayloadNotAnObject is returned by Append when a payload is valid JSON but not a JSON object.
	ErrPayloadNotAnObject = errors.New("payload json must be an object")
)

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number for a "dynamic event stream".
type MaxSequenceNumberUint = uint
