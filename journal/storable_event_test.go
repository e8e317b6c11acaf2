package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-catalog-go/journal"
)

func Test_BuildStorableEvent(t *testing.T) {
	occurredAt := time.Now()

	tests := []struct {
		name        string
		eventType   string
		payload     string
		metadata    string
		expectedErr error
	}{
		{name: "valid", eventType: "BookLentToMember", payload: `{"BookID":"b1"}`, metadata: `{}`},
		{name: "empty_event_type", eventType: "", payload: `{}`, metadata: `{}`, expectedErr: journal.ErrEmptyEventType},
		{name: "invalid_payload", eventType: "X", payload: `{"BookID":`, metadata: `{}`, expectedErr: journal.ErrInvalidPayloadJSON},
		{name: "empty_payload", eventType: "X", payload: ``, metadata: `{}`, expectedErr: journal.ErrInvalidPayloadJSON},
		{name: "invalid_metadata", eventType: "X", payload: `{}`, metadata: `nope`, expectedErr: journal.ErrInvalidMetadataJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			event, err := journal.BuildStorableEvent(tt.eventType, occurredAt, []byte(tt.payload), []byte(tt.metadata))

			// assert
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.eventType, event.EventType)
			assert.Equal(t, occurredAt, event.OccurredAt)
			assert.JSONEq(t, tt.payload, string(event.PayloadJSON))
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	// act
	event, err := journal.BuildStorableEventWithEmptyMetadata("MemberRegistered", time.Now(), []byte(`{"MemberID":"m1"}`))

	// assert
	assert.NoError(t, err)
	assert.JSONEq(t, `{}`, string(event.MetadataJSON))
}
