package amqp

import (
	"testing"
	"time"
)

func TestRecordMessageRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *RecordMessage
	}{
		{"sync", NewRecordSyncMessage(42)},
		{"delete", NewRecordDeleteMessage(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := tt.msg.ToJSON()
			if err != nil {
				t.Fatalf("ToJSON() error = %v", err)
			}

			got, err := RecordMessageFromJSON(body)
			if err != nil {
				t.Fatalf("RecordMessageFromJSON() error = %v", err)
			}

			if got.Kind != tt.msg.Kind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.msg.Kind)
			}
			if got.ID != tt.msg.ID {
				t.Errorf("ID = %d, want %d", got.ID, tt.msg.ID)
			}
			if got.Timestamp.IsZero() {
				t.Error("Timestamp should not be zero after round trip")
			}
		})
	}
}

func TestNewRecordSyncMessage(t *testing.T) {
	before := time.Now()
	msg := NewRecordSyncMessage(99)

	if msg.Kind != KindRecordSync {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindRecordSync)
	}
	if msg.ID != 99 {
		t.Errorf("ID = %d, want 99", msg.ID)
	}
	if msg.Timestamp.Before(before) {
		t.Error("Timestamp should be set to creation time")
	}
}

func TestRecordMessageFromJSONInvalid(t *testing.T) {
	if _, err := RecordMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
