package amqp

import (
	"testing"
	"time"
)

func TestExpenseExportMessageRoundTrip(t *testing.T) {
	msg := NewExpenseExportMessage(7, 3)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := ExpenseExportMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.ID != 7 {
		t.Errorf("expected ID 7, got %d", decoded.ID)
	}
	if decoded.UserID != 3 {
		t.Errorf("expected UserID 3, got %d", decoded.UserID)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestExpenseExportMessageFromInvalidJSON(t *testing.T) {
	if _, err := ExpenseExportMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNewExpenseExportMessageTimestampRecent(t *testing.T) {
	msg := NewExpenseExportMessage(1, 1)
	if time.Since(msg.Timestamp) > time.Minute {
		t.Error("timestamp should be set to now")
	}
}
