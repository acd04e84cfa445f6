package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnixMillisMarshalsEpochMillis(t *testing.T) {
	ts := NewUnixMillis(time.Date(2025, 8, 13, 15, 53, 45, 123456789, time.UTC))

	raw, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "1755100425123" {
		t.Fatalf("unexpected encoding %s", raw)
	}

	zero, err := json.Marshal(UnixMillis{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(zero) != "0" {
		t.Fatalf("expected zero time to encode as 0, got %s", zero)
	}
}

func TestUnixMillisUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	type payload struct {
		At UnixMillis `json:"at"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"at": 1755100425123}`), &got); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if got.At.Millis() != 1755100425123 {
		t.Fatalf("unexpected millis %d", got.At.Millis())
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"at": "2025-08-13T15:53:45.123Z"}`), &got); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if got.At.Millis() != 1755100425123 {
		t.Fatalf("unexpected millis from string %d", got.At.Millis())
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"at": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.At.IsZero() {
		t.Fatalf("expected zero time for null, got %v", got.At)
	}

	if err := json.Unmarshal([]byte(`{"at": "yesterday"}`), &got); err == nil {
		t.Fatal("expected error for unparseable string")
	}
}
