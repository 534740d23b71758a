package events

import (
	"testing"
	"time"
)

func TestDonationEventJSON(t *testing.T) {
	e := &DonationEvent{
		ID:         "abc",
		Amount:     250,
		CategoryID: "1",
		Anonymous:  true,
		Timestamp:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := DonationEventFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != e.ID || got.Amount != e.Amount || !got.Anonymous || !got.Timestamp.Equal(e.Timestamp) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDonationEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := DonationEventFromJSON([]byte(`{"amount":`)); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
}

func TestTestimonialEventJSON(t *testing.T) {
	e := &TestimonialEvent{ID: "t1", Role: "recipient", Timestamp: time.Now().UTC()}
	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := TestimonialEventFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Role != "recipient" || got.ID != "t1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
