package events

import (
	"encoding/json"
	"time"
)

// Routing keys for ledger events.
const (
	DonationCreated    = "donation.created"
	TestimonialCreated = "testimonial.created"
)

// DonationEvent announces a recorded donation. It carries enough for a
// notification worker to act on without another lookup; the donor's email
// stays out of the payload.
type DonationEvent struct {
	ID         string    `json:"id"`
	Amount     int64     `json:"amount"`
	CategoryID string    `json:"categoryId"`
	Anonymous  bool      `json:"anonymous"`
	Timestamp  time.Time `json:"timestamp"`
}

// TestimonialEvent announces a recorded testimonial.
type TestimonialEvent struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *DonationEvent) ToJSON() ([]byte, error) { return json.Marshal(e) }

func DonationEventFromJSON(data []byte) (*DonationEvent, error) {
	var e DonationEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *TestimonialEvent) ToJSON() ([]byte, error) { return json.Marshal(e) }

func TestimonialEventFromJSON(data []byte) (*TestimonialEvent, error) {
	var e TestimonialEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
