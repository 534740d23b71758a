package http

import (
	"net/url"
	"testing"

	"givetrack/internal/core"
)

func TestParseDonationForm(t *testing.T) {
	form := url.Values{
		"amount":    {"25"},
		"name":      {"  Pat Doe "},
		"email":     {"pat@example.com"},
		"message":   {"Keep it up"},
		"anonymous": {"on"},
		"category":  {"2"},
	}

	in, err := ParseDonationForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Amount != 25 {
		t.Errorf("amount = %d, want 25", in.Amount)
	}
	if in.Name != "Pat Doe" {
		t.Errorf("name = %q, want trimmed", in.Name)
	}
	if !in.Anonymous {
		t.Errorf("anonymous flag not parsed")
	}
	if in.CategoryID != "2" {
		t.Errorf("category = %q", in.CategoryID)
	}
}

func TestParseDonationFormRejectsBadAmount(t *testing.T) {
	for _, amount := range []string{"", "abc", "25.50", "-5", "0x10"} {
		form := url.Values{"amount": {amount}, "name": {"Pat"}, "email": {"p@e.com"}}
		if _, err := ParseDonationForm(form); err == nil {
			t.Errorf("amount %q: expected error", amount)
		}
	}
}

func TestParseTestimonialForm(t *testing.T) {
	form := url.Values{
		"name":     {"Sam"},
		"message":  {"A story"},
		"role":     {"Recipient"},
		"category": {"3"},
	}

	in := ParseTestimonialForm(form)
	if in.Role != core.RoleRecipient {
		t.Errorf("role = %q, want recipient", in.Role)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	form.Set("role", "celebrity")
	in = ParseTestimonialForm(form)
	if err := in.Validate(); err == nil {
		t.Errorf("unknown role should fail validation")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"with\x00null", "withnull"},
		{"keeps\ttabs", "keeps\ttabs"},
		{"multi\nline", "multi\nline"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		in   core.Amount
		want string
	}{
		{0, "$0"},
		{5, "$5"},
		{650, "$650"},
		{1500, "$1,500"},
		{50000, "$50,000"},
		{1234567, "$1,234,567"},
		{-250, "-$250"},
	}
	for _, tt := range tests {
		if got := formatDollars(tt.in); got != tt.want {
			t.Errorf("formatDollars(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
