package core

import "strings"

// DonationInput is what a donation form produces. The ledger accepts any
// structurally valid input; Validate is the explicit boundary the form
// handlers call before reaching the ledger.
type DonationInput struct {
	Amount     Amount
	Name       string
	Email      string
	Message    string
	Anonymous  bool
	CategoryID string
}

// TestimonialInput is what a testimonial form produces.
type TestimonialInput struct {
	Name       string
	Message    string
	Role       Role
	CategoryID string
}

func (in DonationInput) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if !looksLikeEmail(in.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func (in TestimonialInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(in.Message) == "" {
		return ErrEmptyMessage
	}
	if err := in.Role.Validate(); err != nil {
		return err
	}
	return nil
}

// looksLikeEmail is the same shape check a required type=email form field
// performs: something before and after a single separating @, no spaces.
func looksLikeEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	return !strings.Contains(s[at+1:], "@")
}
