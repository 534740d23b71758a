package core

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
)

type (
	// Role identifies who is speaking in a testimonial. It is a closed
	// enumeration: only donor and recipient are permitted.
	Role string

	// Amount is a monetary value in whole currency units.
	Amount int64

	// Category is a donation cause. Image, Color and Icon are presentation
	// metadata carried through to the templates untouched.
	Category struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
		Goal        Amount `json:"goal"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}

	// Donation is a single contribution event. CategoryID is a soft
	// reference: it may point at a category that no longer exists and the
	// query layer must tolerate that. Name is stored even for anonymous
	// donations; redaction happens at display time.
	Donation struct {
		ID         string    `json:"id"`
		Amount     Amount    `json:"amount"`
		Name       string    `json:"name"`
		Email      string    `json:"email"`
		Message    string    `json:"message,omitempty"`
		Anonymous  bool      `json:"anonymous"`
		CategoryID string    `json:"categoryId"`
		Date       time.Time `json:"date"`
	}

	// Testimonial is a freeform endorsement or impact story.
	Testimonial struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Message    string    `json:"message"`
		Role       Role      `json:"role"`
		Avatar     string    `json:"avatar,omitempty"`
		CategoryID string    `json:"categoryId,omitempty"`
		Date       time.Time `json:"date"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrEmptyMessage  = errors.New("empty message")
	ErrInvalidRole   = errors.New("invalid role")
)

func (r Role) Validate() error {
	switch r {
	case RoleDonor, RoleRecipient:
		return nil
	default:
		return ErrInvalidRole
	}
}

// ParseRole converts form input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (a Amount) Validate() error {
	if a < 1 {
		return ErrInvalidAmount
	}
	return nil
}

// DisplayName returns the name to show for a donation, honouring the
// anonymous flag. The stored record keeps the real name either way.
func (d Donation) DisplayName() string {
	if d.Anonymous {
		return "Anonymous"
	}
	return d.Name
}
