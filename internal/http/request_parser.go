// Package http provides the web server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data. It reduces duplication across the form handlers by providing
// reusable functions for form parsing and input sanitization.

package http

import (
	"net/http"
	"net/url"
	"strings"

	"givetrack/internal/core"
)

// ParseDonationForm builds a DonationInput from submitted form values. The
// values are sanitized here; validation is the handler's next step.
func ParseDonationForm(form url.Values) (core.DonationInput, error) {
	amount, err := core.ParseAmount(form.Get("amount"))
	if err != nil {
		return core.DonationInput{}, err
	}
	return core.DonationInput{
		Amount:     amount,
		Name:       sanitizeInput(form.Get("name")),
		Email:      sanitizeInput(form.Get("email")),
		Message:    sanitizeInput(form.Get("message")),
		Anonymous:  parseCheckbox(form.Get("anonymous")),
		CategoryID: sanitizeInput(form.Get("category")),
	}, nil
}

// ParseTestimonialForm builds a TestimonialInput from submitted form values.
// An invalid or missing role comes back as the zero Role so the handler's
// Validate call reports it alongside the other fields.
func ParseTestimonialForm(form url.Values) core.TestimonialInput {
	role, _ := core.ParseRole(form.Get("role"))
	return core.TestimonialInput{
		Name:       sanitizeInput(form.Get("name")),
		Message:    sanitizeInput(form.Get("message")),
		Role:       role,
		CategoryID: sanitizeInput(form.Get("category")),
	}
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure. Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
