package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"givetrack/internal/core"
)

// handleTestimonials serves the testimonial wall on GET and accepts a new
// story on POST.
func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTestimonials(w, r)
	case http.MethodPost:
		s.createTestimonial(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	roleParam := strings.TrimSpace(r.URL.Query().Get("role"))
	var role core.Role
	if roleParam != "" {
		parsed, err := core.ParseRole(roleParam)
		if err != nil {
			slog.WarnContext(r.Context(), "Unknown role filter ignored", "role", roleParam)
		} else {
			role = parsed
		}
	}
	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))

	data := struct {
		Testimonials []testimonialView
		Categories   []categoryView
		Role         string
		CategoryID   string
	}{
		Testimonials: s.testimonialViews(s.store.TestimonialsByRole(role, categoryID)),
		Categories:   s.categoryViews(),
		Role:         string(role),
		CategoryID:   categoryID,
	}

	s.render(w, r, "testimonials.html", data)
}

func (s *Server) createTestimonial(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	in := ParseTestimonialForm(r.Form)
	if err := in.Validate(); err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	if s.opts.SubmitDelay > 0 {
		select {
		case <-time.After(s.opts.SubmitDelay):
		case <-r.Context().Done():
			return
		}
	}

	tm := s.store.AddTestimonial(r.Context(), in)
	s.publishTestimonialEvent(r.Context(), tm)

	NewHTMXResponse().
		TriggerTestimonialCreated(tm.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Thank you for sharing your story, " + template.HTMLEscapeString(tm.Name) + "!").
		BodyHTML(`<div class="success">Your story has been published.</div>`).
		Write(w)
}
