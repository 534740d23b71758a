package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

func (s *Server) handleDonatePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	selected := strings.TrimSpace(r.URL.Query().Get("category"))
	if selected != "" {
		if _, ok := s.store.CategoryByID(selected); !ok {
			slog.WarnContext(r.Context(), "Donate page requested with unknown category", "category_id", selected)
			selected = ""
		}
	}

	data := struct {
		Categories []categoryView
		Selected   string
	}{
		Categories: s.categoryViews(),
		Selected:   selected,
	}

	s.render(w, r, "donate.html", data)
}

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	in, err := ParseDonationForm(r.Form)
	if err != nil {
		UnprocessableEntityError("Invalid amount").Write(w)
		return
	}
	if err := in.Validate(); err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	// Simulated payment processing pause. The gateway always accepts.
	if s.opts.SubmitDelay > 0 {
		select {
		case <-time.After(s.opts.SubmitDelay):
		case <-r.Context().Done():
			return
		}
	}

	d := s.store.AddDonation(r.Context(), in)
	s.publishDonationEvent(r.Context(), d)

	successMsg := fmt.Sprintf("Thank you, %s! Your donation of %s to %s was recorded.",
		template.HTMLEscapeString(d.DisplayName()),
		formatDollars(d.Amount),
		template.HTMLEscapeString(s.store.CategoryName(d.CategoryID)))

	NewHTMXResponse().
		TriggerDonationCreated(d.ID, d.CategoryID).
		TriggerFormReset().
		TriggerSuccessNotification(successMsg).
		BodyHTML(fmt.Sprintf(`<div class="success">%s <a href="/receipt?donation=%s">View receipt</a></div>`,
			successMsg, template.HTMLEscapeString(d.ID))).
		Write(w)
}
