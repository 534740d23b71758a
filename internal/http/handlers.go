package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"givetrack/internal/core"
	"givetrack/internal/ledger"
)

// categoryView is a Category decorated with its fundraising progress for
// template rendering.
type categoryView struct {
	core.Category
	RaisedDisplay string
	GoalDisplay   string
	Progress      int
}

// donationView is a display-ready donation row. Donor honours the anonymous
// flag; the raw record never reaches a template.
type donationView struct {
	ID       string
	Donor    string
	Amount   string
	Category string
	Message  string
	Date     string
}

type testimonialView struct {
	Name     string
	Message  string
	Role     string
	Avatar   string
	Category string
	Date     string
}

const displayDate = "Jan 2, 2006"

func roleLabel(r core.Role) string {
	switch r {
	case core.RoleDonor:
		return "Donor"
	case core.RoleRecipient:
		return "Recipient"
	default:
		return ""
	}
}

// categoryViews returns the catalog with progress, computed once and cached
// until the next mutation.
func (s *Server) categoryViews() []categoryView {
	if cached, ok := s.categoryCache.Get("all"); ok {
		return cached
	}

	cats := s.store.Categories()
	views := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, categoryView{
			Category:      c,
			RaisedDisplay: formatDollars(s.store.TotalByCategory(c.ID)),
			GoalDisplay:   formatDollars(c.Goal),
			Progress:      s.store.Progress(c.ID),
		})
	}
	s.categoryCache.Set("all", views)
	return views
}

func (s *Server) donationViews(ds []core.Donation) []donationView {
	views := make([]donationView, 0, len(ds))
	for _, d := range ds {
		views = append(views, donationView{
			ID:       d.ID,
			Donor:    d.DisplayName(),
			Amount:   formatDollars(d.Amount),
			Category: s.store.CategoryName(d.CategoryID),
			Message:  d.Message,
			Date:     d.Date.Format(displayDate),
		})
	}
	return views
}

func (s *Server) testimonialViews(ts []core.Testimonial) []testimonialView {
	views := make([]testimonialView, 0, len(ts))
	for _, tm := range ts {
		category := ""
		if tm.CategoryID != "" {
			category = s.store.CategoryName(tm.CategoryID)
		}
		views = append(views, testimonialView{
			Name:     tm.Name,
			Message:  tm.Message,
			Role:     roleLabel(tm.Role),
			Avatar:   tm.Avatar,
			Category: category,
			Date:     tm.Date.Format(displayDate),
		})
	}
	return views
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	testimonials := s.store.TestimonialsByRole("", "")
	if len(testimonials) > 3 {
		testimonials = testimonials[:3]
	}

	data := struct {
		Categories   []categoryView
		Recent       []donationView
		Testimonials []testimonialView
		TotalRaised  string
	}{
		Categories:   s.categoryViews(),
		Recent:       s.donationViews(s.store.RecentDonations(5)),
		Testimonials: s.testimonialViews(testimonials),
		TotalRaised:  formatDollars(ledger.SumAmounts(s.store.Donations())),
	}

	s.render(w, r, "index.html", data)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	views := s.categoryViews()

	if query != "" {
		q := strings.ToLower(query)
		filtered := make([]categoryView, 0, len(views))
		for _, v := range views {
			if strings.Contains(strings.ToLower(v.Name), q) ||
				strings.Contains(strings.ToLower(v.Description), q) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	data := struct {
		Categories []categoryView
		Query      string
	}{
		Categories: views,
		Query:      query,
	}

	s.render(w, r, "categories.html", data)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("donation"))
	if id == "" {
		NotFoundError("Receipt not found").Write(w)
		return
	}

	var donation core.Donation
	found := false
	for _, d := range s.store.Donations() {
		if d.ID == id {
			donation = d
			found = true
			break
		}
	}
	if !found {
		slog.WarnContext(r.Context(), "Receipt requested for unknown donation", "id", id)
		NotFoundError("Receipt not found").Write(w)
		return
	}

	data := struct {
		ID       string
		Donor    string
		Amount   string
		Category string
		Date     string
		Issued   string
	}{
		ID:       donation.ID,
		Donor:    donation.DisplayName(),
		Amount:   formatDollars(donation.Amount),
		Category: s.store.CategoryName(donation.CategoryID),
		Date:     donation.Date.Format(displayDate),
		Issued:   time.Now().UTC().Format(displayDate),
	}

	s.render(w, r, "receipt.html", data)
}

// render executes a page template, degrading to a plain error placeholder if
// templates failed to load at startup.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Templates unavailable</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(`<div class="error">Error rendering page</div>`))
	}
}

// groupRows resolves grouped totals into sorted, display-ready chart rows.
// Bars scale against the largest bucket the way the profile chart expects.
func (s *Server) groupRows(totals map[string]core.Amount) []groupRow {
	rows := make([]groupRow, 0, len(totals))
	var max core.Amount
	for _, amt := range totals {
		if amt > max {
			max = amt
		}
	}
	for id, amt := range totals {
		width := 0
		if max > 0 && amt > 0 {
			width = int((amt*100 + max/2) / max)
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		rows = append(rows, groupRow{
			Name:   s.store.CategoryName(id),
			Amount: formatDollars(amt),
			Width:  width,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Width != rows[j].Width {
			return rows[i].Width > rows[j].Width
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
