package http

import (
	"net/http"
	"strings"

	"givetrack/internal/ledger"
)

// profileSummary is the donation history page's aggregate block for one
// category/window filter combination.
type profileSummary struct {
	Total     string
	Count     int
	Groups    []groupRow
	Donations []donationView
}

type groupRow struct {
	Name   string
	Amount string
	Width  int
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))
	window := ledger.ParseWindow(strings.TrimSpace(r.URL.Query().Get("window")))

	cacheKey := categoryID + "|" + string(window)
	summary, ok := s.summaryCache.Get(cacheKey)
	if !ok {
		donations := s.store.FilterDonations(categoryID, window)
		summary = profileSummary{
			Total:     formatDollars(ledger.SumAmounts(donations)),
			Count:     len(donations),
			Groups:    s.groupRows(ledger.GroupTotals(donations)),
			Donations: s.donationViews(donations),
		}
		s.summaryCache.Set(cacheKey, summary)
	}

	data := struct {
		Summary    profileSummary
		Categories []categoryView
		CategoryID string
		Window     string
	}{
		Summary:    summary,
		Categories: s.categoryViews(),
		CategoryID: categoryID,
		Window:     string(window),
	}

	s.render(w, r, "profile.html", data)
}
