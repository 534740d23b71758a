package ledger

import (
	"sort"
	"time"

	"givetrack/internal/core"
)

// Named time windows for donation history filtering. The boundary instant
// (now minus the window) is inclusive.
const (
	WindowAll      Window = "all"
	WindowLast30   Window = "last-30-days"
	WindowLast90   Window = "last-90-days"
	WindowLastYear Window = "last-year"
)

type Window string

// ParseWindow maps form input to a Window, defaulting to all-time.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowLast30, WindowLast90, WindowLastYear:
		return Window(s)
	default:
		return WindowAll
	}
}

func (w Window) cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowLast30:
		return now.AddDate(0, 0, -30), true
	case WindowLast90:
		return now.AddDate(0, 0, -90), true
	case WindowLastYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// UnknownCategoryName is the display fallback for a dangling category
// reference. Lookups degrade to it, they never fail.
const UnknownCategoryName = "Unknown Category"

// Categories returns a snapshot copy of the category catalog.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// Donations returns a snapshot copy of all donations in storage order.
func (s *Store) Donations() []core.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Donation(nil), s.donations...)
}

// Testimonials returns a snapshot copy of all testimonials in storage order.
func (s *Store) Testimonials() []core.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Testimonial(nil), s.testimonials...)
}

// CategoryByID resolves a soft category reference.
func (s *Store) CategoryByID(id string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// CategoryName resolves a category id to its display name, falling back to
// UnknownCategoryName for dangling references.
func (s *Store) CategoryName(id string) string {
	if c, ok := s.CategoryByID(id); ok {
		return c.Name
	}
	return UnknownCategoryName
}

// TotalByCategory sums the amounts of every donation whose categoryId
// exactly equals id. Returns 0 when none match; never fails, even for a
// dangling id.
func (s *Store) TotalByCategory(id string) core.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Amount
	for _, d := range s.donations {
		if d.CategoryID == id {
			total += d.Amount
		}
	}
	return total
}

// RecentDonations returns up to limit donations, most recent first. Equal
// dates keep their relative storage order (stable sort). limit values below
// one fall back to the default of five.
func (s *Store) RecentDonations(limit int) []core.Donation {
	if limit < 1 {
		limit = 5
	}
	ds := s.Donations()
	sortByDateDesc(ds)
	if len(ds) > limit {
		ds = ds[:limit]
	}
	return ds
}

// FilterDonations returns donations matching both the optional category
// (empty means any) and the named window, sorted most recent first.
func (s *Store) FilterDonations(categoryID string, w Window) []core.Donation {
	cut, bounded := w.cutoff(s.now())
	all := s.Donations()
	out := make([]core.Donation, 0, len(all))
	for _, d := range all {
		if categoryID != "" && d.CategoryID != categoryID {
			continue
		}
		if bounded && d.Date.Before(cut) {
			continue
		}
		out = append(out, d)
	}
	sortByDateDesc(out)
	return out
}

// TestimonialsByRole returns testimonials with the given role (empty role
// means any), optionally restricted to a category, most recent first.
func (s *Store) TestimonialsByRole(role core.Role, categoryID string) []core.Testimonial {
	all := s.Testimonials()
	out := make([]core.Testimonial, 0, len(all))
	for _, tm := range all {
		if role != "" && tm.Role != role {
			continue
		}
		if categoryID != "" && tm.CategoryID != categoryID {
			continue
		}
		out = append(out, tm)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Progress reports the percent of a category's goal raised so far, capped
// at 100. Categories without a positive goal report 0.
func (s *Store) Progress(categoryID string) int {
	c, ok := s.CategoryByID(categoryID)
	if !ok || c.Goal <= 0 {
		return 0
	}
	raised := s.TotalByCategory(categoryID)
	pct := int((raised*100 + c.Goal/2) / c.Goal)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// GroupTotals buckets a donation sequence by raw categoryId in a single
// pass. Dangling ids form their own bucket; resolution to a display name is
// the caller's lookup.
func GroupTotals(donations []core.Donation) map[string]core.Amount {
	totals := make(map[string]core.Amount, len(donations))
	for _, d := range donations {
		totals[d.CategoryID] += d.Amount
	}
	return totals
}

// SumAmounts totals a donation sequence.
func SumAmounts(donations []core.Donation) core.Amount {
	var total core.Amount
	for _, d := range donations {
		total += d.Amount
	}
	return total
}

func sortByDateDesc(ds []core.Donation) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Date.After(ds[j].Date) })
}
