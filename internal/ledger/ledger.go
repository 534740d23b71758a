// Package ledger implements the donation ledger store: the single owner of
// the category, donation and testimonial collections, their derived queries,
// and their persistence slots.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"givetrack/internal/core"
)

// Store holds the three collections and mirrors them to a Snapshotter on
// every mutation. It is an injectable container: construct a fresh one per
// test, pass it by reference to the handlers.
//
// Donations and testimonials are kept newest-first in storage as a
// convenience; queries still sort independently and never reorder the
// stored slices.
type Store struct {
	mu           sync.Mutex
	categories   []core.Category
	donations    []core.Donation
	testimonials []core.Testimonial

	snap     Snapshotter
	now      func() time.Time
	newID    func() string
	onMutate func()
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the timestamp source. Tests use it to pin dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc replaces the id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithMutateHook registers a callback invoked after every successful
// mutation. The HTTP layer uses it to invalidate cached aggregates.
func WithMutateHook(f func()) Option {
	return func(s *Store) { s.onMutate = f }
}

// New builds a store seeded from the built-in catalog, then overlays any
// persisted slots. A present slot fully replaces that collection; a missing
// slot keeps the seeds; a slot that fails to decode is logged and the seeds
// kept for that collection only. snap may be nil for a purely in-memory
// store.
func New(ctx context.Context, snap Snapshotter, opts ...Option) *Store {
	s := &Store{
		categories:   seedCategories(),
		donations:    seedDonations(),
		testimonials: seedTestimonials(),
		snap:         snap,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if snap == nil {
		return s
	}

	loadSlot(ctx, snap, SlotCategories, &s.categories)
	loadSlot(ctx, snap, SlotDonations, &s.donations)
	loadSlot(ctx, snap, SlotTestimonials, &s.testimonials)

	// First run: write the seeded state so a reload observes the same
	// slots a mutation would have produced.
	_ = s.saveSnapshot(ctx, SlotCategories, s.categories)
	_ = s.saveSnapshot(ctx, SlotDonations, s.donations)
	_ = s.saveSnapshot(ctx, SlotTestimonials, s.testimonials)

	return s
}

func loadSlot[T any](ctx context.Context, snap Snapshotter, key string, into *[]T) {
	payload, ok, err := snap.Load(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Snapshot load failed, keeping seeded defaults", "slot", key, "error", err)
		return
	}
	if !ok {
		return
	}
	var loaded []T
	if err := json.Unmarshal(payload, &loaded); err != nil {
		slog.WarnContext(ctx, "Snapshot slot is malformed, keeping seeded defaults", "slot", key, "error", err)
		return
	}
	*into = loaded
}

// AddDonation assigns a fresh id and the current timestamp, prepends the
// donation, and writes the donations slot. Input validation is the caller's
// concern; the store accepts any structurally valid input.
func (s *Store) AddDonation(ctx context.Context, in core.DonationInput) core.Donation {
	s.mu.Lock()
	d := core.Donation{
		ID:         s.newID(),
		Amount:     in.Amount,
		Name:       in.Name,
		Email:      in.Email,
		Message:    in.Message,
		Anonymous:  in.Anonymous,
		CategoryID: in.CategoryID,
		Date:       s.now().UTC(),
	}
	s.donations = append([]core.Donation{d}, s.donations...)
	_ = s.saveSnapshot(ctx, SlotDonations, s.donations)
	s.mu.Unlock()

	if s.onMutate != nil {
		s.onMutate()
	}
	slog.InfoContext(ctx, "Donation recorded",
		"id", d.ID,
		"amount", int64(d.Amount),
		"category_id", d.CategoryID,
		"anonymous", d.Anonymous)
	return d
}

// AddTestimonial assigns a fresh id and the current timestamp, prepends the
// testimonial, and writes the testimonials slot.
func (s *Store) AddTestimonial(ctx context.Context, in core.TestimonialInput) core.Testimonial {
	s.mu.Lock()
	tm := core.Testimonial{
		ID:         s.newID(),
		Name:       in.Name,
		Message:    in.Message,
		Role:       in.Role,
		CategoryID: in.CategoryID,
		Date:       s.now().UTC(),
	}
	s.testimonials = append([]core.Testimonial{tm}, s.testimonials...)
	_ = s.saveSnapshot(ctx, SlotTestimonials, s.testimonials)
	s.mu.Unlock()

	if s.onMutate != nil {
		s.onMutate()
	}
	slog.InfoContext(ctx, "Testimonial recorded", "id", tm.ID, "role", string(tm.Role))
	return tm
}

// saveSnapshot serializes a collection into its slot. Failures never
// propagate to the mutation caller: the write is best-effort and the error
// is logged here, but returned so code that cares can check it.
func (s *Store) saveSnapshot(ctx context.Context, key string, v any) error {
	if s.snap == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(ctx, "Snapshot marshal failed", "slot", key, "error", err)
		return fmt.Errorf("marshal slot %s: %w", key, err)
	}
	if err := s.snap.Save(ctx, key, payload); err != nil {
		slog.ErrorContext(ctx, "Snapshot write failed", "slot", key, "error", err)
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}
