package ledger

import "context"

// Slot keys for persisted state. Each slot holds one collection serialized
// as a JSON array, field names as in core.
const (
	SlotCategories   = "categories"
	SlotDonations    = "donations"
	SlotTestimonials = "testimonials"
)

// Snapshotter is the durable key-value slot behind the ledger. Load reports
// whether the slot exists; a missing slot is not an error. Implementations
// live in internal/snapshot (files, memory) and internal/storage (sqlite).
type Snapshotter interface {
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
}
