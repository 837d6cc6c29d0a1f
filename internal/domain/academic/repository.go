package academic

import "context"

// Repository persists registry snapshots. Implementations live in the
// infrastructure layer (memory, PostgreSQL).
type Repository interface {
	// Load returns the last saved snapshot. An empty snapshot means nothing
	// has been saved yet.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored state with the snapshot, atomically.
	Save(ctx context.Context, snap Snapshot) error
}
