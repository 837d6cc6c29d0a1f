package schedule

import (
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// Occupancy is one accepted booking in a ledger.
type Occupancy struct {
	CourseID string   `json:"course_id"`
	Slot     TimeSlot `json:"slot"`
}

// Ledger holds the time slots a classroom has accepted. A course holds at
// most one entry, and no two entries overlap.
type Ledger struct {
	owner   string
	entries []Occupancy
}

// NewLedger creates an empty ledger. The owner name is used in conflict messages.
func NewLedger(owner string) *Ledger {
	return &Ledger{owner: owner}
}

// Conflict returns the first entry, other than the course's own, that
// overlaps the slot.
func (l *Ledger) Conflict(courseID string, slot TimeSlot) (Occupancy, bool) {
	for _, e := range l.entries {
		if e.CourseID == courseID {
			continue
		}
		if e.Slot.Overlaps(slot) {
			return e, true
		}
	}
	return Occupancy{}, false
}

// Accept books the slot for the course. If the course already holds an
// entry it is replaced. On conflict the ledger is left untouched.
func (l *Ledger) Accept(courseID string, slot TimeSlot) error {
	if existing, ok := l.Conflict(courseID, slot); ok {
		return shared.Errorf("classroom", "Accept", shared.ErrClassroomOccupied,
			"classroom %q is already occupied on %s from %s to %s (course %s)",
			l.owner, slot.Day, existing.Slot.Start, existing.Slot.End, existing.CourseID)
	}
	for i := range l.entries {
		if l.entries[i].CourseID == courseID {
			l.entries[i].Slot = slot
			return nil
		}
	}
	l.entries = append(l.entries, Occupancy{CourseID: courseID, Slot: slot})
	return nil
}

// Release removes the course's booking. It reports whether one existed.
func (l *Ledger) Release(courseID string) bool {
	for i, e := range l.entries {
		if e.CourseID == courseID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Booking returns the slot held by the course, if any.
func (l *Ledger) Booking(courseID string) (TimeSlot, bool) {
	for _, e := range l.entries {
		if e.CourseID == courseID {
			return e.Slot, true
		}
	}
	return TimeSlot{}, false
}

// Entries returns a copy of the accepted bookings in acceptance order.
func (l *Ledger) Entries() []Occupancy {
	out := make([]Occupancy, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of bookings.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{owner: l.owner, entries: l.Entries()}
}
