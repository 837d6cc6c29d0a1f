package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func TestLedgerRejectsOverlapAtomically(t *testing.T) {
	l := NewLedger("Aula 101")
	require.NoError(t, l.Accept("MAT001", mustSlot(t, "Mon", "09:00", "10:00")))

	err := l.Accept("FIS001", mustSlot(t, "Mon", "09:30", "10:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrClassroomOccupied)
	assert.ErrorIs(t, err, shared.ErrScheduleConflict)
	assert.Contains(t, err.Error(), "Aula 101")
	assert.Contains(t, err.Error(), "09:00")

	assert.Equal(t, []Occupancy{{CourseID: "MAT001", Slot: mustSlot(t, "Mon", "09:00", "10:00")}}, l.Entries())
}

func TestLedgerAcceptsAdjacentAndOtherDays(t *testing.T) {
	l := NewLedger("Aula 102")
	require.NoError(t, l.Accept("A", mustSlot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, l.Accept("B", mustSlot(t, "Mon", "10:00", "11:00")))
	require.NoError(t, l.Accept("C", mustSlot(t, "Tue", "09:00", "10:00")))
	assert.Equal(t, 3, l.Len())
}

func TestLedgerReplacesOwnBooking(t *testing.T) {
	l := NewLedger("Lab")
	require.NoError(t, l.Accept("A", mustSlot(t, "Mon", "09:00", "10:00")))
	// Moving A by half an hour must not collide with its own old booking.
	require.NoError(t, l.Accept("A", mustSlot(t, "Mon", "09:30", "10:30")))

	assert.Equal(t, 1, l.Len())
	slot, ok := l.Booking("A")
	require.True(t, ok)
	assert.Equal(t, "09:30", slot.Start.String())
}

func TestLedgerRelease(t *testing.T) {
	l := NewLedger("Lab")
	require.NoError(t, l.Accept("A", mustSlot(t, "Mon", "09:00", "10:00")))

	assert.True(t, l.Release("A"))
	assert.False(t, l.Release("A"))
	assert.Equal(t, 0, l.Len())

	require.NoError(t, l.Accept("B", mustSlot(t, "Mon", "09:00", "10:00")))
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := NewLedger("Lab")
	require.NoError(t, l.Accept("A", mustSlot(t, "Mon", "09:00", "10:00")))

	c := l.Clone()
	require.NoError(t, c.Accept("B", mustSlot(t, "Tue", "09:00", "10:00")))

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, c.Len())
}
