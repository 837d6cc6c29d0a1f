package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func slot(t *testing.T, day, start, end string) schedule.TimeSlot {
	t.Helper()
	s, err := schedule.ParseTimeSlot(day, start, end)
	require.NoError(t, err)
	return s
}

// seeded returns a registry with the default records loaded.
func seeded(t *testing.T) *Registry {
	t.Helper()
	r, err := FromSnapshot(DefaultSeed())
	require.NoError(t, err)
	return r
}

func TestAssignClassroomRequiresTimeSlot(t *testing.T) {
	r := seeded(t)

	err := r.AssignClassroom("MAT001", "SAL001")
	assert.ErrorIs(t, err, shared.ErrNoTimeSlot)

	c, _ := r.Course("MAT001")
	_, ok := c.Classroom()
	assert.False(t, ok)
}

func TestAssignClassroomRejectsOverlapAtomically(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Mon", "09:30", "10:30")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))

	err := r.AssignClassroom("FIS001", "SAL001")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrClassroomOccupied)
	assert.ErrorIs(t, err, shared.ErrScheduleConflict)

	room, _ := r.Classroom("SAL001")
	require.Len(t, room.Bookings(), 1)
	assert.Equal(t, "MAT001", room.Bookings()[0].CourseID)

	fis, _ := r.Course("FIS001")
	_, ok := fis.Classroom()
	assert.False(t, ok)
}

func TestAssignClassroomMoveReleasesPreviousRoom(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL002"))

	old, _ := r.Classroom("SAL001")
	assert.Empty(t, old.Bookings())
	cur, _ := r.Classroom("SAL002")
	assert.Len(t, cur.Bookings(), 1)

	// The freed slot is usable by another course.
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Mon", "09:00", "10:00")))
	assert.NoError(t, r.AssignClassroom("FIS001", "SAL001"))
}

func TestAssignClassroomSameRoomRebooksNewSlot(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Tue", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))

	room, _ := r.Classroom("SAL001")
	require.Len(t, room.Bookings(), 1)
	assert.Equal(t, "Tuesday 09:00-10:00", room.Bookings()[0].Slot.String())
}

func TestSetTimeSlotReleasesClassroomBooking(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Tue", "09:00", "10:00")))

	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Tue", "09:00", "10:00")))

	mat, _ := r.Course("MAT001")
	_, ok := mat.Classroom()
	assert.False(t, ok)
	remaining, _ := r.RemainingCapacity("MAT001")
	assert.Equal(t, Unlimited, remaining)
	room, _ := r.Classroom("SAL001")
	assert.Empty(t, room.Bookings())

	// Both the old and the new time are free in the room again.
	require.NoError(t, r.AssignClassroom("FIS001", "SAL001"))
	assert.ErrorIs(t, r.AssignClassroom("MAT001", "SAL001"), shared.ErrClassroomOccupied)
}

func TestSetTimeSlotSameSlotKeepsBooking(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "lunes", "9:00", "10:00")))

	mat, _ := r.Course("MAT001")
	id, ok := mat.Classroom()
	assert.True(t, ok)
	assert.Equal(t, ClassroomID("SAL001"), id)
}

func TestSetTimeSlotRejectsOverlapForEnrolledStudent(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Tue", "09:00", "10:00")))
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.Enroll("EST001", "FIS001"))

	err := r.SetTimeSlot("FIS001", slot(t, "Mon", "09:30", "10:30"))
	assert.ErrorIs(t, err, shared.ErrScheduleConflict)
	fis, _ := r.Course("FIS001")
	got, _ := fis.TimeSlot()
	assert.Equal(t, "Tuesday 09:00-10:00", got.String())

	// A slot next to the other course is fine, and the result still restores.
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Mon", "10:00", "11:00")))
	_, err = FromSnapshot(r.Snapshot())
	assert.NoError(t, err)
}

func TestAssignClassroomTooSmallForRoster(t *testing.T) {
	r := seeded(t)
	_, err := r.AddClassroom("TINY", "Cubículo", 1)
	require.NoError(t, err)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.Enroll("EST002", "MAT001"))
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))

	err = r.AssignClassroom("MAT001", "TINY")
	assert.ErrorIs(t, err, shared.ErrCapacityExceeded)

	room, _ := r.Classroom("TINY")
	assert.Empty(t, room.Bookings())
}

func TestCapacityOneAllowsSingleEnrollment(t *testing.T) {
	r := seeded(t)
	_, err := r.AddClassroom("TINY", "Cubículo", 1)
	require.NoError(t, err)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "TINY"))

	remaining, err := r.RemainingCapacity("MAT001")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	require.NoError(t, r.Enroll("EST001", "MAT001"))
	err = r.Enroll("EST002", "MAT001")
	assert.ErrorIs(t, err, shared.ErrCapacityExceeded)

	c, _ := r.Course("MAT001")
	assert.Equal(t, []StudentID{"EST001"}, c.Students())
	s, _ := r.Student("EST002")
	assert.Empty(t, s.Courses())

	remaining, _ = r.RemainingCapacity("MAT001")
	assert.Equal(t, 0, remaining)
}

func TestEnrollWithoutClassroomIsUnbounded(t *testing.T) {
	r := seeded(t)
	for _, id := range []StudentID{"EST001", "EST002", "EST003"} {
		require.NoError(t, r.Enroll(id, "QUI001"))
	}
	remaining, err := r.RemainingCapacity("QUI001")
	require.NoError(t, err)
	assert.Equal(t, Unlimited, remaining)
}

func TestEnrollScheduleConflictLeavesStudentUnchanged(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Mon", "09:30", "10:30")))
	require.NoError(t, r.Enroll("EST001", "MAT001"))

	err := r.Enroll("EST001", "FIS001")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrScheduleConflict)
	assert.Contains(t, err.Error(), "Matemáticas")

	s, _ := r.Student("EST001")
	assert.Equal(t, []CourseID{"MAT001"}, s.Courses())
	fis, _ := r.Course("FIS001")
	assert.Zero(t, fis.EnrolledCount())
}

func TestEnrollAdjacentSlotsAllowed(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Mon", "10:00", "11:00")))
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	assert.NoError(t, r.Enroll("EST001", "FIS001"))
}

func TestEnrollTwiceRejected(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	err := r.Enroll("EST001", "MAT001")
	assert.ErrorIs(t, err, shared.ErrAlreadyEnrolled)
	c, _ := r.Course("MAT001")
	assert.Equal(t, 1, c.EnrolledCount())
}

func TestEnrollUnknownIDs(t *testing.T) {
	r := seeded(t)
	assert.ErrorIs(t, r.Enroll("NOPE", "MAT001"), shared.ErrNotFound)
	assert.ErrorIs(t, r.Enroll("EST001", "NOPE"), shared.ErrNotFound)
}

func TestAssignProfessorKeepsFirst(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.AssignProfessor("MAT001", "PRO001"))

	err := r.AssignProfessor("MAT001", "PRO002")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyAssigned)
	assert.Contains(t, err.Error(), "María García")

	c, _ := r.Course("MAT001")
	pid, ok := c.Professor()
	assert.True(t, ok)
	assert.Equal(t, ProfessorID("PRO001"), pid)

	p2, _ := r.Professor("PRO002")
	assert.Empty(t, p2.Courses())
	p1, _ := r.Professor("PRO001")
	assert.Equal(t, []CourseID{"MAT001"}, p1.Courses())
}

func TestRecordGradeBounds(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))

	for _, v := range []float64{-1, 5.1} {
		err := r.RecordGrade("EST001", "MAT001", v)
		assert.ErrorIs(t, err, shared.ErrInvalidGrade, "value %v", v)
	}
	_, ok := r.Grades().Get("EST001", "MAT001")
	assert.False(t, ok)

	require.NoError(t, r.RecordGrade("EST001", "MAT001", 3.0))
	avg, err := r.CourseAverage("MAT001")
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)
}

func TestRecordGradeRequiresEnrollment(t *testing.T) {
	r := seeded(t)
	err := r.RecordGrade("EST001", "MAT001", 4)
	assert.ErrorIs(t, err, shared.ErrNotEnrolled)
	assert.Empty(t, r.Grades().Entries())
}

func TestRecordGradeOverwrites(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.RecordGrade("EST001", "MAT001", 2))
	require.NoError(t, r.RecordGrade("EST001", "MAT001", 4.5))

	g, ok := r.Grades().Get("EST001", "MAT001")
	require.True(t, ok)
	assert.Equal(t, Grade(4.5), g)
	assert.Len(t, r.Grades().Entries(), 1)
}

func TestWithdraw(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.RecordGrade("EST001", "MAT001", 4))

	require.NoError(t, r.Withdraw("EST001", "MAT001"))

	s, _ := r.Student("EST001")
	assert.Empty(t, s.Courses())
	c, _ := r.Course("MAT001")
	assert.False(t, c.Has("EST001"))
	_, ok := r.Grades().Get("EST001", "MAT001")
	assert.False(t, ok)

	assert.ErrorIs(t, r.Withdraw("EST001", "MAT001"), shared.ErrNotEnrolled)
}

func TestWithdrawFreesSeat(t *testing.T) {
	r := seeded(t)
	_, err := r.AddClassroom("TINY", "Cubículo", 1)
	require.NoError(t, err)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "TINY"))
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.Withdraw("EST001", "MAT001"))

	assert.NoError(t, r.Enroll("EST002", "MAT001"))
}
