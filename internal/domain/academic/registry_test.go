package academic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func TestAddRecordsValidation(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddStudent("  ", "Juan", "Pérez")
	assert.ErrorIs(t, err, shared.ErrInvalidID)

	_, err = r.AddCourse("MAT001", "Matemáticas", -1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = r.AddClassroom("SAL001", "Aula 101", 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	s, err := r.AddStudent(" EST001 ", " Juan ", "Pérez")
	require.NoError(t, err)
	assert.Equal(t, StudentID("EST001"), s.ID)
	assert.Equal(t, "Juan Pérez", s.FullName())

	_, err = r.AddStudent("EST001", "Otro", "Nombre")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAddRecordsWithinStorageLimits(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddStudent(strings.Repeat("E", MaxIDLength+1), "Juan", "Pérez")
	assert.ErrorIs(t, err, shared.ErrInvalidID)
	_, err = r.AddProfessor("PRO009", "María", strings.Repeat("g", MaxNameLength+1))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = r.AddCourse("BIO001", strings.Repeat("b", MaxNameLength+1), 2)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = r.AddCourse("BIO001", "Biología", MaxCount+1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = r.AddClassroom("SAL009", "Aula", MaxCount+1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Empty(t, r.Snapshot().Courses)
	assert.Empty(t, r.Snapshot().Classrooms)

	// Limits count characters, not bytes.
	s, err := r.AddStudent(strings.Repeat("É", MaxIDLength), strings.Repeat("ñ", MaxNameLength), "")
	require.NoError(t, err)
	assert.Len(t, []rune(s.Name), MaxNameLength)
	_, err = r.AddClassroom("SAL009", "Aula", MaxCount)
	assert.NoError(t, err)
}

func TestListsAreOrderedByID(t *testing.T) {
	r := seeded(t)

	var ids []CourseID
	for _, c := range r.Courses() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []CourseID{"FIS001", "MAT001", "QUI001"}, ids)
	assert.Len(t, r.Students(), 3)
	assert.Len(t, r.Professors(), 2)
	assert.Len(t, r.Classrooms(), 3)
}

func TestLookupNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Course("X")
	assert.True(t, shared.IsNotFound(err))
	_, err = r.Classroom("X")
	assert.True(t, shared.IsNotFound(err))
}

func TestRemoveStudentCleansRostersAndGrades(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.Enroll("EST001", "FIS001"))
	require.NoError(t, r.RecordGrade("EST001", "MAT001", 4))

	require.NoError(t, r.RemoveStudent("EST001"))

	for _, id := range []CourseID{"MAT001", "FIS001"} {
		c, _ := r.Course(id)
		assert.False(t, c.Has("EST001"))
	}
	assert.Empty(t, r.Grades().Entries())
	assert.ErrorIs(t, r.RemoveStudent("EST001"), shared.ErrNotFound)
}

func TestRemoveProfessorUnassignsCourses(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.AssignProfessor("MAT001", "PRO001"))
	require.NoError(t, r.RemoveProfessor("PRO001"))

	c, _ := r.Course("MAT001")
	_, ok := c.Professor()
	assert.False(t, ok)
	assert.NoError(t, r.AssignProfessor("MAT001", "PRO002"))
}

func TestRemoveCourseCleansEverySide(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.AssignProfessor("MAT001", "PRO001"))
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.RecordGrade("EST001", "MAT001", 5))

	require.NoError(t, r.RemoveCourse("MAT001"))

	s, _ := r.Student("EST001")
	assert.Empty(t, s.Courses())
	p, _ := r.Professor("PRO001")
	assert.Empty(t, p.Courses())
	room, _ := r.Classroom("SAL001")
	assert.Empty(t, room.Bookings())
	assert.Empty(t, r.Grades().Entries())
}

func TestRemoveClassroomUnboundsCourse(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL003"))
	require.NoError(t, r.RemoveClassroom("SAL003"))

	c, _ := r.Course("MAT001")
	_, ok := c.Classroom()
	assert.False(t, ok)
	remaining, _ := r.RemainingCapacity("MAT001")
	assert.Equal(t, Unlimited, remaining)
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.SetTimeSlot("FIS001", slot(t, "Tue", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.AssignProfessor("FIS001", "PRO002"))
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	require.NoError(t, r.Enroll("EST002", "MAT001"))
	require.NoError(t, r.RecordGrade("EST002", "MAT001", 3.5))

	snap := r.Snapshot()
	restored, err := FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, BuildReport(r), BuildReport(restored))
}

func TestSnapshotAfterSlotChangeHasNoStaleBooking(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Mon", "09:00", "10:00")))
	require.NoError(t, r.AssignClassroom("MAT001", "SAL001"))
	require.NoError(t, r.SetTimeSlot("MAT001", slot(t, "Fri", "09:00", "10:00")))

	restored, err := FromSnapshot(r.Snapshot())
	require.NoError(t, err)
	room, _ := restored.Classroom("SAL001")
	assert.Empty(t, room.Bookings())
	c, _ := restored.Course("MAT001")
	_, ok := c.Classroom()
	assert.False(t, ok)
}

// overbookedSeed holds room R1 (capacity 1) with course A booked on Monday
// 09:00-10:00, course B on Monday 09:30-10:30 and no enrollments yet.
func overbookedSeed() Snapshot {
	mon := schedule.TimeSlot{Day: schedule.Monday, Start: 9 * 60, End: 10 * 60}
	monLate := schedule.TimeSlot{Day: schedule.Monday, Start: 9*60 + 30, End: 10*60 + 30}
	return Snapshot{
		Students: []StudentRecord{{ID: "S1", Name: "Uno"}, {ID: "S2", Name: "Dos"}},
		Classrooms: []ClassroomRecord{{
			ID: "R1", Name: "Room 1", Capacity: 1,
			Bookings: []schedule.Occupancy{{CourseID: "A", Slot: mon}},
		}},
		Courses: []CourseRecord{
			{ID: "A", Name: "Course A", Slot: &mon, ClassroomID: "R1"},
			{ID: "B", Name: "Course B", Slot: &monLate},
		},
	}
}

func TestFromSnapshotRejectsOverbookedCourse(t *testing.T) {
	snap := overbookedSeed()
	snap.Enrollments = []EnrollmentRecord{{StudentID: "S1", CourseID: "A"}, {StudentID: "S2", CourseID: "A"}}

	_, err := FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrCapacityExceeded)

	snap.Enrollments = snap.Enrollments[:1]
	r, err := FromSnapshot(snap)
	require.NoError(t, err)
	remaining, _ := r.RemainingCapacity("A")
	assert.Equal(t, 0, remaining)
}

func TestFromSnapshotRejectsOverlappingEnrollments(t *testing.T) {
	snap := overbookedSeed()
	snap.Enrollments = []EnrollmentRecord{{StudentID: "S1", CourseID: "A"}, {StudentID: "S1", CourseID: "B"}}

	_, err := FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrScheduleConflict)
}

func TestFromSnapshotRejectsBookingOutsideSlot(t *testing.T) {
	snap := overbookedSeed()
	snap.Classrooms[0].Bookings[0].Slot.Day = schedule.Friday

	_, err := FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestFromSnapshotRejectsDanglingReferences(t *testing.T) {
	snap := DefaultSeed()
	snap.Enrollments = []EnrollmentRecord{{StudentID: "GHOST", CourseID: "MAT001"}}
	_, err := FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	snap = DefaultSeed()
	snap.Grades = []GradeRecord{{StudentID: "EST001", CourseID: "MAT001", Value: 4}}
	_, err = FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	snap = DefaultSeed()
	snap.Courses[0].ClassroomID = "SAL001"
	_, err = FromSnapshot(snap)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCloneIsIndependent(t *testing.T) {
	r := seeded(t)
	require.NoError(t, r.Enroll("EST001", "MAT001"))
	c := r.Clone()

	require.NoError(t, c.Enroll("EST002", "MAT001"))
	require.NoError(t, c.RemoveStudent("EST003"))

	orig, _ := r.Course("MAT001")
	assert.Equal(t, []StudentID{"EST001"}, orig.Students())
	_, err := r.Student("EST003")
	assert.NoError(t, err)
	assert.Equal(t, r.Snapshot().Students, seeded(t).Snapshot().Students)
}
