package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadSeed(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		StudentsFile:   "id,name,surname\nEST001,Juan,Pérez\nEST002,Ana,López\n",
		ProfessorsFile: "id,name,surname\nPRO001,María,García\n",
		ClassroomsFile: "id,name,capacity\nSAL001,Aula 101,30\n",
		CoursesFile: "id,name,credits,day,start,end,professor_id,classroom_id\n" +
			"MAT001,Matemáticas,4,Lunes,8:00,10:00,PRO001,SAL001\n" +
			"FIS001,Física,3,,,,,\n",
		EnrollmentsFile: "student_id,course_id\nEST001,MAT001\n",
	})

	snap, err := LoadSeed(dir)
	require.NoError(t, err)
	assert.Len(t, snap.Students, 2)
	require.Len(t, snap.Courses, 2)
	require.NotNil(t, snap.Courses[0].Slot)
	assert.Equal(t, "Monday 08:00-10:00", snap.Courses[0].Slot.String())
	assert.Nil(t, snap.Courses[1].Slot)
	require.Len(t, snap.Classrooms[0].Bookings, 1)
	assert.Equal(t, "MAT001", snap.Classrooms[0].Bookings[0].CourseID)

	reg, err := academic.FromSnapshot(snap)
	require.NoError(t, err)
	remaining, err := reg.RemainingCapacity("MAT001")
	require.NoError(t, err)
	assert.Equal(t, 29, remaining)
}

func TestLoadSeedSkipsMissingFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		CoursesFile: "id,name,credits\nQUI001,Química,3\n",
	})
	snap, err := LoadSeed(dir)
	require.NoError(t, err)
	assert.Empty(t, snap.Students)
	assert.Len(t, snap.Courses, 1)
}

func TestLoadSeedRejectsBadRows(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		CoursesFile: "id,name,credits,day,start,end\nMAT001,Matemáticas,4,Mon,10:00,09:00\n",
	})
	_, err := LoadSeed(dir)
	assert.ErrorContains(t, err, "courses.csv row 1")

	dir = writeFiles(t, map[string]string{
		CoursesFile: "id,name,credits,classroom_id\nMAT001,Matemáticas,4,SAL404\n",
	})
	_, err = LoadSeed(dir)
	assert.ErrorContains(t, err, "unknown classroom")

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadSeedRejectedOnRestoreWhenOverbooked(t *testing.T) {
	base := map[string]string{
		StudentsFile:   "id,name,surname\nS1,Uno,\nS2,Dos,\n",
		ClassroomsFile: "id,name,capacity\nR1,Room 1,1\n",
		CoursesFile: "id,name,credits,day,start,end,professor_id,classroom_id\n" +
			"A,Course A,3,Mon,09:00,10:00,,R1\n" +
			"B,Course B,3,Mon,09:30,10:30,,\n",
	}
	tests := []struct {
		name        string
		enrollments string
		want        error
	}{
		{"over capacity", "student_id,course_id\nS1,A\nS2,A\n", shared.ErrCapacityExceeded},
		{"overlapping courses", "student_id,course_id\nS1,A\nS1,B\n", shared.ErrScheduleConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{EnrollmentsFile: tt.enrollments}
			for k, v := range base {
				files[k] = v
			}
			snap, err := LoadSeed(writeFiles(t, files))
			require.NoError(t, err)

			_, err = academic.FromSnapshot(snap)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteTimetable(t *testing.T) {
	slot, err := schedule.ParseTimeSlot("Tue", "09:00", "10:30")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTimetable(&buf, []academic.ScheduleEntry{
		{CourseID: "MAT001", CourseName: "Matemáticas", TimeSlot: &slot, ClassroomID: "SAL001", Classroom: "Aula 101"},
		{CourseID: "QUI001", CourseName: "Química"},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "day,start,end,course_id,course,classroom_id,classroom,professor_id,professor", lines[0])
	assert.Equal(t, "Tuesday,09:00,10:30,MAT001,Matemáticas,SAL001,Aula 101,,", lines[1])
	assert.Equal(t, ",,,QUI001,Química,,,,", lines[2])
}
