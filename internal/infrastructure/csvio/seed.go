// Package csvio reads seed data from CSV files and writes timetables as CSV.
package csvio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
)

// Seed file names inside the seed directory. Every file is optional.
const (
	StudentsFile    = "students.csv"
	ProfessorsFile  = "professors.csv"
	ClassroomsFile  = "classrooms.csv"
	CoursesFile     = "courses.csv"
	EnrollmentsFile = "enrollments.csv"
)

type personRow struct {
	ID      string `csv:"id"`
	Name    string `csv:"name"`
	Surname string `csv:"surname"`
}

type classroomRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Capacity int    `csv:"capacity"`
}

// courseRow carries the optional schedule columns. day, start and end are
// given together or not at all.
type courseRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Credits     int    `csv:"credits"`
	Day         string `csv:"day"`
	Start       string `csv:"start"`
	End         string `csv:"end"`
	ProfessorID string `csv:"professor_id"`
	ClassroomID string `csv:"classroom_id"`
}

type enrollmentRow struct {
	StudentID string `csv:"student_id"`
	CourseID  string `csv:"course_id"`
}

// LoadSeed reads the seed files in dir into a snapshot. The snapshot is not
// validated here; academic.FromSnapshot does that when it is restored.
func LoadSeed(dir string) (academic.Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return academic.Snapshot{}, fmt.Errorf("csvio: seed dir: %w", err)
	}
	if !info.IsDir() {
		return academic.Snapshot{}, fmt.Errorf("csvio: seed dir %s is not a directory", dir)
	}

	var snap academic.Snapshot

	students, err := readRows[personRow](dir, StudentsFile)
	if err != nil {
		return snap, err
	}
	for _, r := range students {
		snap.Students = append(snap.Students, academic.StudentRecord{
			ID: academic.StudentID(r.ID), Name: r.Name, Surname: r.Surname,
		})
	}

	professors, err := readRows[personRow](dir, ProfessorsFile)
	if err != nil {
		return snap, err
	}
	for _, r := range professors {
		snap.Professors = append(snap.Professors, academic.ProfessorRecord{
			ID: academic.ProfessorID(r.ID), Name: r.Name, Surname: r.Surname,
		})
	}

	classrooms, err := readRows[classroomRow](dir, ClassroomsFile)
	if err != nil {
		return snap, err
	}
	index := make(map[academic.ClassroomID]int, len(classrooms))
	for i, r := range classrooms {
		id := academic.ClassroomID(r.ID)
		index[id] = i
		snap.Classrooms = append(snap.Classrooms, academic.ClassroomRecord{
			ID: id, Name: r.Name, Capacity: r.Capacity,
		})
	}

	courses, err := readRows[courseRow](dir, CoursesFile)
	if err != nil {
		return snap, err
	}
	for line, r := range courses {
		rec, err := r.record()
		if err != nil {
			return snap, fmt.Errorf("csvio: %s row %d: %w", CoursesFile, line+1, err)
		}
		if rec.ClassroomID != "" {
			i, ok := index[rec.ClassroomID]
			if !ok {
				return snap, fmt.Errorf("csvio: %s row %d: unknown classroom %q", CoursesFile, line+1, rec.ClassroomID)
			}
			if rec.Slot == nil {
				return snap, fmt.Errorf("csvio: %s row %d: classroom given without a time slot", CoursesFile, line+1)
			}
			snap.Classrooms[i].Bookings = append(snap.Classrooms[i].Bookings,
				schedule.Occupancy{CourseID: string(rec.ID), Slot: *rec.Slot})
		}
		snap.Courses = append(snap.Courses, rec)
	}

	enrollments, err := readRows[enrollmentRow](dir, EnrollmentsFile)
	if err != nil {
		return snap, err
	}
	for _, r := range enrollments {
		snap.Enrollments = append(snap.Enrollments, academic.EnrollmentRecord{
			StudentID: academic.StudentID(r.StudentID), CourseID: academic.CourseID(r.CourseID),
		})
	}

	return snap, nil
}

func (r courseRow) record() (academic.CourseRecord, error) {
	rec := academic.CourseRecord{
		ID:          academic.CourseID(r.ID),
		Name:        r.Name,
		Credits:     r.Credits,
		ProfessorID: academic.ProfessorID(strings.TrimSpace(r.ProfessorID)),
		ClassroomID: academic.ClassroomID(strings.TrimSpace(r.ClassroomID)),
	}
	if strings.TrimSpace(r.Day+r.Start+r.End) == "" {
		return rec, nil
	}
	slot, err := schedule.ParseTimeSlot(r.Day, r.Start, r.End)
	if err != nil {
		return rec, err
	}
	rec.Slot = &slot
	return rec, nil
}

// readRows decodes one seed file. A missing file yields no rows.
func readRows[T any](dir, name string) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("csvio: open %s: %w", name, err)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("csvio: parse %s: %w", name, err)
	}
	return rows, nil
}
