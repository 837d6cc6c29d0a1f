package academic

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// IDENTIFIERS
// ══════════════════════════════════════════════════════════════════════════════

// StudentID identifies a student.
type StudentID string

// ProfessorID identifies a professor.
type ProfessorID string

// CourseID identifies a course.
type CourseID string

// ClassroomID identifies a classroom.
type ClassroomID string

// Field limits, matching the storage columns.
const (
	MaxIDLength   = 64
	MaxNameLength = 100
	MaxCount      = math.MaxInt32
)

func normalizeID(domain, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", shared.NewDomainError(domain, "Validate", shared.ErrInvalidID, "id cannot be empty")
	}
	if utf8.RuneCountInString(id) > MaxIDLength {
		return "", shared.Errorf(domain, "Validate", shared.ErrInvalidID, "id is longer than %d characters", MaxIDLength)
	}
	return id, nil
}

func normalizeName(domain, field, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", shared.Errorf(domain, "Validate", shared.ErrInvalidInput, "%s is longer than %d characters", field, MaxNameLength)
	}
	return name, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is a person who enrolls in courses.
type Student struct {
	ID      StudentID
	Name    string
	Surname string

	courses map[CourseID]struct{}
}

// FullName returns "Name Surname".
func (s *Student) FullName() string {
	return strings.TrimSpace(s.Name + " " + s.Surname)
}

// Courses returns the IDs of the courses the student is enrolled in, sorted.
func (s *Student) Courses() []CourseID {
	return sortedKeys(s.courses)
}

// IsEnrolledIn reports whether the student takes the course.
func (s *Student) IsEnrolledIn(id CourseID) bool {
	_, ok := s.courses[id]
	return ok
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFESSOR
// ══════════════════════════════════════════════════════════════════════════════

// Professor teaches courses.
type Professor struct {
	ID      ProfessorID
	Name    string
	Surname string

	courses map[CourseID]struct{}
}

// FullName returns "Name Surname".
func (p *Professor) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

// Courses returns the IDs of the courses the professor teaches, sorted.
func (p *Professor) Courses() []CourseID {
	return sortedKeys(p.courses)
}

// ══════════════════════════════════════════════════════════════════════════════
// CLASSROOM
// ══════════════════════════════════════════════════════════════════════════════

// Classroom is a room with a fixed capacity and a ledger of booked slots.
type Classroom struct {
	ID       ClassroomID
	Name     string
	Capacity int

	ledger *schedule.Ledger
}

// Bookings returns the slots the classroom has accepted.
func (c *Classroom) Bookings() []schedule.Occupancy {
	return c.ledger.Entries()
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSE
// ══════════════════════════════════════════════════════════════════════════════

// Course is a subject with an optional time slot, professor and classroom,
// and a roster of enrolled students.
type Course struct {
	ID      CourseID
	Name    string
	Credits int

	slot      *schedule.TimeSlot
	professor ProfessorID
	classroom ClassroomID
	roster    map[StudentID]struct{}
}

// TimeSlot returns the course's slot, if one was set.
func (c *Course) TimeSlot() (schedule.TimeSlot, bool) {
	if c.slot == nil {
		return schedule.TimeSlot{}, false
	}
	return *c.slot, true
}

// Professor returns the assigned professor, if any.
func (c *Course) Professor() (ProfessorID, bool) {
	return c.professor, c.professor != ""
}

// Classroom returns the assigned classroom, if any.
func (c *Course) Classroom() (ClassroomID, bool) {
	return c.classroom, c.classroom != ""
}

// Students returns the enrolled students, sorted.
func (c *Course) Students() []StudentID {
	return sortedKeys(c.roster)
}

// EnrolledCount returns the roster size.
func (c *Course) EnrolledCount() int {
	return len(c.roster)
}

// Has reports whether the student is on the roster.
func (c *Course) Has(id StudentID) bool {
	_, ok := c.roster[id]
	return ok
}

func sortedKeys[K ~string](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
