package academic

import (
	"sort"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// Grade bounds.
const (
	MinGrade     Grade = 0
	MaxGrade     Grade = 5
	PassingGrade Grade = 3
)

// Grade is a course mark in the inclusive range [MinGrade, MaxGrade].
type Grade float64

// NewGrade validates a raw grade value.
func NewGrade(value float64) (Grade, error) {
	g := Grade(value)
	if !g.IsValid() {
		return 0, shared.Errorf("grade", "Validate", shared.ErrInvalidGrade,
			"grade %.2f must be between %.0f and %.0f", value, float64(MinGrade), float64(MaxGrade))
	}
	return g, nil
}

// IsValid checks the range. NaN is rejected since it fails both comparisons.
func (g Grade) IsValid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Float64 returns the underlying value.
func (g Grade) Float64() float64 {
	return float64(g)
}

type gradeKey struct {
	student StudentID
	course  CourseID
}

// GradeEntry is one stored grade.
type GradeEntry struct {
	StudentID StudentID
	CourseID  CourseID
	Value     Grade
}

// GradeBook is the single ledger of grades, keyed by (student, course).
// Per-course and per-student views are projections of the same entries.
type GradeBook struct {
	entries map[gradeKey]Grade
}

// NewGradeBook creates an empty grade book.
func NewGradeBook() *GradeBook {
	return &GradeBook{entries: make(map[gradeKey]Grade)}
}

func (b *GradeBook) set(student StudentID, course CourseID, g Grade) {
	b.entries[gradeKey{student, course}] = g
}

func (b *GradeBook) remove(student StudentID, course CourseID) {
	delete(b.entries, gradeKey{student, course})
}

// Get returns the grade a student has in a course.
func (b *GradeBook) Get(student StudentID, course CourseID) (Grade, bool) {
	g, ok := b.entries[gradeKey{student, course}]
	return g, ok
}

// ByCourse returns every grade recorded for the course, keyed by student.
func (b *GradeBook) ByCourse(course CourseID) map[StudentID]Grade {
	out := make(map[StudentID]Grade)
	for k, g := range b.entries {
		if k.course == course {
			out[k.student] = g
		}
	}
	return out
}

// ByStudent returns every grade recorded for the student, keyed by course.
func (b *GradeBook) ByStudent(student StudentID) map[CourseID]Grade {
	out := make(map[CourseID]Grade)
	for k, g := range b.entries {
		if k.student == student {
			out[k.course] = g
		}
	}
	return out
}

// Entries returns all grades ordered by student then course.
func (b *GradeBook) Entries() []GradeEntry {
	out := make([]GradeEntry, 0, len(b.entries))
	for k, g := range b.entries {
		out = append(out, GradeEntry{StudentID: k.student, CourseID: k.course, Value: g})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}

func (b *GradeBook) dropStudent(student StudentID) {
	for k := range b.entries {
		if k.student == student {
			delete(b.entries, k)
		}
	}
}

func (b *GradeBook) dropCourse(course CourseID) {
	for k := range b.entries {
		if k.course == course {
			delete(b.entries, k)
		}
	}
}

func (b *GradeBook) clone() *GradeBook {
	c := NewGradeBook()
	for k, g := range b.entries {
		c.entries[k] = g
	}
	return c
}
