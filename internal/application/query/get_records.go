package query

import (
	"context"
	"strings"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD QUERIES
// List and fetch students, professors, courses and classrooms.
// ══════════════════════════════════════════════════════════════════════════════

// RecordDTO is the read model of any record kind. Fields that do not apply
// to the kind are omitted.
type RecordDTO struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`

	// Courses a student takes or a professor teaches.
	Courses []string `json:"courses,omitempty"`

	// Course fields.
	Credits           *int               `json:"credits,omitempty"`
	TimeSlot          *schedule.TimeSlot `json:"time_slot,omitempty"`
	ProfessorID       string             `json:"professor_id,omitempty"`
	ClassroomID       string             `json:"classroom_id,omitempty"`
	Students          []string           `json:"students,omitempty"`
	RemainingCapacity *int               `json:"remaining_capacity,omitempty"`
	Average           *float64           `json:"average,omitempty"`

	// Classroom fields.
	Capacity int                  `json:"capacity,omitempty"`
	Bookings []schedule.Occupancy `json:"bookings,omitempty"`
}

// ListRecordsQuery selects a record kind.
type ListRecordsQuery struct {
	Kind string
}

// GetRecordQuery selects one record.
type GetRecordQuery struct {
	Kind string
	ID   string
}

func validKind(op, kind string) error {
	switch kind {
	case academic.KindStudent, academic.KindProfessor, academic.KindCourse, academic.KindClassroom:
		return nil
	}
	return shared.Errorf("query", op, shared.ErrInvalidInput, "unknown record kind %q", kind)
}

// RecordsHandler serves record listings and lookups.
type RecordsHandler struct {
	ws *workspace.Workspace
}

// NewRecordsHandler creates a handler.
func NewRecordsHandler(ws *workspace.Workspace) *RecordsHandler {
	return &RecordsHandler{ws: ws}
}

// List returns every record of the kind, ordered by ID.
func (h *RecordsHandler) List(_ context.Context, q ListRecordsQuery) ([]RecordDTO, error) {
	if err := validKind("ListRecords", q.Kind); err != nil {
		return nil, err
	}

	out := []RecordDTO{}
	_ = h.ws.View(func(reg *academic.Registry) error {
		switch q.Kind {
		case academic.KindStudent:
			for _, s := range reg.Students() {
				out = append(out, studentDTO(s))
			}
		case academic.KindProfessor:
			for _, p := range reg.Professors() {
				out = append(out, professorDTO(p))
			}
		case academic.KindCourse:
			for _, c := range reg.Courses() {
				out = append(out, courseDTO(reg, c))
			}
		case academic.KindClassroom:
			for _, c := range reg.Classrooms() {
				out = append(out, classroomDTO(c))
			}
		}
		return nil
	})
	return out, nil
}

// Get returns one record. Unknown IDs yield a not-found error.
func (h *RecordsHandler) Get(_ context.Context, q GetRecordQuery) (RecordDTO, error) {
	if err := validKind("GetRecord", q.Kind); err != nil {
		return RecordDTO{}, err
	}
	id := strings.TrimSpace(q.ID)

	var dto RecordDTO
	err := h.ws.View(func(reg *academic.Registry) error {
		switch q.Kind {
		case academic.KindStudent:
			s, err := reg.Student(academic.StudentID(id))
			if err != nil {
				return err
			}
			dto = studentDTO(s)
		case academic.KindProfessor:
			p, err := reg.Professor(academic.ProfessorID(id))
			if err != nil {
				return err
			}
			dto = professorDTO(p)
		case academic.KindCourse:
			c, err := reg.Course(academic.CourseID(id))
			if err != nil {
				return err
			}
			dto = courseDTO(reg, c)
		case academic.KindClassroom:
			c, err := reg.Classroom(academic.ClassroomID(id))
			if err != nil {
				return err
			}
			dto = classroomDTO(c)
		}
		return nil
	})
	return dto, err
}

func studentDTO(s *academic.Student) RecordDTO {
	return RecordDTO{
		Kind:    academic.KindStudent,
		ID:      string(s.ID),
		Name:    s.Name,
		Surname: s.Surname,
		Courses: idStrings(s.Courses()),
	}
}

func professorDTO(p *academic.Professor) RecordDTO {
	return RecordDTO{
		Kind:    academic.KindProfessor,
		ID:      string(p.ID),
		Name:    p.Name,
		Surname: p.Surname,
		Courses: idStrings(p.Courses()),
	}
}

func courseDTO(reg *academic.Registry, c *academic.Course) RecordDTO {
	credits := c.Credits
	dto := RecordDTO{
		Kind:     academic.KindCourse,
		ID:       string(c.ID),
		Name:     c.Name,
		Credits:  &credits,
		Students: idStrings(c.Students()),
	}
	if slot, ok := c.TimeSlot(); ok {
		dto.TimeSlot = &slot
	}
	if p, ok := c.Professor(); ok {
		dto.ProfessorID = string(p)
	}
	if room, ok := c.Classroom(); ok {
		dto.ClassroomID = string(room)
	}
	if remaining, err := reg.RemainingCapacity(c.ID); err == nil && remaining != academic.Unlimited {
		dto.RemainingCapacity = &remaining
	}
	if avg, err := reg.CourseAverage(c.ID); err == nil {
		dto.Average = &avg
	}
	return dto
}

func classroomDTO(c *academic.Classroom) RecordDTO {
	return RecordDTO{
		Kind:     academic.KindClassroom,
		ID:       string(c.ID),
		Name:     c.Name,
		Capacity: c.Capacity,
		Bookings: c.Bookings(),
	}
}

func idStrings[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
