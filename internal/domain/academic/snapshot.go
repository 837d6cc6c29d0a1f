package academic

import (
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// Snapshot is a flat, serializable copy of a Registry. Relations are kept
// once: enrollments as (student, course) pairs, teaching as the course's
// professor ID, bookings as classroom occupancies.
type Snapshot struct {
	Students    []StudentRecord    `json:"students"`
	Professors  []ProfessorRecord  `json:"professors"`
	Classrooms  []ClassroomRecord  `json:"classrooms"`
	Courses     []CourseRecord     `json:"courses"`
	Enrollments []EnrollmentRecord `json:"enrollments"`
	Grades      []GradeRecord      `json:"grades"`
}

// StudentRecord is a student row.
type StudentRecord struct {
	ID      StudentID `json:"id"`
	Name    string    `json:"name"`
	Surname string    `json:"surname"`
}

// ProfessorRecord is a professor row.
type ProfessorRecord struct {
	ID      ProfessorID `json:"id"`
	Name    string      `json:"name"`
	Surname string      `json:"surname"`
}

// ClassroomRecord is a classroom row with its accepted bookings.
type ClassroomRecord struct {
	ID       ClassroomID          `json:"id"`
	Name     string               `json:"name"`
	Capacity int                  `json:"capacity"`
	Bookings []schedule.Occupancy `json:"bookings"`
}

// CourseRecord is a course row.
type CourseRecord struct {
	ID          CourseID           `json:"id"`
	Name        string             `json:"name"`
	Credits     int                `json:"credits"`
	Slot        *schedule.TimeSlot `json:"slot,omitempty"`
	ProfessorID ProfessorID        `json:"professor_id,omitempty"`
	ClassroomID ClassroomID        `json:"classroom_id,omitempty"`
}

// EnrollmentRecord links a student to a course.
type EnrollmentRecord struct {
	StudentID StudentID `json:"student_id"`
	CourseID  CourseID  `json:"course_id"`
}

// GradeRecord is one stored grade.
type GradeRecord struct {
	StudentID StudentID `json:"student_id"`
	CourseID  CourseID  `json:"course_id"`
	Value     float64   `json:"value"`
}

// IsEmpty reports whether the snapshot holds no records at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Students) == 0 && len(s.Professors) == 0 &&
		len(s.Classrooms) == 0 && len(s.Courses) == 0
}

// Snapshot flattens the registry. Every slice is ordered by ID.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Students:    make([]StudentRecord, 0, len(r.students)),
		Professors:  make([]ProfessorRecord, 0, len(r.professors)),
		Classrooms:  make([]ClassroomRecord, 0, len(r.classrooms)),
		Courses:     make([]CourseRecord, 0, len(r.courses)),
		Enrollments: []EnrollmentRecord{},
		Grades:      []GradeRecord{},
	}
	for _, s := range r.Students() {
		snap.Students = append(snap.Students, StudentRecord{ID: s.ID, Name: s.Name, Surname: s.Surname})
	}
	for _, p := range r.Professors() {
		snap.Professors = append(snap.Professors, ProfessorRecord{ID: p.ID, Name: p.Name, Surname: p.Surname})
	}
	for _, c := range r.Classrooms() {
		snap.Classrooms = append(snap.Classrooms, ClassroomRecord{
			ID:       c.ID,
			Name:     c.Name,
			Capacity: c.Capacity,
			Bookings: c.ledger.Entries(),
		})
	}
	for _, c := range r.Courses() {
		rec := CourseRecord{
			ID:          c.ID,
			Name:        c.Name,
			Credits:     c.Credits,
			ProfessorID: c.professor,
			ClassroomID: c.classroom,
		}
		if c.slot != nil {
			slot := *c.slot
			rec.Slot = &slot
		}
		snap.Courses = append(snap.Courses, rec)
		for _, sid := range c.Students() {
			snap.Enrollments = append(snap.Enrollments, EnrollmentRecord{StudentID: sid, CourseID: c.ID})
		}
	}
	for _, g := range r.grades.Entries() {
		snap.Grades = append(snap.Grades, GradeRecord{StudentID: g.StudentID, CourseID: g.CourseID, Value: g.Value.Float64()})
	}
	return snap
}

// FromSnapshot rebuilds a registry. Records go through the same
// constructors as new ones, bookings through the classroom ledgers and
// enrollments through Enroll, so an overbooked course or a student with
// overlapping courses is rejected.
func FromSnapshot(snap Snapshot) (*Registry, error) {
	r := NewRegistry()
	for _, s := range snap.Students {
		if _, err := r.AddStudent(string(s.ID), s.Name, s.Surname); err != nil {
			return nil, err
		}
	}
	for _, p := range snap.Professors {
		if _, err := r.AddProfessor(string(p.ID), p.Name, p.Surname); err != nil {
			return nil, err
		}
	}
	for _, c := range snap.Classrooms {
		if _, err := r.AddClassroom(string(c.ID), c.Name, c.Capacity); err != nil {
			return nil, err
		}
	}
	for _, rec := range snap.Courses {
		c, err := r.AddCourse(string(rec.ID), rec.Name, rec.Credits)
		if err != nil {
			return nil, err
		}
		if rec.Slot != nil {
			slot := *rec.Slot
			c.slot = &slot
		}
		if rec.ProfessorID != "" {
			p, err := r.Professor(rec.ProfessorID)
			if err != nil {
				return nil, restoreError("course %q references unknown professor %q", rec.ID, rec.ProfessorID)
			}
			c.professor = p.ID
			p.courses[c.ID] = struct{}{}
		}
		if rec.ClassroomID != "" {
			if _, err := r.Classroom(rec.ClassroomID); err != nil {
				return nil, restoreError("course %q references unknown classroom %q", rec.ID, rec.ClassroomID)
			}
			c.classroom = rec.ClassroomID
		}
	}
	for _, rec := range snap.Classrooms {
		room := r.classrooms[rec.ID]
		for _, b := range rec.Bookings {
			c, ok := r.courses[CourseID(b.CourseID)]
			if !ok || c.classroom != room.ID {
				return nil, restoreError("classroom %q holds a booking for course %q that is not held there", rec.ID, b.CourseID)
			}
			if c.slot == nil || *c.slot != b.Slot {
				return nil, restoreError("classroom %q books course %q outside its time slot", rec.ID, b.CourseID)
			}
			if err := room.ledger.Accept(b.CourseID, b.Slot); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range r.courses {
		if c.classroom == "" {
			continue
		}
		if _, ok := r.classrooms[c.classroom].ledger.Booking(string(c.ID)); !ok {
			return nil, restoreError("course %q is held in classroom %q without a booking", c.ID, c.classroom)
		}
	}
	for _, e := range snap.Enrollments {
		if _, ok := r.students[e.StudentID]; !ok {
			return nil, restoreError("enrollment references unknown student %q", e.StudentID)
		}
		if _, ok := r.courses[e.CourseID]; !ok {
			return nil, restoreError("enrollment references unknown course %q", e.CourseID)
		}
		if err := r.Enroll(e.StudentID, e.CourseID); err != nil {
			return nil, err
		}
	}
	for _, g := range snap.Grades {
		value, err := NewGrade(g.Value)
		if err != nil {
			return nil, err
		}
		c, ok := r.courses[g.CourseID]
		if !ok || !c.Has(g.StudentID) {
			return nil, restoreError("grade for %q in %q has no matching enrollment", g.StudentID, g.CourseID)
		}
		r.grades.set(g.StudentID, g.CourseID, value)
	}
	return r, nil
}

// Clone returns a deep, independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for id, s := range r.students {
		c.students[id] = &Student{ID: s.ID, Name: s.Name, Surname: s.Surname, courses: cloneSet(s.courses)}
	}
	for id, p := range r.professors {
		c.professors[id] = &Professor{ID: p.ID, Name: p.Name, Surname: p.Surname, courses: cloneSet(p.courses)}
	}
	for id, room := range r.classrooms {
		c.classrooms[id] = &Classroom{ID: room.ID, Name: room.Name, Capacity: room.Capacity, ledger: room.ledger.Clone()}
	}
	for id, course := range r.courses {
		cc := &Course{
			ID:        course.ID,
			Name:      course.Name,
			Credits:   course.Credits,
			professor: course.professor,
			classroom: course.classroom,
			roster:    cloneSet(course.roster),
		}
		if course.slot != nil {
			slot := *course.slot
			cc.slot = &slot
		}
		c.courses[id] = cc
	}
	c.grades = r.grades.clone()
	return c
}

func cloneSet[K comparable](m map[K]struct{}) map[K]struct{} {
	out := make(map[K]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func restoreError(format string, args ...any) error {
	return shared.Errorf("snapshot", "Restore", shared.ErrInvalidState, format, args...)
}
