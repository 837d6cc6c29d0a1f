package academic

import (
	"sort"

	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// Record kinds, used in events and error messages.
const (
	KindStudent   = "student"
	KindProfessor = "professor"
	KindCourse    = "course"
	KindClassroom = "classroom"
)

// Registry owns every student, professor, course and classroom, keyed by ID.
// Entities reference each other by ID only; every relation that has two
// sides is changed by a single Registry method.
//
// Registry is not safe for concurrent use.
type Registry struct {
	students   map[StudentID]*Student
	professors map[ProfessorID]*Professor
	courses    map[CourseID]*Course
	classrooms map[ClassroomID]*Classroom
	grades     *GradeBook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		students:   make(map[StudentID]*Student),
		professors: make(map[ProfessorID]*Professor),
		courses:    make(map[CourseID]*Course),
		classrooms: make(map[ClassroomID]*Classroom),
		grades:     NewGradeBook(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD STORE
// ══════════════════════════════════════════════════════════════════════════════

// AddStudent registers a new student.
func (r *Registry) AddStudent(id, name, surname string) (*Student, error) {
	sid, err := normalizeID(KindStudent, id)
	if err != nil {
		return nil, err
	}
	if name, err = normalizeName(KindStudent, "name", name); err != nil {
		return nil, err
	}
	if surname, err = normalizeName(KindStudent, "surname", surname); err != nil {
		return nil, err
	}
	if _, ok := r.students[StudentID(sid)]; ok {
		return nil, shared.Errorf(KindStudent, "Create", shared.ErrAlreadyExists, "student %q already exists", sid)
	}
	s := &Student{
		ID:      StudentID(sid),
		Name:    name,
		Surname: surname,
		courses: make(map[CourseID]struct{}),
	}
	r.students[s.ID] = s
	return s, nil
}

// AddProfessor registers a new professor.
func (r *Registry) AddProfessor(id, name, surname string) (*Professor, error) {
	pid, err := normalizeID(KindProfessor, id)
	if err != nil {
		return nil, err
	}
	if name, err = normalizeName(KindProfessor, "name", name); err != nil {
		return nil, err
	}
	if surname, err = normalizeName(KindProfessor, "surname", surname); err != nil {
		return nil, err
	}
	if _, ok := r.professors[ProfessorID(pid)]; ok {
		return nil, shared.Errorf(KindProfessor, "Create", shared.ErrAlreadyExists, "professor %q already exists", pid)
	}
	p := &Professor{
		ID:      ProfessorID(pid),
		Name:    name,
		Surname: surname,
		courses: make(map[CourseID]struct{}),
	}
	r.professors[p.ID] = p
	return p, nil
}

// AddCourse registers a new course.
func (r *Registry) AddCourse(id, name string, credits int) (*Course, error) {
	cid, err := normalizeID(KindCourse, id)
	if err != nil {
		return nil, err
	}
	if name, err = normalizeName(KindCourse, "name", name); err != nil {
		return nil, err
	}
	if credits < 0 || credits > MaxCount {
		return nil, shared.Errorf(KindCourse, "Create", shared.ErrInvalidInput, "credits must be between 0 and %d (%d)", MaxCount, credits)
	}
	if _, ok := r.courses[CourseID(cid)]; ok {
		return nil, shared.Errorf(KindCourse, "Create", shared.ErrAlreadyExists, "course %q already exists", cid)
	}
	c := &Course{
		ID:      CourseID(cid),
		Name:    name,
		Credits: credits,
		roster:  make(map[StudentID]struct{}),
	}
	r.courses[c.ID] = c
	return c, nil
}

// AddClassroom registers a new classroom. Capacity must be positive.
func (r *Registry) AddClassroom(id, name string, capacity int) (*Classroom, error) {
	rid, err := normalizeID(KindClassroom, id)
	if err != nil {
		return nil, err
	}
	if name, err = normalizeName(KindClassroom, "name", name); err != nil {
		return nil, err
	}
	if capacity <= 0 || capacity > MaxCount {
		return nil, shared.Errorf(KindClassroom, "Create", shared.ErrInvalidInput, "capacity must be between 1 and %d (%d)", MaxCount, capacity)
	}
	if _, ok := r.classrooms[ClassroomID(rid)]; ok {
		return nil, shared.Errorf(KindClassroom, "Create", shared.ErrAlreadyExists, "classroom %q already exists", rid)
	}
	c := &Classroom{
		ID:       ClassroomID(rid),
		Name:     name,
		Capacity: capacity,
		ledger:   schedule.NewLedger(name),
	}
	r.classrooms[c.ID] = c
	return c, nil
}

// Student looks a student up by ID.
func (r *Registry) Student(id StudentID) (*Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, shared.Errorf(KindStudent, "Find", shared.ErrNotFound, "student %q not found", id)
	}
	return s, nil
}

// Professor looks a professor up by ID.
func (r *Registry) Professor(id ProfessorID) (*Professor, error) {
	p, ok := r.professors[id]
	if !ok {
		return nil, shared.Errorf(KindProfessor, "Find", shared.ErrNotFound, "professor %q not found", id)
	}
	return p, nil
}

// Course looks a course up by ID.
func (r *Registry) Course(id CourseID) (*Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, shared.Errorf(KindCourse, "Find", shared.ErrNotFound, "course %q not found", id)
	}
	return c, nil
}

// Classroom looks a classroom up by ID.
func (r *Registry) Classroom(id ClassroomID) (*Classroom, error) {
	c, ok := r.classrooms[id]
	if !ok {
		return nil, shared.Errorf(KindClassroom, "Find", shared.ErrNotFound, "classroom %q not found", id)
	}
	return c, nil
}

// Students lists all students ordered by ID.
func (r *Registry) Students() []*Student {
	out := make([]*Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Professors lists all professors ordered by ID.
func (r *Registry) Professors() []*Professor {
	out := make([]*Professor, 0, len(r.professors))
	for _, p := range r.professors {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Courses lists all courses ordered by ID.
func (r *Registry) Courses() []*Course {
	out := make([]*Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Classrooms lists all classrooms ordered by ID.
func (r *Registry) Classrooms() []*Classroom {
	out := make([]*Classroom, 0, len(r.classrooms))
	for _, c := range r.classrooms {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Grades exposes the grade ledger for reading.
func (r *Registry) Grades() *GradeBook {
	return r.grades
}

// RemoveStudent deletes a student, withdrawing them from every course and
// dropping their grades.
func (r *Registry) RemoveStudent(id StudentID) error {
	s, err := r.Student(id)
	if err != nil {
		return err
	}
	for cid := range s.courses {
		delete(r.courses[cid].roster, id)
	}
	r.grades.dropStudent(id)
	delete(r.students, id)
	return nil
}

// RemoveProfessor deletes a professor. Their courses become unassigned.
func (r *Registry) RemoveProfessor(id ProfessorID) error {
	p, err := r.Professor(id)
	if err != nil {
		return err
	}
	for cid := range p.courses {
		r.courses[cid].professor = ""
	}
	delete(r.professors, id)
	return nil
}

// RemoveCourse deletes a course and every reference to it: rosters,
// the professor's course list, the classroom booking and grades.
func (r *Registry) RemoveCourse(id CourseID) error {
	c, err := r.Course(id)
	if err != nil {
		return err
	}
	for sid := range c.roster {
		delete(r.students[sid].courses, id)
	}
	if c.professor != "" {
		delete(r.professors[c.professor].courses, id)
	}
	if c.classroom != "" {
		r.classrooms[c.classroom].ledger.Release(string(id))
	}
	r.grades.dropCourse(id)
	delete(r.courses, id)
	return nil
}

// RemoveClassroom deletes a classroom. Courses held in it lose their
// classroom and with it their capacity bound.
func (r *Registry) RemoveClassroom(id ClassroomID) error {
	room, err := r.Classroom(id)
	if err != nil {
		return err
	}
	for _, occ := range room.ledger.Entries() {
		if c, ok := r.courses[CourseID(occ.CourseID)]; ok && c.classroom == id {
			c.classroom = ""
		}
	}
	delete(r.classrooms, id)
	return nil
}
