package academic

import (
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// Unlimited is returned by RemainingCapacity for courses without a classroom.
const Unlimited = -1

// SetTimeSlot gives the course its weekly slot, replacing any previous one.
// Room conflicts are not checked here: a course that changes slot gives up
// its classroom booking and has to be assigned a classroom again. The new
// slot must not overlap another course taken by an enrolled student.
func (r *Registry) SetTimeSlot(courseID CourseID, slot schedule.TimeSlot) error {
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	if c.slot != nil && *c.slot == slot {
		return nil
	}
	for _, sid := range c.Students() {
		s := r.students[sid]
		for _, otherID := range s.Courses() {
			other := r.courses[otherID]
			if other.ID == c.ID || other.slot == nil || !slot.Overlaps(*other.slot) {
				continue
			}
			return shared.Errorf(KindCourse, "SetTimeSlot", shared.ErrScheduleConflict,
				"%s also takes %q on %s", s.FullName(), other.Name, slot.Day)
		}
	}
	if c.classroom != "" {
		r.classrooms[c.classroom].ledger.Release(string(c.ID))
		c.classroom = ""
	}
	c.slot = &slot
	return nil
}

// RemainingCapacity returns the free seats of a course, or Unlimited when
// no classroom is assigned.
func (r *Registry) RemainingCapacity(courseID CourseID) (int, error) {
	c, err := r.Course(courseID)
	if err != nil {
		return 0, err
	}
	return r.remaining(c), nil
}

func (r *Registry) remaining(c *Course) int {
	if c.classroom == "" {
		return Unlimited
	}
	return r.classrooms[c.classroom].Capacity - len(c.roster)
}

// AssignClassroom books the course's slot in the classroom. The course must
// have a slot and the classroom must seat the current roster. When the
// course moves from another classroom, the old booking is released.
func (r *Registry) AssignClassroom(courseID CourseID, classroomID ClassroomID) error {
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	room, err := r.Classroom(classroomID)
	if err != nil {
		return err
	}
	if c.slot == nil {
		return shared.Errorf(KindCourse, "AssignClassroom", shared.ErrNoTimeSlot,
			"course %q has no time slot", c.Name)
	}
	if room.Capacity < len(c.roster) {
		return shared.Errorf(KindCourse, "AssignClassroom", shared.ErrCapacityExceeded,
			"classroom %q seats %d but course %q has %d students", room.Name, room.Capacity, c.Name, len(c.roster))
	}
	if err := room.ledger.Accept(string(c.ID), *c.slot); err != nil {
		return err
	}
	if c.classroom != "" && c.classroom != room.ID {
		r.classrooms[c.classroom].ledger.Release(string(c.ID))
	}
	c.classroom = room.ID
	return nil
}

// AssignProfessor sets the course's professor. A course keeps its first
// professor for good.
func (r *Registry) AssignProfessor(courseID CourseID, professorID ProfessorID) error {
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	p, err := r.Professor(professorID)
	if err != nil {
		return err
	}
	if c.professor != "" {
		current := r.professors[c.professor]
		return shared.Errorf(KindCourse, "AssignProfessor", shared.ErrAlreadyAssigned,
			"course %q is already taught by %s", c.Name, current.FullName())
	}
	c.professor = p.ID
	p.courses[c.ID] = struct{}{}
	return nil
}

// Enroll adds the student to the course roster and the course to the
// student's courses. It fails without side effects when the student is
// already enrolled, the classroom is full, or the course's slot overlaps a
// slot of another course the student takes.
func (r *Registry) Enroll(studentID StudentID, courseID CourseID) error {
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	if c.Has(s.ID) {
		return shared.Errorf(KindCourse, "Enroll", shared.ErrAlreadyEnrolled,
			"%s is already enrolled in %q", s.FullName(), c.Name)
	}
	if c.classroom != "" && r.remaining(c) <= 0 {
		return shared.Errorf(KindCourse, "Enroll", shared.ErrCapacityExceeded,
			"course %q has no seats left", c.Name)
	}
	if c.slot != nil {
		for _, otherID := range s.Courses() {
			other := r.courses[otherID]
			if other.slot == nil || !c.slot.Overlaps(*other.slot) {
				continue
			}
			return shared.Errorf(KindCourse, "Enroll", shared.ErrScheduleConflict,
				"schedule conflict between %q and %q on %s", c.Name, other.Name, c.slot.Day)
		}
	}
	c.roster[s.ID] = struct{}{}
	s.courses[c.ID] = struct{}{}
	return nil
}

// Withdraw removes the student from the course on both sides and drops the
// grade they had in it.
func (r *Registry) Withdraw(studentID StudentID, courseID CourseID) error {
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	if !c.Has(s.ID) {
		return shared.Errorf(KindCourse, "Withdraw", shared.ErrNotEnrolled,
			"%s is not enrolled in %q", s.FullName(), c.Name)
	}
	delete(c.roster, s.ID)
	delete(s.courses, c.ID)
	r.grades.remove(s.ID, c.ID)
	return nil
}

// RecordGrade stores the student's grade for the course, replacing any
// earlier one. The value is validated before anything else.
func (r *Registry) RecordGrade(studentID StudentID, courseID CourseID, value float64) error {
	g, err := NewGrade(value)
	if err != nil {
		return err
	}
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	if !c.Has(s.ID) {
		return shared.Errorf(KindCourse, "RecordGrade", shared.ErrNotEnrolled,
			"%s is not enrolled in %q", s.FullName(), c.Name)
	}
	r.grades.set(s.ID, c.ID, g)
	return nil
}
