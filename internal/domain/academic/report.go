package academic

import (
	"sort"

	"github.com/alem-hub/academic-hub/internal/domain/schedule"
)

// Standing is the pass/fail classification of an average.
type Standing string

const (
	StandingPassed Standing = "passed"
	StandingFailed Standing = "failed"
)

// Classify returns passed for averages of at least PassingGrade.
func Classify(average float64) Standing {
	if average >= float64(PassingGrade) {
		return StandingPassed
	}
	return StandingFailed
}

func mean(values []Grade) float64 {
	if len(values) == 0 {
		return 0
	}
	// Sorting keeps the floating point sum independent of map order.
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// CourseAverage is the mean of the grades recorded for the course, 0 when
// none exist.
func (r *Registry) CourseAverage(id CourseID) (float64, error) {
	if _, err := r.Course(id); err != nil {
		return 0, err
	}
	return mean(gradeValues(r.grades.ByCourse(id))), nil
}

// StudentAverage is the mean of the student's grades, 0 when none exist.
func (r *Registry) StudentAverage(id StudentID) (float64, error) {
	if _, err := r.Student(id); err != nil {
		return 0, err
	}
	return mean(gradeValues(r.grades.ByStudent(id))), nil
}

// ProfessorAverage is the mean over every grade in every course the
// professor teaches, 0 when none exist.
func (r *Registry) ProfessorAverage(id ProfessorID) (float64, error) {
	p, err := r.Professor(id)
	if err != nil {
		return 0, err
	}
	var all []Grade
	for cid := range p.courses {
		all = append(all, gradeValues(r.grades.ByCourse(cid))...)
	}
	return mean(all), nil
}

func gradeValues[K comparable](m map[K]Grade) []Grade {
	out := make([]Grade, 0, len(m))
	for _, g := range m {
		out = append(out, g)
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORTS
// ══════════════════════════════════════════════════════════════════════════════

// CourseSummary is one row of the course section of the global report.
type CourseSummary struct {
	CourseID      CourseID `json:"course_id"`
	Name          string   `json:"name"`
	EnrolledCount int      `json:"enrolled_count"`
	Average       float64  `json:"average"`
}

// StudentSummary is one row of the student section of the global report.
type StudentSummary struct {
	StudentID StudentID `json:"student_id"`
	FullName  string    `json:"full_name"`
	Average   float64   `json:"average"`
	Standing  Standing  `json:"standing"`
}

// ProfessorSummary is one row of the professor section of the global report.
type ProfessorSummary struct {
	ProfessorID ProfessorID `json:"professor_id"`
	FullName    string      `json:"full_name"`
	CourseCount int         `json:"course_count"`
	Average     float64     `json:"average"`
}

// GlobalReport summarizes enrollment and grades across the registry.
type GlobalReport struct {
	Courses    []CourseSummary    `json:"courses"`
	Students   []StudentSummary   `json:"students"`
	Professors []ProfessorSummary `json:"professors"`
}

// BuildReport computes the global report. It only reads the registry.
func BuildReport(r *Registry) GlobalReport {
	report := GlobalReport{
		Courses:    make([]CourseSummary, 0, len(r.courses)),
		Students:   make([]StudentSummary, 0, len(r.students)),
		Professors: make([]ProfessorSummary, 0, len(r.professors)),
	}
	for _, c := range r.Courses() {
		avg, _ := r.CourseAverage(c.ID)
		report.Courses = append(report.Courses, CourseSummary{
			CourseID:      c.ID,
			Name:          c.Name,
			EnrolledCount: c.EnrolledCount(),
			Average:       avg,
		})
	}
	for _, s := range r.Students() {
		avg, _ := r.StudentAverage(s.ID)
		report.Students = append(report.Students, StudentSummary{
			StudentID: s.ID,
			FullName:  s.FullName(),
			Average:   avg,
			Standing:  Classify(avg),
		})
	}
	for _, p := range r.Professors() {
		avg, _ := r.ProfessorAverage(p.ID)
		report.Professors = append(report.Professors, ProfessorSummary{
			ProfessorID: p.ID,
			FullName:    p.FullName(),
			CourseCount: len(p.courses),
			Average:     avg,
		})
	}
	return report
}

// ScheduleEntry is one course in a personal timetable.
type ScheduleEntry struct {
	CourseID    CourseID           `json:"course_id"`
	CourseName  string             `json:"course_name"`
	TimeSlot    *schedule.TimeSlot `json:"time_slot,omitempty"`
	ClassroomID ClassroomID        `json:"classroom_id,omitempty"`
	Classroom   string             `json:"classroom,omitempty"`
	ProfessorID ProfessorID        `json:"professor_id,omitempty"`
	Professor   string             `json:"professor,omitempty"`
}

// StudentSchedule lists the courses a student takes, ordered by meeting time.
func (r *Registry) StudentSchedule(id StudentID) ([]ScheduleEntry, error) {
	s, err := r.Student(id)
	if err != nil {
		return nil, err
	}
	return r.scheduleFor(s.Courses()), nil
}

// ProfessorSchedule lists the courses a professor teaches, ordered by meeting time.
func (r *Registry) ProfessorSchedule(id ProfessorID) ([]ScheduleEntry, error) {
	p, err := r.Professor(id)
	if err != nil {
		return nil, err
	}
	return r.scheduleFor(p.Courses()), nil
}

// Timetable lists every course, ordered by meeting time. Unscheduled
// courses come last.
func (r *Registry) Timetable() []ScheduleEntry {
	ids := make([]CourseID, 0, len(r.courses))
	for id := range r.courses {
		ids = append(ids, id)
	}
	return r.scheduleFor(ids)
}

func (r *Registry) scheduleFor(ids []CourseID) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(ids))
	for _, id := range ids {
		c := r.courses[id]
		e := ScheduleEntry{CourseID: c.ID, CourseName: c.Name}
		if slot, ok := c.TimeSlot(); ok {
			e.TimeSlot = &slot
		}
		if c.classroom != "" {
			e.ClassroomID = c.classroom
			e.Classroom = r.classrooms[c.classroom].Name
		}
		if c.professor != "" {
			e.ProfessorID = c.professor
			e.Professor = r.professors[c.professor].FullName()
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TimeSlot, out[j].TimeSlot
		switch {
		case a == nil && b == nil:
			return out[i].CourseID < out[j].CourseID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Day != b.Day:
			return a.Day < b.Day
		case a.Start != b.Start:
			return a.Start < b.Start
		default:
			return out[i].CourseID < out[j].CourseID
		}
	})
	return out
}
