package csvio

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
)

// TimetableRow is one exported timetable line.
type TimetableRow struct {
	Day         string `csv:"day"`
	Start       string `csv:"start"`
	End         string `csv:"end"`
	CourseID    string `csv:"course_id"`
	Course      string `csv:"course"`
	ClassroomID string `csv:"classroom_id"`
	Classroom   string `csv:"classroom"`
	ProfessorID string `csv:"professor_id"`
	Professor   string `csv:"professor"`
}

// TimetableRows converts schedule entries, keeping their order. Unscheduled
// courses get empty time columns.
func TimetableRows(entries []academic.ScheduleEntry) []*TimetableRow {
	rows := make([]*TimetableRow, 0, len(entries))
	for _, e := range entries {
		row := &TimetableRow{
			CourseID:    string(e.CourseID),
			Course:      e.CourseName,
			ClassroomID: string(e.ClassroomID),
			Classroom:   e.Classroom,
			ProfessorID: string(e.ProfessorID),
			Professor:   e.Professor,
		}
		if e.TimeSlot != nil {
			row.Day = e.TimeSlot.Day.String()
			row.Start = e.TimeSlot.Start.String()
			row.End = e.TimeSlot.End.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTimetable writes the entries as CSV with a header line.
func WriteTimetable(w io.Writer, entries []academic.ScheduleEntry) error {
	rows := TimetableRows(entries)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("csvio: write timetable: %w", err)
	}
	return nil
}
