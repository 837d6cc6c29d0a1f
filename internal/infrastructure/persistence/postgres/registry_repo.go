package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// RegistryRepository implements academic.Repository. Save rewrites every
// table inside one transaction; Load reads them back in a read-only
// repeatable-read transaction.
type RegistryRepository struct {
	conn *Connection
}

// NewRegistryRepository creates a repository on an open connection.
func NewRegistryRepository(conn *Connection) *RegistryRepository {
	return &RegistryRepository{conn: conn}
}

// Tables in dependency order: a table only references tables before it.
var registryTables = []string{
	"students", "professors", "classrooms", "courses",
	"classroom_bookings", "enrollments", "grades",
}

// Save replaces the stored registry with snap.
func (r *RegistryRepository) Save(ctx context.Context, snap academic.Snapshot) error {
	err := r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		for i := len(registryTables) - 1; i >= 0; i-- {
			if _, err := tx.Exec(ctx, "DELETE FROM "+registryTables[i]); err != nil {
				return fmt.Errorf("clear %s: %w", registryTables[i], err)
			}
		}
		for _, table := range registryTables {
			cols, rows := snapshotRows(table, snap)
			if len(rows) == 0 {
				continue
			}
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, cols, pgx.CopyFromRows(rows)); err != nil {
				return fmt.Errorf("copy %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.WrapError("registry", "Save", shared.ErrInvalidState, "snapshot references missing records", err)
		}
		return fmt.Errorf("postgres: save registry: %w", err)
	}
	return nil
}

func snapshotRows(table string, snap academic.Snapshot) ([]string, [][]any) {
	var rows [][]any
	switch table {
	case "students":
		for _, s := range snap.Students {
			rows = append(rows, []any{string(s.ID), s.Name, s.Surname})
		}
		return []string{"id", "name", "surname"}, rows
	case "professors":
		for _, p := range snap.Professors {
			rows = append(rows, []any{string(p.ID), p.Name, p.Surname})
		}
		return []string{"id", "name", "surname"}, rows
	case "classrooms":
		for _, c := range snap.Classrooms {
			rows = append(rows, []any{string(c.ID), c.Name, int32(c.Capacity)})
		}
		return []string{"id", "name", "capacity"}, rows
	case "courses":
		for _, c := range snap.Courses {
			day, start, end := slotColumns(c.Slot)
			rows = append(rows, []any{
				string(c.ID), c.Name, int32(c.Credits), day, start, end,
				nullableID(string(c.ProfessorID)), nullableID(string(c.ClassroomID)),
			})
		}
		return []string{"id", "name", "credits", "slot_day", "slot_start", "slot_end", "professor_id", "classroom_id"}, rows
	case "classroom_bookings":
		for _, c := range snap.Classrooms {
			for i, b := range c.Bookings {
				rows = append(rows, []any{
					string(c.ID), b.CourseID, int32(i),
					int16(b.Slot.Day), int16(b.Slot.Start), int16(b.Slot.End),
				})
			}
		}
		return []string{"classroom_id", "course_id", "position", "slot_day", "slot_start", "slot_end"}, rows
	case "enrollments":
		for _, e := range snap.Enrollments {
			rows = append(rows, []any{string(e.StudentID), string(e.CourseID)})
		}
		return []string{"student_id", "course_id"}, rows
	case "grades":
		for _, g := range snap.Grades {
			rows = append(rows, []any{string(g.StudentID), string(g.CourseID), g.Value})
		}
		return []string{"student_id", "course_id", "value"}, rows
	}
	return nil, nil
}

func slotColumns(slot *schedule.TimeSlot) (day, start, end *int16) {
	if slot == nil {
		return nil, nil, nil
	}
	d, s, e := int16(slot.Day), int16(slot.Start), int16(slot.End)
	return &d, &s, &e
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// Load reads the stored registry. An empty database yields an empty snapshot.
func (r *RegistryRepository) Load(ctx context.Context) (academic.Snapshot, error) {
	var snap academic.Snapshot
	err := r.conn.WithTx(ctx, SnapshotTxOptions(), func(tx pgx.Tx) error {
		var err error
		if snap.Students, err = collect(ctx, tx,
			"SELECT id, name, surname FROM students ORDER BY id",
			func(row pgx.CollectableRow) (academic.StudentRecord, error) {
				var s academic.StudentRecord
				err := row.Scan(&s.ID, &s.Name, &s.Surname)
				return s, err
			}); err != nil {
			return err
		}
		if snap.Professors, err = collect(ctx, tx,
			"SELECT id, name, surname FROM professors ORDER BY id",
			func(row pgx.CollectableRow) (academic.ProfessorRecord, error) {
				var p academic.ProfessorRecord
				err := row.Scan(&p.ID, &p.Name, &p.Surname)
				return p, err
			}); err != nil {
			return err
		}
		if snap.Classrooms, err = collect(ctx, tx,
			"SELECT id, name, capacity FROM classrooms ORDER BY id",
			func(row pgx.CollectableRow) (academic.ClassroomRecord, error) {
				var c academic.ClassroomRecord
				err := row.Scan(&c.ID, &c.Name, &c.Capacity)
				return c, err
			}); err != nil {
			return err
		}
		if snap.Courses, err = collect(ctx, tx,
			`SELECT id, name, credits, slot_day, slot_start, slot_end,
			        COALESCE(professor_id, ''), COALESCE(classroom_id, '')
			 FROM courses ORDER BY id`,
			scanCourse); err != nil {
			return err
		}
		if err := loadBookings(ctx, tx, &snap); err != nil {
			return err
		}
		if snap.Enrollments, err = collect(ctx, tx,
			"SELECT student_id, course_id FROM enrollments ORDER BY course_id, student_id",
			func(row pgx.CollectableRow) (academic.EnrollmentRecord, error) {
				var e academic.EnrollmentRecord
				err := row.Scan(&e.StudentID, &e.CourseID)
				return e, err
			}); err != nil {
			return err
		}
		snap.Grades, err = collect(ctx, tx,
			"SELECT student_id, course_id, value FROM grades ORDER BY student_id, course_id",
			func(row pgx.CollectableRow) (academic.GradeRecord, error) {
				var g academic.GradeRecord
				err := row.Scan(&g.StudentID, &g.CourseID, &g.Value)
				return g, err
			})
		return err
	})
	if err != nil {
		return academic.Snapshot{}, fmt.Errorf("postgres: load registry: %w", err)
	}
	return snap, nil
}

func collect[T any](ctx context.Context, tx pgx.Tx, sql string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}

func scanCourse(row pgx.CollectableRow) (academic.CourseRecord, error) {
	var (
		c               academic.CourseRecord
		day, start, end *int16
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Credits, &day, &start, &end, &c.ProfessorID, &c.ClassroomID); err != nil {
		return c, err
	}
	if day != nil && start != nil && end != nil {
		c.Slot = &schedule.TimeSlot{
			Day:   schedule.Weekday(*day),
			Start: schedule.TimeOfDay(*start),
			End:   schedule.TimeOfDay(*end),
		}
	}
	return c, nil
}

func loadBookings(ctx context.Context, tx pgx.Tx, snap *academic.Snapshot) error {
	rows, err := tx.Query(ctx,
		`SELECT classroom_id, course_id, slot_day, slot_start, slot_end
		 FROM classroom_bookings ORDER BY classroom_id, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[academic.ClassroomID]int, len(snap.Classrooms))
	for i, c := range snap.Classrooms {
		index[c.ID] = i
	}
	for rows.Next() {
		var (
			classroomID     academic.ClassroomID
			occ             schedule.Occupancy
			day, start, end int16
		)
		if err := rows.Scan(&classroomID, &occ.CourseID, &day, &start, &end); err != nil {
			return err
		}
		occ.Slot = schedule.TimeSlot{Day: schedule.Weekday(day), Start: schedule.TimeOfDay(start), End: schedule.TimeOfDay(end)}
		i, ok := index[classroomID]
		if !ok {
			return fmt.Errorf("booking for unknown classroom %q", classroomID)
		}
		snap.Classrooms[i].Bookings = append(snap.Classrooms[i].Bookings, occ)
	}
	return rows.Err()
}
