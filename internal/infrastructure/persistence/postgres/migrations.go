package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE RECORDS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS students (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS professors (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS classrooms (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    capacity INTEGER NOT NULL,

    CONSTRAINT positive_capacity CHECK (capacity > 0)
);

-- Time slots are stored as weekday (0 = Sunday) plus minutes since midnight.
CREATE TABLE IF NOT EXISTS courses (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    credits INTEGER NOT NULL DEFAULT 0,
    slot_day SMALLINT,
    slot_start SMALLINT,
    slot_end SMALLINT,
    professor_id VARCHAR(64) REFERENCES professors(id),
    classroom_id VARCHAR(64) REFERENCES classrooms(id),

    CONSTRAINT valid_credits CHECK (credits >= 0),
    CONSTRAINT slot_complete CHECK (
        (slot_day IS NULL AND slot_start IS NULL AND slot_end IS NULL) OR
        (slot_day BETWEEN 0 AND 6 AND slot_start >= 0 AND slot_end <= 1440 AND slot_start < slot_end)
    )
);

CREATE INDEX IF NOT EXISTS idx_courses_professor ON courses(professor_id);
CREATE INDEX IF NOT EXISTS idx_courses_classroom ON courses(classroom_id);
`

const migration001Down = `
DROP TABLE IF EXISTS courses;
DROP TABLE IF EXISTS classrooms;
DROP TABLE IF EXISTS professors;
DROP TABLE IF EXISTS students;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE SCHEDULING
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Accepted classroom bookings. A course holds at most one booking.
CREATE TABLE IF NOT EXISTS classroom_bookings (
    classroom_id VARCHAR(64) NOT NULL REFERENCES classrooms(id) ON DELETE CASCADE,
    course_id VARCHAR(64) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    slot_day SMALLINT NOT NULL,
    slot_start SMALLINT NOT NULL,
    slot_end SMALLINT NOT NULL,

    PRIMARY KEY (course_id),
    CONSTRAINT valid_booking CHECK (slot_day BETWEEN 0 AND 6 AND slot_start < slot_end)
);

CREATE INDEX IF NOT EXISTS idx_bookings_classroom ON classroom_bookings(classroom_id, position);

CREATE TABLE IF NOT EXISTS enrollments (
    student_id VARCHAR(64) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    course_id VARCHAR(64) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,

    PRIMARY KEY (student_id, course_id)
);

CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments(course_id);

CREATE TABLE IF NOT EXISTS grades (
    student_id VARCHAR(64) NOT NULL,
    course_id VARCHAR(64) NOT NULL,
    value DOUBLE PRECISION NOT NULL,

    PRIMARY KEY (student_id, course_id),
    FOREIGN KEY (student_id, course_id) REFERENCES enrollments(student_id, course_id) ON DELETE CASCADE,
    CONSTRAINT valid_grade CHECK (value >= 0 AND value <= 5)
);
`

const migration002Down = `
DROP TABLE IF EXISTS grades;
DROP TABLE IF EXISTS enrollments;
DROP TABLE IF EXISTS classroom_bookings;
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_records",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_scheduling",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
	}
}
