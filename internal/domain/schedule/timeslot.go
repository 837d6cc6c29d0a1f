// Package schedule holds the time values courses are scheduled with and the
// occupancy ledger that keeps a classroom free of overlapping bookings.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TIME OF DAY
// ══════════════════════════════════════════════════════════════════════════════

// TimeOfDay is a wall-clock time expressed in minutes since midnight.
type TimeOfDay int

const (
	// MinutesPerDay bounds every TimeOfDay value.
	MinutesPerDay TimeOfDay = 24 * 60
)

// NewTimeOfDay builds a TimeOfDay from hours and minutes.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, shared.Errorf("schedule", "NewTimeOfDay", shared.ErrInvalidFormat,
			"time %d:%02d is outside 00:00-23:59", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay parses "HH:MM" (the hour may be unpadded).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return 0, shared.Errorf("schedule", "ParseTimeOfDay", shared.ErrInvalidFormat,
			"time %q must look like HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, shared.WrapError("schedule", "ParseTimeOfDay", shared.ErrInvalidFormat, "invalid hour", err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, shared.WrapError("schedule", "ParseTimeOfDay", shared.ErrInvalidFormat, "invalid minute", err)
	}
	return NewTimeOfDay(hour, minute)
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// IsValid checks that the value lies within a single day.
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < MinutesPerDay
}

// String returns the zero-padded "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	v, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// WEEKDAY
// ══════════════════════════════════════════════════════════════════════════════

// Weekday is a day of the week. Its text form is the English day name.
type Weekday time.Weekday

// Days of the week.
const (
	Sunday    = Weekday(time.Sunday)
	Monday    = Weekday(time.Monday)
	Tuesday   = Weekday(time.Tuesday)
	Wednesday = Weekday(time.Wednesday)
	Thursday  = Weekday(time.Thursday)
	Friday    = Weekday(time.Friday)
	Saturday  = Weekday(time.Saturday)
)

var weekdayNames = map[string]Weekday{
	"sunday": Sunday, "sun": Sunday, "domingo": Sunday,
	"monday": Monday, "mon": Monday, "lunes": Monday,
	"tuesday": Tuesday, "tue": Tuesday, "martes": Tuesday,
	"wednesday": Wednesday, "wed": Wednesday, "miercoles": Wednesday, "miércoles": Wednesday,
	"thursday": Thursday, "thu": Thursday, "jueves": Thursday,
	"friday": Friday, "fri": Friday, "viernes": Friday,
	"saturday": Saturday, "sat": Saturday, "sabado": Saturday, "sábado": Saturday,
}

// ParseWeekday accepts English day names, their three-letter abbreviations and
// Spanish day names, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, shared.Errorf("schedule", "ParseWeekday", shared.ErrInvalidFormat, "unknown weekday %q", s)
	}
	return day, nil
}

// IsValid reports whether d is Sunday through Saturday.
func (d Weekday) IsValid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the English day name.
func (d Weekday) String() string {
	return time.Weekday(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, shared.Errorf("schedule", "MarshalText", shared.ErrInvalidFormat, "invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	v, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// TIME SLOT
// ══════════════════════════════════════════════════════════════════════════════

// TimeSlot is the weekly meeting of a course: one day, a half-open
// [Start, End) interval.
type TimeSlot struct {
	Day   Weekday   `json:"day"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewTimeSlot validates and builds a TimeSlot.
func NewTimeSlot(day Weekday, start, end TimeOfDay) (TimeSlot, error) {
	if !day.IsValid() {
		return TimeSlot{}, shared.Errorf("schedule", "NewTimeSlot", shared.ErrInvalidTimeSlot, "invalid weekday %d", int(day))
	}
	if !start.IsValid() || !end.IsValid() {
		return TimeSlot{}, shared.NewDomainError("schedule", "NewTimeSlot", shared.ErrInvalidTimeSlot, "time outside of day")
	}
	if start >= end {
		return TimeSlot{}, shared.Errorf("schedule", "NewTimeSlot", shared.ErrInvalidTimeSlot,
			"start %s must be before end %s", start, end)
	}
	return TimeSlot{Day: day, Start: start, End: end}, nil
}

// ParseTimeSlot builds a TimeSlot from its textual parts, e.g.
// ("Monday", "09:00", "10:30").
func ParseTimeSlot(day, start, end string) (TimeSlot, error) {
	d, err := ParseWeekday(day)
	if err != nil {
		return TimeSlot{}, err
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(d, s, e)
}

// Overlaps reports whether both slots fall on the same day and their
// half-open intervals intersect. Back-to-back slots do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Day == other.Day && !(s.End <= other.Start || s.Start >= other.End)
}

// Duration returns the length of the slot.
func (s TimeSlot) Duration() time.Duration {
	return time.Duration(s.End-s.Start) * time.Minute
}

// Window returns the "HH:MM-HH:MM" part of the slot.
func (s TimeSlot) Window() string {
	return s.Start.String() + "-" + s.End.String()
}

// String returns e.g. "Monday 09:00-10:30".
func (s TimeSlot) String() string {
	return s.Day.String() + " " + s.Window()
}
