package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func mustSlot(t *testing.T, day, start, end string) TimeSlot {
	t.Helper()
	s, err := ParseTimeSlot(day, start, end)
	require.NoError(t, err)
	return s
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 5, tod.Minute())
	assert.Equal(t, "09:05", tod.String())

	unpadded, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, tod, unpadded)

	for _, bad := range []string{"", "9", "24:00", "10:60", "aa:bb", "10:5", "100:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
		assert.True(t, shared.IsValidation(err), bad)
	}
}

func TestTimeOfDayOrderingIsNumeric(t *testing.T) {
	// "9:00" < "10:00" must hold even though the strings compare the other way.
	nine, _ := ParseTimeOfDay("9:00")
	ten, _ := ParseTimeOfDay("10:00")
	assert.Less(t, int(nine), int(ten))
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"Monday": Monday, "mon": Monday, "LUNES": Monday,
		"miércoles": Wednesday, "Fri": Friday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestNewTimeSlotRejectsEmptyInterval(t *testing.T) {
	_, err := ParseTimeSlot("Monday", "10:00", "10:00")
	assert.ErrorIs(t, err, shared.ErrInvalidTimeSlot)

	_, err = ParseTimeSlot("Monday", "11:00", "10:00")
	assert.ErrorIs(t, err, shared.ErrInvalidTimeSlot)

	_, err = NewTimeSlot(Weekday(9), 60, 120)
	assert.ErrorIs(t, err, shared.ErrInvalidTimeSlot)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{"back to back", mustSlot(t, "Mon", "09:00", "10:00"), mustSlot(t, "Mon", "10:00", "11:00"), false},
		{"partial", mustSlot(t, "Mon", "09:00", "10:30"), mustSlot(t, "Mon", "10:00", "11:00"), true},
		{"contained", mustSlot(t, "Mon", "08:00", "12:00"), mustSlot(t, "Mon", "09:00", "10:00"), true},
		{"identical", mustSlot(t, "Tue", "14:00", "15:00"), mustSlot(t, "Tue", "14:00", "15:00"), true},
		{"different day", mustSlot(t, "Mon", "09:00", "10:00"), mustSlot(t, "Tue", "09:00", "10:00"), false},
		{"disjoint", mustSlot(t, "Wed", "08:00", "09:00"), mustSlot(t, "Wed", "13:00", "14:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.a.Overlaps(tt.b), tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlapsNeverAcrossDays(t *testing.T) {
	base := mustSlot(t, "Mon", "00:00", "23:59")
	for d := Sunday; d <= Saturday; d++ {
		if d == Monday {
			continue
		}
		other, err := NewTimeSlot(d, 0, 23*60+59)
		require.NoError(t, err)
		assert.False(t, base.Overlaps(other), d.String())
	}
}

func TestTimeSlotString(t *testing.T) {
	s := mustSlot(t, "lunes", "9:00", "10:30")
	assert.Equal(t, "Monday 09:00-10:30", s.String())
	assert.Equal(t, 90*time.Minute, s.Duration())
}

func TestTimeSlotJSONUsesDayNames(t *testing.T) {
	s := mustSlot(t, "martes", "9:00", "10:30")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"Tuesday","start":"09:00","end":"10:30"}`, string(data))

	var back TimeSlot
	require.NoError(t, json.Unmarshal([]byte(`{"day":"viernes","start":"08:00","end":"09:00"}`), &back))
	assert.Equal(t, Friday, back.Day)

	assert.Error(t, json.Unmarshal([]byte(`{"day":"Funday","start":"08:00","end":"09:00"}`), &back))
	_, err = json.Marshal(TimeSlot{Day: Weekday(9), Start: 60, End: 120})
	assert.Error(t, err)
}
