package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/memory"
)

func scheduled(t *testing.T) *workspace.Workspace {
	t.Helper()
	ctx := context.Background()
	ws, err := workspace.Open(ctx, memory.NewRegistryRepository(), academic.DefaultSeed(), nil)
	require.NoError(t, err)

	require.NoError(t, ws.Update(ctx, func(reg *academic.Registry) error {
		mon, _ := schedule.ParseTimeSlot("Mon", "08:00", "10:00")
		tue, _ := schedule.ParseTimeSlot("Tue", "08:00", "10:00")
		if err := reg.SetTimeSlot("FIS001", mon); err != nil {
			return err
		}
		if err := reg.SetTimeSlot("MAT001", tue); err != nil {
			return err
		}
		if err := reg.AssignClassroom("MAT001", "SAL002"); err != nil {
			return err
		}
		if err := reg.AssignProfessor("MAT001", "PRO001"); err != nil {
			return err
		}
		for _, c := range []academic.CourseID{"MAT001", "FIS001"} {
			if err := reg.Enroll("EST001", c); err != nil {
				return err
			}
		}
		if err := reg.RecordGrade("EST001", "MAT001", 3.0); err != nil {
			return err
		}
		return reg.RecordGrade("EST001", "FIS001", 4.0)
	}))
	return ws
}

type brokenCache struct{ *memory.ReportCache }

func (brokenCache) GetReport(context.Context) (academic.GlobalReport, bool, error) {
	return academic.GlobalReport{}, false, errors.New("connection refused")
}

func TestGlobalReportIsCached(t *testing.T) {
	ctx := context.Background()
	ws := scheduled(t)
	cache := memory.NewReportCache()
	h := NewGetGlobalReportHandler(ws, cache, nil)

	report, err := h.Handle(ctx)
	require.NoError(t, err)
	require.Len(t, report.Students, 3)
	assert.InDelta(t, 3.5, report.Students[0].Average, 1e-9)
	assert.Equal(t, academic.StandingPassed, report.Students[0].Standing)

	cached, found, err := cache.GetReport(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, report, cached)
}

func TestGlobalReportSurvivesCacheFailure(t *testing.T) {
	ws := scheduled(t)
	h := NewGetGlobalReportHandler(ws, brokenCache{memory.NewReportCache()}, nil)

	report, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Courses, 3)
}

func TestSchedules(t *testing.T) {
	ctx := context.Background()
	ws := scheduled(t)
	h := NewGetScheduleHandler(ws, memory.NewReportCache(), nil)

	entries, err := h.Handle(ctx, GetScheduleQuery{OwnerKind: academic.KindStudent, ID: "EST001"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, academic.CourseID("FIS001"), entries[0].CourseID)
	assert.Equal(t, "Aula 102", entries[1].Classroom)

	entries, err = h.Handle(ctx, GetScheduleQuery{OwnerKind: academic.KindProfessor, ID: "PRO001"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = h.Handle(ctx, GetScheduleQuery{OwnerKind: academic.KindStudent, ID: "EST999"})
	assert.True(t, shared.IsNotFound(err))
	_, err = h.Handle(ctx, GetScheduleQuery{OwnerKind: academic.KindCourse, ID: "MAT001"})
	assert.True(t, shared.IsValidation(err))
}

func TestTimetable(t *testing.T) {
	entries := NewGetTimetableHandler(scheduled(t)).Handle(context.Background())
	require.Len(t, entries, 3)
	assert.Equal(t, academic.CourseID("QUI001"), entries[2].CourseID)
	assert.Nil(t, entries[2].TimeSlot)
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	h := NewRecordsHandler(scheduled(t))

	courses, err := h.List(ctx, ListRecordsQuery{Kind: academic.KindCourse})
	require.NoError(t, err)
	require.Len(t, courses, 3)

	mat, err := h.Get(ctx, GetRecordQuery{Kind: academic.KindCourse, ID: "MAT001"})
	require.NoError(t, err)
	require.NotNil(t, mat.RemainingCapacity)
	assert.Equal(t, 19, *mat.RemainingCapacity)
	assert.Equal(t, "PRO001", mat.ProfessorID)
	assert.Equal(t, []string{"EST001"}, mat.Students)

	fis, err := h.Get(ctx, GetRecordQuery{Kind: academic.KindCourse, ID: "FIS001"})
	require.NoError(t, err)
	assert.Nil(t, fis.RemainingCapacity)

	room, err := h.Get(ctx, GetRecordQuery{Kind: academic.KindClassroom, ID: "SAL002"})
	require.NoError(t, err)
	assert.Len(t, room.Bookings, 1)

	_, err = h.Get(ctx, GetRecordQuery{Kind: academic.KindProfessor, ID: "PRO404"})
	assert.True(t, shared.IsNotFound(err))
	_, err = h.List(ctx, ListRecordsQuery{Kind: "janitor"})
	assert.True(t, shared.IsValidation(err))
}
