package query

import (
	"context"
	"strings"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET GLOBAL REPORT QUERY
// Course, student and professor averages with pass/fail standing.
// ══════════════════════════════════════════════════════════════════════════════

// GetGlobalReportHandler serves the global report, cache-aside.
type GetGlobalReportHandler struct {
	ws    *workspace.Workspace
	cache ReportCache
	log   *logger.Logger
}

// NewGetGlobalReportHandler creates a handler. cache may be nil.
func NewGetGlobalReportHandler(ws *workspace.Workspace, cache ReportCache, log *logger.Logger) *GetGlobalReportHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GetGlobalReportHandler{ws: ws, cache: cache, log: log.With(logger.Component("query"), logger.Operation("global_report"))}
}

// Handle returns the global report. Cache failures are logged and the
// report is computed from the registry.
func (h *GetGlobalReportHandler) Handle(ctx context.Context) (academic.GlobalReport, error) {
	if h.cache != nil {
		report, found, err := h.cache.GetReport(ctx)
		if err != nil {
			h.log.Warn("report cache read failed", logger.Err(err))
		} else if found {
			return report, nil
		}
	}

	var report academic.GlobalReport
	// The cache is filled under the read lock so a concurrent update cannot
	// invalidate before a stale report is stored.
	_ = h.ws.View(func(reg *academic.Registry) error {
		report = academic.BuildReport(reg)
		if h.cache != nil {
			if err := h.cache.SetReport(ctx, report); err != nil {
				h.log.Warn("report cache write failed", logger.Err(err))
			}
		}
		return nil
	})
	return report, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET SCHEDULE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetScheduleQuery selects a student's or a professor's schedule.
type GetScheduleQuery struct {
	// OwnerKind is academic.KindStudent or academic.KindProfessor.
	OwnerKind string
	ID        string
}

// Validate checks the query.
func (q GetScheduleQuery) Validate() error {
	if q.OwnerKind != academic.KindStudent && q.OwnerKind != academic.KindProfessor {
		return shared.Errorf("query", "GetSchedule", shared.ErrInvalidInput, "schedules exist for students and professors, not %q", q.OwnerKind)
	}
	if strings.TrimSpace(q.ID) == "" {
		return shared.NewDomainError("query", "GetSchedule", shared.ErrInvalidID, "id is required")
	}
	return nil
}

// GetScheduleHandler serves personal schedules, cache-aside.
type GetScheduleHandler struct {
	ws    *workspace.Workspace
	cache ReportCache
	log   *logger.Logger
}

// NewGetScheduleHandler creates a handler. cache may be nil.
func NewGetScheduleHandler(ws *workspace.Workspace, cache ReportCache, log *logger.Logger) *GetScheduleHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GetScheduleHandler{ws: ws, cache: cache, log: log.With(logger.Component("query"), logger.Operation("schedule"))}
}

// Handle returns the owner's courses ordered by day and start time.
// Courses without a slot come last.
func (h *GetScheduleHandler) Handle(ctx context.Context, q GetScheduleQuery) ([]academic.ScheduleEntry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	owner := studentOwner(q.ID)
	if q.OwnerKind == academic.KindProfessor {
		owner = professorOwner(q.ID)
	}

	if h.cache != nil {
		entries, found, err := h.cache.GetSchedule(ctx, owner)
		if err != nil {
			h.log.Warn("schedule cache read failed", logger.String("owner", owner), logger.Err(err))
		} else if found {
			return entries, nil
		}
	}

	var entries []academic.ScheduleEntry
	err := h.ws.View(func(reg *academic.Registry) error {
		var err error
		if q.OwnerKind == academic.KindStudent {
			entries, err = reg.StudentSchedule(academic.StudentID(q.ID))
		} else {
			entries, err = reg.ProfessorSchedule(academic.ProfessorID(q.ID))
		}
		if err != nil {
			return err
		}
		if h.cache != nil {
			if err := h.cache.SetSchedule(ctx, owner, entries); err != nil {
				h.log.Warn("schedule cache write failed", logger.String("owner", owner), logger.Err(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET TIMETABLE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetTimetableHandler returns every course in schedule order.
type GetTimetableHandler struct {
	ws *workspace.Workspace
}

// NewGetTimetableHandler creates a handler.
func NewGetTimetableHandler(ws *workspace.Workspace) *GetTimetableHandler {
	return &GetTimetableHandler{ws: ws}
}

// Handle returns the timetable.
func (h *GetTimetableHandler) Handle(_ context.Context) []academic.ScheduleEntry {
	var entries []academic.ScheduleEntry
	_ = h.ws.View(func(reg *academic.Registry) error {
		entries = reg.Timetable()
		return nil
	})
	return entries
}
