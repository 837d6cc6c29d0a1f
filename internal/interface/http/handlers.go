package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alem-hub/academic-hub/internal/application/command"
	"github.com/alem-hub/academic-hub/internal/application/query"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/internal/infrastructure/csvio"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"name":    "Academic Hub API",
		"version": s.deps.Version,
		"endpoints": map[string]string{
			"health":     "/health",
			"students":   "/api/v1/students",
			"professors": "/api/v1/professors",
			"courses":    "/api/v1/courses",
			"classrooms": "/api/v1/classrooms",
			"report":     "/api/v1/reports/global",
			"timetable":  "/api/v1/reports/timetable.csv",
		},
	})
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, status)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": s.deps.Version,
	})
}

// handleReady handles the readiness probe endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		if status := s.deps.HealthChecker.Check(r.Context()); !status.Ready {
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type createRecordRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Credits  int    `json:"credits"`
	Capacity int    `json:"capacity"`
}

func (s *Server) handleListRecords(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.deps.Queries.Records.List(r.Context(), query.ListRecordsQuery{Kind: kind})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSONWithMeta(w, r, http.StatusOK, records, &ResponseMeta{TotalCount: len(records)})
	}
}

func (s *Server) handleGetRecord(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := s.deps.Queries.Records.Get(r.Context(), query.GetRecordQuery{Kind: kind, ID: r.PathValue("id")})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, record)
	}
}

func (s *Server) handleCreateRecord(kind string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if !s.decode(w, r, &req) {
			return
		}
		res, err := s.deps.Commands.CreateRecord.Handle(r.Context(), command.CreateRecordCommand{
			Kind:          kind,
			ID:            req.ID,
			Name:          req.Name,
			Surname:       req.Surname,
			Credits:       req.Credits,
			Capacity:      req.Capacity,
			CorrelationID: getRequestID(r.Context()),
		})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		record, err := s.deps.Queries.Records.Get(r.Context(), query.GetRecordQuery{Kind: kind, ID: res.ID})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		w.Header().Set("Location", r.URL.Path+"/"+res.ID)
		writeJSON(w, r, http.StatusCreated, record)
	})
}

func (s *Server) handleDeleteRecord(kind string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		err := s.deps.Commands.DeleteRecord.Handle(r.Context(), command.DeleteRecordCommand{
			Kind: kind, ID: id, CorrelationID: getRequestID(r.Context()),
		})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"kind": kind, "id": id, "status": "deleted"})
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type timeSlotRequest struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type classroomRequest struct {
	ClassroomID string `json:"classroom_id"`
}

type professorRequest struct {
	ProfessorID string `json:"professor_id"`
}

// handleSetTimeSlot handles PUT /api/v1/courses/{id}/timeslot
func (s *Server) handleSetTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req timeSlotRequest
	if !s.decode(w, r, &req) {
		return
	}
	slot, err := s.deps.Commands.SetTimeSlot.Handle(r.Context(), command.SetTimeSlotCommand{
		CourseID:      r.PathValue("id"),
		Day:           req.Day,
		Start:         req.Start,
		End:           req.End,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"course_id": r.PathValue("id"), "time_slot": slot})
}

// handleAssignClassroom handles PUT /api/v1/courses/{id}/classroom
func (s *Server) handleAssignClassroom(w http.ResponseWriter, r *http.Request) {
	var req classroomRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.deps.Commands.AssignClassroom.Handle(r.Context(), command.AssignClassroomCommand{
		CourseID:      r.PathValue("id"),
		ClassroomID:   req.ClassroomID,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"course_id":             res.CourseID,
		"classroom_id":          res.ClassroomID,
		"previous_classroom_id": res.PreviousClassroomID,
		"remaining_capacity":    res.RemainingCapacity,
	})
}

// handleAssignProfessor handles PUT /api/v1/courses/{id}/professor
func (s *Server) handleAssignProfessor(w http.ResponseWriter, r *http.Request) {
	var req professorRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.deps.Commands.AssignProfessor.Handle(r.Context(), command.AssignProfessorCommand{
		CourseID:      r.PathValue("id"),
		ProfessorID:   req.ProfessorID,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"course_id": r.PathValue("id"), "professor_id": req.ProfessorID})
}

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT & GRADE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type enrollRequest struct {
	StudentID string `json:"student_id"`
}

type gradeRequest struct {
	Value *float64 `json:"value"`
}

// handleEnroll handles POST /api/v1/courses/{id}/enrollments
func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if !s.decode(w, r, &req) {
		return
	}
	remaining, err := s.deps.Commands.Enroll.Handle(r.Context(), command.EnrollmentCommand{
		StudentID:     req.StudentID,
		CourseID:      r.PathValue("id"),
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	body := map[string]any{"course_id": r.PathValue("id"), "student_id": req.StudentID, "remaining_capacity": nil}
	if remaining != academic.Unlimited {
		body["remaining_capacity"] = remaining
	}
	writeJSON(w, r, http.StatusCreated, body)
}

// handleWithdraw handles DELETE /api/v1/courses/{id}/enrollments/{studentID}
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Commands.Withdraw.Handle(r.Context(), command.EnrollmentCommand{
		StudentID:     r.PathValue("studentID"),
		CourseID:      r.PathValue("id"),
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{
		"course_id": r.PathValue("id"), "student_id": r.PathValue("studentID"), "status": "withdrawn",
	})
}

// handleRecordGrade handles PUT /api/v1/courses/{id}/grades/{studentID}
func (s *Server) handleRecordGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeJSONError(w, r, http.StatusBadRequest, "bad_request", "value is required")
		return
	}
	err := s.deps.Commands.RecordGrade.Handle(r.Context(), command.RecordGradeCommand{
		StudentID:     r.PathValue("studentID"),
		CourseID:      r.PathValue("id"),
		Value:         *req.Value,
		CorrelationID: getRequestID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"course_id": r.PathValue("id"), "student_id": r.PathValue("studentID"), "value": *req.Value,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE & REPORT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleSchedule(ownerKind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.deps.Queries.Schedule.Handle(r.Context(), query.GetScheduleQuery{
			OwnerKind: ownerKind,
			ID:        r.PathValue("id"),
		})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSONWithMeta(w, r, http.StatusOK, entries, &ResponseMeta{TotalCount: len(entries)})
	}
}

// handleGlobalReport handles GET /api/v1/reports/global
func (s *Server) handleGlobalReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Queries.GlobalReport.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// handleTimetable handles GET /api/v1/reports/timetable
func (s *Server) handleTimetable(w http.ResponseWriter, r *http.Request) {
	entries := s.deps.Queries.Timetable.Handle(r.Context())
	writeJSONWithMeta(w, r, http.StatusOK, entries, &ResponseMeta{TotalCount: len(entries)})
}

// handleTimetableCSV handles GET /api/v1/reports/timetable.csv
func (s *Server) handleTimetableCSV(w http.ResponseWriter, r *http.Request) {
	entries := s.deps.Queries.Timetable.Handle(r.Context())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="timetable.csv"`)
	if err := csvio.WriteTimetable(w, entries); err != nil {
		logger.FromContext(r.Context()).Error("timetable export failed", logger.Err(err))
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST & ERROR HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// decode reads a JSON body into dst. On failure it writes a 400 and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid JSON body"
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "request body is empty"
		case errors.As(err, &maxErr):
			writeJSONError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large")
			return false
		default:
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		writeJSONError(w, r, http.StatusBadRequest, "bad_request", msg)
		return false
	}
	return true
}

// statusFor maps domain error kinds to HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case shared.IsConflict(err):
		return http.StatusConflict, "conflict"
	case shared.IsValidation(err):
		return http.StatusUnprocessableEntity, "validation_failed"
	case shared.IsInvalidState(err):
		return http.StatusConflict, "invalid_state"
	default:
		return http.StatusInternalServerError, "internal_server_error"
	}
}

// writeDomainError writes err with the status of its kind. Unclassified
// errors are logged and reported without details.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			logger.String("path", r.URL.Path),
			logger.Err(err),
		)
		writeJSONError(w, r, status, code, "An unexpected error occurred")
		return
	}
	writeJSONError(w, r, status, code, err.Error())
}
