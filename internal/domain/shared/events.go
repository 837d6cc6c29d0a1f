// Package shared contains common domain types, errors and events
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each one is published after a successful mutation.
const (
	// Record events
	EventRecordCreated EventType = "record.created"
	EventRecordDeleted EventType = "record.deleted"

	// Scheduling events
	EventCourseScheduled   EventType = "schedule.course_scheduled"
	EventClassroomAssigned EventType = "schedule.classroom_assigned"
	EventProfessorAssigned EventType = "schedule.professor_assigned"

	// Enrollment events
	EventStudentEnrolled  EventType = "enrollment.student_enrolled"
	EventStudentWithdrawn EventType = "enrollment.student_withdrawn"
	EventGradeRecorded    EventType = "enrollment.grade_recorded"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Record Events
// ═══════════════════════════════════════════════════════════════════════════

// RecordEvent is emitted when a student, professor, course or classroom
// is created or deleted.
type RecordEvent struct {
	BaseEvent
	Kind string `json:"kind"`
}

// Payload implements Event interface.
func (e RecordEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"kind": e.Kind,
		"id":   e.AggregateId,
	}
}

// NewRecordCreatedEvent creates a new RecordEvent for a created record.
func NewRecordCreatedEvent(kind, id string) RecordEvent {
	return RecordEvent{BaseEvent: NewBaseEvent(EventRecordCreated, id), Kind: kind}
}

// NewRecordDeletedEvent creates a new RecordEvent for a deleted record.
func NewRecordDeletedEvent(kind, id string) RecordEvent {
	return RecordEvent{BaseEvent: NewBaseEvent(EventRecordDeleted, id), Kind: kind}
}

// ═══════════════════════════════════════════════════════════════════════════
// Scheduling Events
// ═══════════════════════════════════════════════════════════════════════════

// CourseScheduledEvent is emitted when a course receives a time slot.
type CourseScheduledEvent struct {
	BaseEvent
	TimeSlot string `json:"time_slot"`
}

// Payload implements Event interface.
func (e CourseScheduledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id": e.AggregateId,
		"time_slot": e.TimeSlot,
	}
}

// NewCourseScheduledEvent creates a new CourseScheduledEvent.
func NewCourseScheduledEvent(courseID, slot string) CourseScheduledEvent {
	return CourseScheduledEvent{
		BaseEvent: NewBaseEvent(EventCourseScheduled, courseID),
		TimeSlot:  slot,
	}
}

// ClassroomAssignedEvent is emitted when a classroom accepts a course.
type ClassroomAssignedEvent struct {
	BaseEvent
	ClassroomID         string `json:"classroom_id"`
	PreviousClassroomID string `json:"previous_classroom_id,omitempty"`
	RemainingCapacity   int    `json:"remaining_capacity"`
}

// Payload implements Event interface.
func (e ClassroomAssignedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":             e.AggregateId,
		"classroom_id":          e.ClassroomID,
		"previous_classroom_id": e.PreviousClassroomID,
		"remaining_capacity":    e.RemainingCapacity,
	}
}

// NewClassroomAssignedEvent creates a new ClassroomAssignedEvent.
func NewClassroomAssignedEvent(courseID, classroomID, previousID string, remaining int) ClassroomAssignedEvent {
	return ClassroomAssignedEvent{
		BaseEvent:           NewBaseEvent(EventClassroomAssigned, courseID),
		ClassroomID:         classroomID,
		PreviousClassroomID: previousID,
		RemainingCapacity:   remaining,
	}
}

// ProfessorAssignedEvent is emitted when a course receives its professor.
type ProfessorAssignedEvent struct {
	BaseEvent
	ProfessorID string `json:"professor_id"`
}

// Payload implements Event interface.
func (e ProfessorAssignedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":    e.AggregateId,
		"professor_id": e.ProfessorID,
	}
}

// NewProfessorAssignedEvent creates a new ProfessorAssignedEvent.
func NewProfessorAssignedEvent(courseID, professorID string) ProfessorAssignedEvent {
	return ProfessorAssignedEvent{
		BaseEvent:   NewBaseEvent(EventProfessorAssigned, courseID),
		ProfessorID: professorID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Enrollment Events
// ═══════════════════════════════════════════════════════════════════════════

// EnrollmentEvent is emitted when a student joins or leaves a course.
type EnrollmentEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
}

// Payload implements Event interface.
func (e EnrollmentEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":  e.AggregateId,
		"student_id": e.StudentID,
	}
}

// NewStudentEnrolledEvent creates a new EnrollmentEvent for an enrollment.
func NewStudentEnrolledEvent(courseID, studentID string) EnrollmentEvent {
	return EnrollmentEvent{BaseEvent: NewBaseEvent(EventStudentEnrolled, courseID), StudentID: studentID}
}

// NewStudentWithdrawnEvent creates a new EnrollmentEvent for a withdrawal.
func NewStudentWithdrawnEvent(courseID, studentID string) EnrollmentEvent {
	return EnrollmentEvent{BaseEvent: NewBaseEvent(EventStudentWithdrawn, courseID), StudentID: studentID}
}

// GradeRecordedEvent is emitted when a grade is stored.
type GradeRecordedEvent struct {
	BaseEvent
	StudentID string  `json:"student_id"`
	Value     float64 `json:"value"`
}

// Payload implements Event interface.
func (e GradeRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_id":  e.AggregateId,
		"student_id": e.StudentID,
		"value":      e.Value,
	}
}

// NewGradeRecordedEvent creates a new GradeRecordedEvent.
func NewGradeRecordedEvent(courseID, studentID string, value float64) GradeRecordedEvent {
	return GradeRecordedEvent{
		BaseEvent: NewBaseEvent(EventGradeRecorded, courseID),
		StudentID: studentID,
		Value:     value,
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
