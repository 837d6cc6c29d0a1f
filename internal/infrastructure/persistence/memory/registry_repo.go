// Package memory provides in-process implementations of the persistence and
// cache ports, used when no database or Redis is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
)

// RegistryRepository keeps the last saved snapshot in memory.
type RegistryRepository struct {
	mu    sync.RWMutex
	snap  academic.Snapshot
	saves int
}

// NewRegistryRepository creates an empty repository.
func NewRegistryRepository() *RegistryRepository {
	return &RegistryRepository{}
}

// Load returns a copy of the last saved snapshot.
func (r *RegistryRepository) Load(_ context.Context) (academic.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copySnapshot(r.snap), nil
}

// Save stores a copy of snap.
func (r *RegistryRepository) Save(ctx context.Context, snap academic.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = copySnapshot(snap)
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (r *RegistryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func copySnapshot(s academic.Snapshot) academic.Snapshot {
	out := academic.Snapshot{
		Students:    append([]academic.StudentRecord(nil), s.Students...),
		Professors:  append([]academic.ProfessorRecord(nil), s.Professors...),
		Classrooms:  make([]academic.ClassroomRecord, len(s.Classrooms)),
		Courses:     make([]academic.CourseRecord, len(s.Courses)),
		Enrollments: append([]academic.EnrollmentRecord(nil), s.Enrollments...),
		Grades:      append([]academic.GradeRecord(nil), s.Grades...),
	}
	for i, c := range s.Classrooms {
		c.Bookings = append([]schedule.Occupancy(nil), c.Bookings...)
		out.Classrooms[i] = c
	}
	for i, c := range s.Courses {
		if c.Slot != nil {
			slot := *c.Slot
			c.Slot = &slot
		}
		out.Courses[i] = c
	}
	return out
}
