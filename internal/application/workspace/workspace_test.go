package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/memory"
)

type failingRepo struct {
	*memory.RegistryRepository
	fail bool
}

func (r *failingRepo) Save(ctx context.Context, snap academic.Snapshot) error {
	if r.fail {
		return errors.New("disk full")
	}
	return r.RegistryRepository.Save(ctx, snap)
}

func TestOpenSeedsEmptyRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRegistryRepository()

	ws, err := Open(ctx, repo, academic.DefaultSeed(), nil)
	require.NoError(t, err)
	assert.Len(t, ws.Snapshot().Students, 3)
	assert.Equal(t, 1, repo.Saves())

	// A second open restores the saved state and ignores the seed.
	require.NoError(t, ws.Update(ctx, func(reg *academic.Registry) error {
		_, err := reg.AddStudent("EST004", "Lucía", "Ruiz")
		return err
	}))
	again, err := Open(ctx, repo, academic.Snapshot{}, nil)
	require.NoError(t, err)
	assert.Len(t, again.Snapshot().Students, 4)
}

func TestOpenRejectsOverbookedSeed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRegistryRepository()

	mon := schedule.TimeSlot{Day: schedule.Monday, Start: 9 * 60, End: 10 * 60}
	seed := academic.Snapshot{
		Students: []academic.StudentRecord{{ID: "S1", Name: "Uno"}, {ID: "S2", Name: "Dos"}},
		Classrooms: []academic.ClassroomRecord{{
			ID: "R1", Name: "Room 1", Capacity: 1,
			Bookings: []schedule.Occupancy{{CourseID: "A", Slot: mon}},
		}},
		Courses:     []academic.CourseRecord{{ID: "A", Name: "Course A", Slot: &mon, ClassroomID: "R1"}},
		Enrollments: []academic.EnrollmentRecord{{StudentID: "S1", CourseID: "A"}, {StudentID: "S2", CourseID: "A"}},
	}

	_, err := Open(ctx, repo, seed, nil)
	assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
	assert.Zero(t, repo.Saves())
}

func TestUpdateDiscardsFailedChange(t *testing.T) {
	ctx := context.Background()
	ws, err := Open(ctx, memory.NewRegistryRepository(), academic.DefaultSeed(), nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = ws.Update(ctx, func(reg *academic.Registry) error {
		_, _ = reg.AddStudent("EST004", "Lucía", "Ruiz")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = ws.View(func(reg *academic.Registry) error {
		_, err := reg.Student("EST004")
		return err
	})
	assert.Error(t, err)
}

func TestUpdateDiscardsChangeWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{RegistryRepository: memory.NewRegistryRepository()}
	ws, err := Open(ctx, repo, academic.DefaultSeed(), nil)
	require.NoError(t, err)

	repo.fail = true
	err = ws.Update(ctx, func(reg *academic.Registry) error {
		return reg.Enroll("EST001", "MAT001")
	})
	require.Error(t, err)

	_ = ws.View(func(reg *academic.Registry) error {
		c, err := reg.Course("MAT001")
		require.NoError(t, err)
		assert.Zero(t, c.EnrolledCount())
		return nil
	})
}
