// Package workspace owns the live academic registry and serializes access to
// it. Every mutation runs on a private copy that is persisted and then
// swapped in, so a failed operation or a failed save leaves the published
// state untouched.
package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// Workspace guards a Registry with a read-write lock.
type Workspace struct {
	mu   sync.RWMutex
	reg  *academic.Registry
	repo academic.Repository
	log  *logger.Logger
}

// New wraps an existing registry.
func New(reg *academic.Registry, repo academic.Repository, log *logger.Logger) *Workspace {
	if log == nil {
		log = logger.Nop()
	}
	return &Workspace{
		reg:  reg,
		repo: repo,
		log:  log.With(logger.Component("workspace")),
	}
}

// Open loads the last saved state from repo. When nothing was saved yet,
// the registry is built from seed and saved right away.
func Open(ctx context.Context, repo academic.Repository, seed academic.Snapshot, log *logger.Logger) (*Workspace, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace: load: %w", err)
	}

	seeded := false
	if snap.IsEmpty() {
		snap, seeded = seed, true
	}

	reg, err := academic.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("workspace: restore: %w", err)
	}

	w := New(reg, repo, log)
	if seeded && !seed.IsEmpty() {
		if err := repo.Save(ctx, reg.Snapshot()); err != nil {
			return nil, fmt.Errorf("workspace: save seed: %w", err)
		}
		w.log.Info("registry seeded",
			logger.Int("students", len(seed.Students)),
			logger.Int("courses", len(seed.Courses)),
		)
	}
	return w, nil
}

// Update runs fn against a copy of the registry under the write lock. If fn
// and the save both succeed the copy becomes the live registry.
func (w *Workspace) Update(ctx context.Context, fn func(reg *academic.Registry) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft := w.reg.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	if err := w.repo.Save(ctx, draft.Snapshot()); err != nil {
		w.log.Error("save failed, change discarded", logger.Err(err))
		return fmt.Errorf("workspace: save: %w", err)
	}
	w.reg = draft
	return nil
}

// View runs fn against the live registry under the read lock. fn must not
// retain the registry or mutate it.
func (w *Workspace) View(fn func(reg *academic.Registry) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fn(w.reg)
}

// Snapshot returns a flat copy of the live registry.
func (w *Workspace) Snapshot() academic.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reg.Snapshot()
}
