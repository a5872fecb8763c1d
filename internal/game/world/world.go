// Package world owns the published collision grid and validates body movement against it.
package world

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/internal/logger"
	"github.com/Faultbox/tilecollide/pkg/level"
)

// Manager holds the current collision grid for a level.
//
// The grid is nil until the first successful build. Rebuilds replace it
// atomically, so readers always see either the old or the new grid in full.
type Manager struct {
	source  level.Source
	builder *collision.Builder

	grid  atomic.Pointer[collision.Grid]
	stale atomic.Bool
}

// NewManager creates a manager that builds from source with builder.
func NewManager(source level.Source, builder *collision.Builder) *Manager {
	return &Manager{
		source:  source,
		builder: builder,
	}
}

// Current returns the published grid, or nil if none has been built.
func (m *Manager) Current() *collision.Grid {
	return m.grid.Load()
}

// IsBuilt reports whether a grid has been published.
func (m *Manager) IsBuilt() bool {
	return m.grid.Load() != nil
}

// NeedsBuild reports whether TryBuild would do any work.
func (m *Manager) NeedsBuild() bool {
	return !m.IsBuilt() || m.stale.Load()
}

// SetSource swaps the placement source and marks the grid stale.
func (m *Manager) SetSource(source level.Source) {
	m.source = source
	m.RequestRebuild()
}

// RequestRebuild marks the current grid stale. It keeps serving queries
// until the next successful TryBuild replaces it. Repeated calls are harmless.
func (m *Manager) RequestRebuild() {
	m.stale.Store(true)
}

// Publish installs a grid built elsewhere.
func (m *Manager) Publish(grid *collision.Grid) {
	m.grid.Store(grid)
	m.stale.Store(false)
}

// TryBuild builds and publishes a grid if none exists or a rebuild was
// requested. It returns false with no error when the source has no placements
// yet; the caller should retry on a later tick.
func (m *Manager) TryBuild() (bool, error) {
	if !m.NeedsBuild() {
		return false, nil
	}
	if m.source == nil || m.builder == nil {
		return false, nil
	}

	placements, err := m.source.Placements()
	if err != nil {
		return false, fmt.Errorf("reading placements: %w", err)
	}

	grid, err := m.builder.Build(placements)
	if errors.Is(err, collision.ErrNoPlacements) {
		logger.Debug("collision grid build deferred: no placements")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("building collision grid: %w", err)
	}

	rebuilt := m.IsBuilt()
	m.Publish(grid)
	logger.Debug("collision grid published",
		zap.Bool("rebuild", rebuilt),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
	)
	return true, nil
}
