// Package game runs the per-tick collision pipeline for a level.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tilecollide/internal/game/entity"
	"github.com/Faultbox/tilecollide/internal/game/world"
	"github.com/Faultbox/tilecollide/internal/logger"
)

// Phase is the session lifecycle state.
type Phase uint8

const (
	// PhaseLoading waits for the level; nothing is built or moved.
	PhaseLoading Phase = iota
	// PhasePlaying builds the grid when needed and moves bodies.
	PhasePlaying
	// PhasePaused freezes all bodies.
	PhasePaused
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Session steps bodies through a level one tick at a time.
//
// Each playing tick first builds the collision grid if it is missing or
// stale, then validates and integrates every body. A tick never observes a
// partially built grid.
type Session struct {
	world     *world.Manager
	validator *world.Validator
	bodies    []*entity.Body
	phase     Phase
	ticks     uint64
	log       *zap.Logger
}

// NewSession creates a loading session over a world manager.
func NewSession(w *world.Manager) *Session {
	return &Session{
		world:     w,
		validator: world.NewValidator(w),
		phase:     PhaseLoading,
		log:       logger.Named("session"),
	}
}

// World returns the session's world manager.
func (s *Session) World() *world.Manager { return s.world }

// Bodies returns the bodies in insertion order.
func (s *Session) Bodies() []*entity.Body { return s.bodies }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Ticks returns the number of playing ticks run.
func (s *Session) Ticks() uint64 { return s.ticks }

// AddBody adds a body to be moved each tick.
func (s *Session) AddBody(b *entity.Body) {
	s.bodies = append(s.bodies, b)
}

// SetPhase changes the lifecycle phase.
func (s *Session) SetPhase(p Phase) {
	if p == s.phase {
		return
	}
	s.log.Debug("phase change", zap.Stringer("from", s.phase), zap.Stringer("to", p))
	s.phase = p
}

// Tick advances the session by dt seconds.
func (s *Session) Tick(dt float32) error {
	if s.phase != PhasePlaying {
		return nil
	}
	s.ticks++

	if s.world.NeedsBuild() {
		built, err := s.world.TryBuild()
		if err != nil {
			return fmt.Errorf("tick %d: %w", s.ticks, err)
		}
		if built {
			s.log.Info("collision grid ready", zap.Uint64("tick", s.ticks))
		}
	}

	s.validator.Validate(s.bodies, dt)
	if s.validator.Adjusted > 0 {
		s.log.Debug("movement clamped", zap.Int("bodies", s.validator.Adjusted))
	}

	for _, b := range s.bodies {
		b.Integrate(dt)
	}
	return nil
}
