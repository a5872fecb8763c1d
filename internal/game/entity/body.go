// Package entity provides the moving bodies whose motion the collision grid constrains.
package entity

import (
	"github.com/Faultbox/tilecollide/pkg/math"
)

// State is a body's locomotion state.
type State uint8

const (
	StateIdle State = iota
	StateWalking
	StateRunning
	StateJumping
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	default:
		return "unknown"
	}
}

// Collider is the circle used for tile collision, offset from the body's position.
type Collider struct {
	Radius float32
	Offset math.Vec2
}

// Body is a character moving through the world.
type Body struct {
	ID       uint32
	Position math.Vec2
	Velocity math.Vec2
	Collider Collider
	State    State

	BaseSpeed     float32 // units per second while walking
	RunMultiplier float32
}

// NewBody creates an idle body at pos.
func NewBody(id uint32, pos math.Vec2, radius, baseSpeed, runMultiplier float32) *Body {
	return &Body{
		ID:            id,
		Position:      pos,
		Collider:      Collider{Radius: radius},
		BaseSpeed:     baseSpeed,
		RunMultiplier: runMultiplier,
	}
}

// ColliderPosition returns the world centre of the collider.
func (b *Body) ColliderPosition() math.Vec2 {
	return b.Position.Add(b.Collider.Offset)
}

// IsMoving reports whether the body has a non-zero velocity.
func (b *Body) IsMoving() bool {
	return !b.Velocity.IsZero()
}

// Steer sets the desired velocity from an input direction. A zero direction
// idles the body. Jumping bodies do not move.
func (b *Body) Steer(direction math.Vec2, running bool) {
	if b.State == StateJumping {
		b.Velocity = math.Vec2{}
		return
	}
	if direction.IsZero() {
		b.State = StateIdle
		b.Velocity = math.Vec2{}
		return
	}

	speed := b.BaseSpeed
	b.State = StateWalking
	if running {
		speed *= b.RunMultiplier
		b.State = StateRunning
	}
	b.Velocity = direction.Normalize().Scale(speed)
}

// Integrate advances the position by the current velocity.
func (b *Body) Integrate(dt float32) {
	if !b.IsMoving() {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}
