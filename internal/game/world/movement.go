package world

import (
	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/internal/game/entity"
)

// velocityEpsilon is the squared displacement error below which a body's
// velocity is left untouched.
const velocityEpsilon = 1e-3

// ValidateMovement clamps a body's velocity so that this tick's displacement
// stays clear of blocking cells. It returns true if the velocity was changed.
// With no grid the body moves unconstrained.
func ValidateMovement(grid *collision.Grid, body *entity.Body, dt float32) bool {
	if grid == nil || body == nil || !body.IsMoving() {
		return false
	}

	current := body.ColliderPosition()
	delta := body.Velocity.Scale(dt)
	permitted := grid.SweepCircle(current, current.Add(delta), body.Collider.Radius)

	actual := permitted.Sub(current)
	if actual.Sub(delta).LengthSquared() <= velocityEpsilon {
		return false
	}
	if dt <= 0 {
		return false
	}
	body.Velocity = actual.Div(dt)
	return true
}

// Validator applies ValidateMovement to every body each tick.
type Validator struct {
	manager *Manager

	// Adjusted counts bodies whose velocity was changed on the last tick.
	Adjusted int
}

// NewValidator creates a validator reading the manager's current grid.
func NewValidator(manager *Manager) *Validator {
	return &Validator{manager: manager}
}

// Validate checks all bodies against the current grid. It is a no-op until
// a grid has been built.
func (v *Validator) Validate(bodies []*entity.Body, dt float32) {
	v.Adjusted = 0
	grid := v.manager.Current()
	if grid == nil {
		return
	}
	for _, b := range bodies {
		if ValidateMovement(grid, b, dt) {
			v.Adjusted++
		}
	}
}
