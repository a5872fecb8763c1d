package world

import (
	"testing"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/internal/game/entity"
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

// corridor returns a 6x3 grid whose middle row is water.
func corridor() *collision.Grid {
	g := collision.NewGrid(6, 3, 32, math.Vec2{})
	for x := 0; x < 6; x++ {
		g.SetTile(x, 1, tile.Water)
	}
	return g
}

func TestValidateMovementNoGrid(t *testing.T) {
	b := entity.NewBody(1, math.Vec2{X: 16, Y: 16}, 8, 100, 1.5)
	b.Velocity = math.Vec2{X: 0, Y: 1000}

	if ValidateMovement(nil, b, 0.1) {
		t.Error("validation without a grid should be skipped")
	}
	if b.Velocity != (math.Vec2{X: 0, Y: 1000}) {
		t.Errorf("velocity changed to %v", b.Velocity)
	}
}

func TestValidateMovementFreePath(t *testing.T) {
	b := entity.NewBody(1, math.Vec2{X: 16, Y: 16}, 8, 100, 1.5)
	b.Velocity = math.Vec2{X: 100, Y: 0}

	if ValidateMovement(corridor(), b, 0.5) {
		t.Errorf("free movement was adjusted to %v", b.Velocity)
	}
	if b.Velocity != (math.Vec2{X: 100, Y: 0}) {
		t.Errorf("velocity = %v", b.Velocity)
	}
}

func TestValidateMovementSlidesAlongWall(t *testing.T) {
	b := entity.NewBody(1, math.Vec2{X: 16, Y: 16}, 8, 100, 1.5)
	b.Velocity = math.Vec2{X: 64, Y: 20}
	dt := float32(1)

	if !ValidateMovement(corridor(), b, dt) {
		t.Fatal("expected the velocity to be adjusted")
	}
	if b.Velocity.X < 63 || b.Velocity.X > 65 {
		t.Errorf("x velocity = %v, want ~64", b.Velocity.X)
	}
	if b.Velocity.Y >= 20 {
		t.Errorf("y velocity = %v, want reduced", b.Velocity.Y)
	}

	b.Integrate(dt)
	if !corridor().IsCircleClear(b.ColliderPosition(), b.Collider.Radius) {
		t.Errorf("body ended at an unclear position %v", b.Position)
	}
}

func TestValidateMovementUsesColliderOffset(t *testing.T) {
	// Body origin is in row 0 but its collider sits 24 units higher, against the wall.
	b := entity.NewBody(1, math.Vec2{X: 16, Y: 0}, 6, 100, 1.5)
	b.Collider.Offset = math.Vec2{Y: 24}
	b.Velocity = math.Vec2{Y: 10}

	if !ValidateMovement(corridor(), b, 1) {
		t.Fatal("expected the collider offset to hit the wall")
	}
	if b.Velocity.Y > 2 {
		t.Errorf("y velocity = %v, want near 0", b.Velocity.Y)
	}
}

func TestValidateMovementIdleBody(t *testing.T) {
	b := entity.NewBody(1, math.Vec2{X: 16, Y: 16}, 8, 100, 1.5)
	if ValidateMovement(corridor(), b, 0.1) {
		t.Error("idle body should not be adjusted")
	}
}

func TestValidatorCountsAdjustments(t *testing.T) {
	m := NewManager(nil, nil)
	v := NewValidator(m)

	blocked := entity.NewBody(1, math.Vec2{X: 16, Y: 16}, 8, 100, 1.5)
	blocked.Velocity = math.Vec2{Y: 50}
	free := entity.NewBody(2, math.Vec2{X: 48, Y: 16}, 8, 100, 1.5)
	free.Velocity = math.Vec2{X: 10}
	bodies := []*entity.Body{blocked, free}

	v.Validate(bodies, 1)
	if v.Adjusted != 0 || blocked.Velocity.Y != 50 {
		t.Error("validator ran before a grid existed")
	}

	m.Publish(corridor())
	v.Validate(bodies, 1)
	if v.Adjusted != 1 {
		t.Errorf("Adjusted = %d, want 1", v.Adjusted)
	}
	if blocked.Velocity.Y >= 50 {
		t.Errorf("blocked body velocity = %v", blocked.Velocity)
	}
}
