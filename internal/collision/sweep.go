package collision

import (
	gomath "math"

	"github.com/Faultbox/tilecollide/pkg/math"
)

const (
	// minSweepLength is the displacement below which a sweep is a no-op.
	minSweepLength = 1e-3

	// sweepStepFraction caps each sweep step as a fraction of the cell size.
	sweepStepFraction = 0.25
)

// SweepCircle moves a circle from start towards end and returns the furthest
// position reached without overlapping a blocking cell.
//
// The segment is walked in steps no longer than a quarter cell. When the direct
// step is blocked the circle slides along X, then along Y; if neither is clear
// it stops. The result is always a position that passed IsCircleClear, or start.
func (g *Grid) SweepCircle(start, end math.Vec2, radius float32) math.Vec2 {
	delta := end.Sub(start)
	length := delta.Length()
	if length < minSweepLength {
		return start
	}

	maxStep := g.cellSize * sweepStepFraction
	steps := 1
	if maxStep > 0 {
		steps = int(gomath.Ceil(float64(length / maxStep)))
		if steps < 1 {
			steps = 1
		}
	}
	step := delta.Div(float32(steps))

	pos := start
	for i := 0; i < steps; i++ {
		candidate := pos.Add(step)
		if g.IsCircleClear(candidate, radius) {
			pos = candidate
			continue
		}

		slideX := math.Vec2{X: candidate.X, Y: pos.Y}
		if g.IsCircleClear(slideX, radius) {
			pos = slideX
			continue
		}

		slideY := math.Vec2{X: pos.X, Y: candidate.Y}
		if g.IsCircleClear(slideY, radius) {
			pos = slideY
			continue
		}

		break
	}
	return pos
}
