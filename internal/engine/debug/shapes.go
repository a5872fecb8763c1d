package debug

import (
	stdmath "math"

	"github.com/Faultbox/tilecollide/pkg/math"
)

// MinCircleSegments is the fewest segments CircleOutline emits.
const MinCircleSegments = 8

// CircleOutline approximates a circle with line segments.
func CircleOutline(center math.Vec2, radius float32, segments int, c Color) []Line {
	if radius <= 0 {
		return nil
	}
	if segments < MinCircleSegments {
		segments = MinCircleSegments
	}

	point := func(i int) math.Vec2 {
		a := 2 * stdmath.Pi * float64(i) / float64(segments)
		return math.Vec2{
			X: center.X + radius*float32(stdmath.Cos(a)),
			Y: center.Y + radius*float32(stdmath.Sin(a)),
		}
	}

	lines := make([]Line, 0, segments)
	prev := point(0)
	for i := 1; i <= segments; i++ {
		next := point(i % segments)
		lines = append(lines, Line{prev, next, c})
		prev = next
	}
	return lines
}

// RectOutline returns the four edges of a rectangle.
func RectOutline(min, max math.Vec2, c Color) []Line {
	tl := math.Vec2{X: min.X, Y: max.Y}
	br := math.Vec2{X: max.X, Y: min.Y}
	return []Line{
		{min, br, c},
		{br, max, c},
		{max, tl, c},
		{tl, min, c},
	}
}
