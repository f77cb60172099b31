// Package geometry provides the 2D coordinate math used by the frame
// analyzers. Absent landmarks are modeled as nil points; every function
// propagates absence instead of failing.
package geometry

import (
	"math"

	"github.com/ayusman/kinesics/internal/detector"
)

// Point is a 2D point in normalized image coordinates.
type Point struct {
	X float64
	Y float64
}

// Coords extracts the 2D coordinates of the landmark at idx.
// Returns nil if the landmark set does not contain that index.
func Coords(lm detector.Landmarks, idx int) *Point {
	if idx < 0 || idx >= len(lm) {
		return nil
	}
	return &Point{X: lm[idx].X, Y: lm[idx].Y}
}

// Angle returns the angle in degrees at vertex b formed by the rays
// b->a and b->c, in [0, 180]. Returns ok=false if any point is absent.
func Angle(a, b, c *Point) (float64, bool) {
	if a == nil || b == nil || c == nil {
		return 0, false
	}

	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)

	if angle > 180.0 {
		angle = 360 - angle
	}

	return angle, true
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
