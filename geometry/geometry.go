// Package geometry holds the point and stroke primitives shared by the
// grading engine: arc-length resampling, point-pair distances and
// coordinate rescaling. Everything here is pure and deterministic.
package geometry

import "math"

// Point is a single pen position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Stroke is one continuous pen motion as an ordered point sequence.
type Stroke []Point

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PathLength returns the total arc length along consecutive points.
func PathLength(s Stroke) float64 {
	total := 0.0
	for i := 1; i < len(s); i++ {
		total += Dist(s[i-1], s[i])
	}
	return total
}

// MeanDistance returns the mean of the per-index Euclidean distances
// between a and b. Both strokes must have the same point count; callers
// are expected to resample both sides to the same N first. A length
// mismatch is a programming error and panics.
func MeanDistance(a, b Stroke) float64 {
	if len(a) != len(b) {
		panic("geometry: MeanDistance on strokes of different length")
	}
	if len(a) == 0 {
		return 0
	}

	total := 0.0
	for i := range a {
		total += Dist(a[i], b[i])
	}
	return total / float64(len(a))
}

// RescaleToExtent maps a stroke captured on a square drawing surface of
// deviceExtent units into a reference space of refExtent units. The
// factor is applied uniformly to both axes.
func RescaleToExtent(s Stroke, deviceExtent, refExtent float64) Stroke {
	if len(s) == 0 || deviceExtent == 0 {
		return nil
	}

	factor := refExtent / deviceExtent
	out := make(Stroke, len(s))
	for i, p := range s {
		out[i] = Point{X: p.X * factor, Y: p.Y * factor}
	}
	return out
}
