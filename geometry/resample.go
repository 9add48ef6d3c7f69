package geometry

import "errors"

var (
	ErrEmptyStroke = errors.New("empty stroke")
	ErrSampleCount = errors.New("sample count must be positive")
)

// Resample returns a stroke with exactly n points placed equidistantly
// along the arc length of s, endpoints included. A single-point stroke,
// or one whose points all coincide, resamples to n copies of its first
// point. The output depends only on the input.
func Resample(s Stroke, n int) (Stroke, error) {
	if n < 1 {
		return nil, ErrSampleCount
	}
	if len(s) == 0 {
		return nil, ErrEmptyStroke
	}

	if len(s) == 1 {
		return repeatPoint(s[0], n), nil
	}

	// Cumulative arc length at every input point.
	cum := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		cum[i] = cum[i-1] + Dist(s[i-1], s[i])
	}
	total := cum[len(cum)-1]

	if total == 0 {
		return repeatPoint(s[0], n), nil
	}
	if n == 1 {
		return Stroke{s[0]}, nil
	}

	out := make(Stroke, n)
	out[0] = s[0]
	out[n-1] = s[len(s)-1]

	seg := 1
	for i := 1; i < n-1; i++ {
		target := total * float64(i) / float64(n-1)

		for seg < len(cum)-1 && cum[seg] < target {
			seg++
		}

		span := cum[seg] - cum[seg-1]
		if span == 0 {
			out[i] = s[seg]
			continue
		}

		t := (target - cum[seg-1]) / span
		out[i] = Point{
			X: s[seg-1].X + t*(s[seg].X-s[seg-1].X),
			Y: s[seg-1].Y + t*(s[seg].Y-s[seg-1].Y),
		}
	}

	return out, nil
}

func repeatPoint(p Point, n int) Stroke {
	out := make(Stroke, n)
	for i := range out {
		out[i] = p
	}
	return out
}
