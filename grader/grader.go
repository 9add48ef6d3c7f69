// Package grader scores drawn attempts against reference glyphs. One
// Policy value parameterizes both grading modes: whole-glyph grading
// (Grade) and the per-stroke acceptance threshold consumed by the
// progressive session.
package grader

import (
	"errors"
	"fmt"
	"math"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/log"
)

// DefaultSamplePoints is the point count strokes are resampled to before
// comparison.
const DefaultSamplePoints = 20

var ErrEmptyAttempt = errors.New("no strokes to grade")

// Policy bundles the tunables of the grading engine.
type Policy struct {
	// SamplePoints is the resample count N; 0 means DefaultSamplePoints.
	SamplePoints int
	// Sensitivity scales mean error into score loss: score = 100 - d*s.
	Sensitivity float64
	// SnapThreshold is the accept distance for progressive mode.
	SnapThreshold float64
	// StrokeErrorLimit separates good-looking strokes from erroneous ones
	// for display. It does not affect the score.
	StrokeErrorLimit float64
	// ClearRejected tells the rendering collaborator to wipe a rejected
	// raw stroke from the drawing surface. The engine itself never
	// touches the surface.
	ClearRejected bool
}

// WholeGlyphPolicy is the default configuration for grading a complete
// attempt.
func WholeGlyphPolicy() Policy {
	return Policy{
		SamplePoints:     DefaultSamplePoints,
		Sensitivity:      3,
		StrokeErrorLimit: 15,
	}
}

// SnapPolicy is the default configuration for progressive stroke-by-stroke
// acceptance.
func SnapPolicy() Policy {
	return Policy{
		SamplePoints:     DefaultSamplePoints,
		Sensitivity:      5,
		SnapThreshold:    35,
		StrokeErrorLimit: 12,
	}
}

func (p Policy) withDefaults() Policy {
	if p.SamplePoints < 1 {
		p.SamplePoints = DefaultSamplePoints
	}
	if p.Sensitivity <= 0 {
		p.Sensitivity = 3
	}
	return p
}

// Score maps a mean stroke distance to a score in [0, 100]. It is
// monotone non-increasing in distance and clamped at zero.
func Score(distance, sensitivity float64) float64 {
	return math.Max(0, 100-distance*sensitivity)
}

// Verdict is the per-stroke display classification.
type Verdict string

const (
	VerdictGood Verdict = "good"
	VerdictOff  Verdict = "off"
)

// StrokePair is one compared stroke pair, resampled, for rendering
// collaborators.
type StrokePair struct {
	Index     int             `json:"index"`
	User      geometry.Stroke `json:"user"`
	Reference geometry.Stroke `json:"reference"`
	Distance  float64         `json:"distance"`
	Verdict   Verdict         `json:"verdict"`
}

// Result is the outcome of grading a whole attempt.
type Result struct {
	Score    int          `json:"score"`
	Feedback string       `json:"feedback"`
	Pairs    []StrokePair `json:"pairs,omitempty"`
}

// Grade scores a complete attempt against a reference glyph. Strokes are
// compared positionally: user stroke i against reference stroke i. A
// stroke-count mismatch short-circuits to score 0 without any geometric
// comparison. An individual empty stroke is skipped rather than failing
// the pass; an attempt with no usable strokes at all is ErrEmptyAttempt.
func Grade(user []geometry.Stroke, g *glyph.Glyph, p Policy) (*Result, error) {
	p = p.withDefaults()

	usable := 0
	for _, s := range user {
		if len(s) > 0 {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrEmptyAttempt
	}

	if len(user) != len(g.Strokes) {
		return &Result{
			Score:    0,
			Feedback: fmt.Sprintf("incorrect stroke count: expected %d, got %d", len(g.Strokes), len(user)),
		}, nil
	}

	var (
		pairs      []StrokePair
		totalError float64
		scored     int
	)

	for i := range user {
		if len(user[i]) == 0 {
			log.Trace.Printf("skipping empty stroke %d", i)
			continue
		}

		u, err := geometry.Resample(user[i], p.SamplePoints)
		if err != nil {
			log.Trace.Printf("skipping unusable stroke %d: %v", i, err)
			continue
		}
		r, err := geometry.Resample(g.Strokes[i], p.SamplePoints)
		if err != nil {
			log.Trace.Printf("skipping reference stroke %d: %v", i, err)
			continue
		}

		d := geometry.MeanDistance(u, r)
		totalError += d
		scored++

		verdict := VerdictGood
		if d >= p.StrokeErrorLimit {
			verdict = VerdictOff
		}
		pairs = append(pairs, StrokePair{
			Index:     i,
			User:      u,
			Reference: r,
			Distance:  d,
			Verdict:   verdict,
		})
	}

	if scored == 0 {
		return nil, ErrEmptyAttempt
	}

	avgError := totalError / float64(scored)
	score := int(math.Round(Score(avgError, p.Sensitivity)))

	return &Result{
		Score:    score,
		Feedback: feedback(score),
		Pairs:    pairs,
	}, nil
}

func feedback(score int) string {
	switch {
	case score >= 80:
		return "Great job!"
	case score >= 50:
		return "Watch your stroke placement."
	default:
		return "Try again! Follow the stroke guides."
	}
}
