// Package session implements the progressive practice mode: one stroke is
// submitted at a time and, once it matches the current target closely
// enough, is snapped to the canonical reference geometry. Each Session is
// single-writer state owned by exactly one interactive session; concurrent
// users get independent instances keyed through a Manager.
package session

import (
	"errors"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
)

var (
	// ErrComplete means a stroke arrived after every reference stroke had
	// already been accepted.
	ErrComplete = errors.New("all strokes already accepted")
	// ErrEmptyStroke means the submitted stroke carried no points.
	ErrEmptyStroke = errors.New("empty stroke")
)

// LockedColor is the display color of accepted, snapped strokes.
const LockedColor = "green"

// Decision is the outcome of one stroke submission.
type Decision struct {
	Accepted bool    `json:"accepted"`
	Index    int     `json:"index"`
	Distance float64 `json:"distance"`
}

// LockedStroke is canonical reference geometry fixed on the display
// surface, replacing the user's approximation.
type LockedStroke struct {
	Points geometry.Stroke `json:"points"`
	// Path is the glyph's opaque full-fidelity display hint, if any.
	Path  string `json:"path,omitempty"`
	Color string `json:"color"`
}

// State is a snapshot of the session for callers and renderers.
type State struct {
	Character string         `json:"character"`
	Target    int            `json:"target"`
	Total     int            `json:"total"`
	Complete  bool           `json:"complete"`
	Locked    []LockedStroke `json:"locked"`
	Last      *Decision      `json:"last,omitempty"`
}

// Session drives stroke-by-stroke acceptance against one reference glyph.
// The zero value is not usable; construct with New.
type Session struct {
	glyph  *glyph.Glyph
	policy grader.Policy
	target int
	locked []LockedStroke
	last   *Decision
}

// New starts a session awaiting the first stroke of g.
func New(g *glyph.Glyph, p grader.Policy) *Session {
	return &Session{glyph: g, policy: p}
}

// Glyph returns the session's reference glyph.
func (s *Session) Glyph() *glyph.Glyph { return s.glyph }

// Policy returns the grading policy the session was created with.
func (s *Session) Policy() grader.Policy { return s.policy }

// Complete reports whether every reference stroke has been accepted.
func (s *Session) Complete() bool { return s.target == len(s.glyph.Strokes) }

// Submit compares one raw stroke against the current target stroke. On
// acceptance the canonical reference stroke, not the user's drawing, is
// locked and the target advances; on rejection the session is unchanged
// and the measured distance is reported. Whether a rejected raw stroke is
// cleared from the drawing surface is the caller's business (see
// Policy.ClearRejected); the engine never touches the surface.
func (s *Session) Submit(raw geometry.Stroke) (Decision, error) {
	if s.Complete() {
		return Decision{}, ErrComplete
	}
	if len(raw) == 0 {
		return Decision{}, ErrEmptyStroke
	}

	n := s.policy.SamplePoints
	if n < 1 {
		n = grader.DefaultSamplePoints
	}

	u, err := geometry.Resample(raw, n)
	if err != nil {
		return Decision{}, err
	}
	r, err := geometry.Resample(s.glyph.Strokes[s.target], n)
	if err != nil {
		return Decision{}, err
	}

	d := geometry.MeanDistance(u, r)
	dec := Decision{Index: s.target, Distance: d}

	if d < s.policy.SnapThreshold {
		dec.Accepted = true
		s.locked = append(s.locked, LockedStroke{
			Points: s.glyph.Strokes[s.target],
			Path:   s.glyph.Path(s.target),
			Color:  LockedColor,
		})
		s.target++
	}

	s.last = &dec
	return dec, nil
}

// Reset returns the session to awaiting the first stroke with no locked
// strokes. Valid in any state.
func (s *Session) Reset() {
	s.target = 0
	s.locked = nil
	s.last = nil
}

// SetGlyph resets the session and loads a new reference glyph.
func (s *Session) SetGlyph(g *glyph.Glyph) {
	s.glyph = g
	s.Reset()
}

// State returns a snapshot. The locked slice is copied so renderers can
// hold it across further submissions.
func (s *Session) State() State {
	locked := make([]LockedStroke, len(s.locked))
	copy(locked, s.locked)

	var last *Decision
	if s.last != nil {
		d := *s.last
		last = &d
	}

	return State{
		Character: s.glyph.Character,
		Target:    s.target,
		Total:     len(s.glyph.Strokes),
		Complete:  s.Complete(),
		Locked:    locked,
		Last:      last,
	}
}
