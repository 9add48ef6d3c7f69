// Package glyph defines the reference glyph model and the providers that
// supply it: a YAML library on disk, an HTTP client for a glyph data
// service and an LRU-memoizing wrapper. Providers hand out ordered point
// sequences in a fixed 109x109 coordinate space; nothing here parses
// vector path grammars.
package glyph

import (
	"errors"
	"fmt"

	"github.com/shodojo/tegaki/geometry"
)

// Extent is the size of the square glyph coordinate space, in units.
const Extent = 109.0

// ErrNotFound means the provider authoritatively has no data for the
// requested character. ErrUnavailable means the provider could not answer
// (transport or decode failure); the two are deliberately distinct.
var (
	ErrNotFound    = errors.New("glyph not found")
	ErrUnavailable = errors.New("glyph data unavailable")
)

// Glyph is the canonical stroke set for one character, in canonical
// stroke order. It is immutable once obtained.
type Glyph struct {
	Character string            `json:"character" yaml:"character"`
	Meaning   string            `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Strokes   []geometry.Stroke `json:"strokes" yaml:"strokes"`

	// Paths optionally carries a full-fidelity display representation per
	// stroke (e.g. an outline path). It is opaque here and handed through
	// to renderers untouched.
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Validate checks the structural invariants of a glyph.
func (g *Glyph) Validate() error {
	if g.Character == "" {
		return fmt.Errorf("glyph has no character")
	}
	if len(g.Strokes) == 0 {
		return fmt.Errorf("glyph %q has no strokes", g.Character)
	}
	for i, s := range g.Strokes {
		if len(s) == 0 {
			return fmt.Errorf("glyph %q: stroke %d is empty", g.Character, i)
		}
	}
	if len(g.Paths) != 0 && len(g.Paths) != len(g.Strokes) {
		return fmt.Errorf("glyph %q: %d paths for %d strokes", g.Character, len(g.Paths), len(g.Strokes))
	}
	return nil
}

// Path returns the display path hint for stroke i, or "" when the glyph
// carries none.
func (g *Glyph) Path(i int) string {
	if i < 0 || i >= len(g.Paths) {
		return ""
	}
	return g.Paths[i]
}

// Provider supplies reference glyphs by character.
type Provider interface {
	Glyph(character string) (*Glyph, error)
}
