package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
)

func river() *glyph.Glyph {
	return &glyph.Glyph{
		Character: "川",
		Meaning:   "river",
		Strokes: []geometry.Stroke{
			{{X: 20, Y: 20}, {X: 15, Y: 80}},
			{{X: 50, Y: 20}, {X: 50, Y: 70}},
			{{X: 80, Y: 20}, {X: 85, Y: 80}},
		},
	}
}

func TestSessionCompletesInOrder(t *testing.T) {
	g := river()
	s := New(g, grader.SnapPolicy())

	for i, stroke := range g.Strokes {
		require.False(t, s.Complete())

		dec, err := s.Submit(stroke)
		require.NoError(t, err)
		assert.True(t, dec.Accepted)
		assert.Equal(t, i, dec.Index)
		assert.Equal(t, 0.0, dec.Distance)

		st := s.State()
		assert.Equal(t, i+1, st.Target)
		assert.Len(t, st.Locked, i+1)
	}

	st := s.State()
	assert.True(t, st.Complete)
	require.Len(t, st.Locked, 3)
	for i, locked := range st.Locked {
		assert.Equal(t, g.Strokes[i], locked.Points)
		assert.Equal(t, LockedColor, locked.Color)
	}
}

func TestSessionRejectionLeavesStateUnchanged(t *testing.T) {
	s := New(river(), grader.SnapPolicy())

	// Nowhere near the first stroke of the river glyph.
	wild := geometry.Stroke{{X: 100, Y: 5}, {X: 105, Y: 5}}

	dec, err := s.Submit(wild)
	require.NoError(t, err)
	assert.False(t, dec.Accepted)
	assert.Equal(t, 0, dec.Index)
	assert.Greater(t, dec.Distance, s.Policy().SnapThreshold)

	st := s.State()
	assert.Equal(t, 0, st.Target)
	assert.Empty(t, st.Locked)
	require.NotNil(t, st.Last)
	assert.False(t, st.Last.Accepted)
	assert.Equal(t, dec.Distance, st.Last.Distance)
}

func TestSessionLocksCanonicalGeometry(t *testing.T) {
	g := river()
	s := New(g, grader.SnapPolicy())

	// Close enough to be accepted, but not identical.
	sloppy := geometry.Stroke{{X: 23, Y: 22}, {X: 18, Y: 78}}

	dec, err := s.Submit(sloppy)
	require.NoError(t, err)
	require.True(t, dec.Accepted)
	assert.Greater(t, dec.Distance, 0.0)

	// The locked stroke is the reference, not the user's drawing.
	st := s.State()
	require.Len(t, st.Locked, 1)
	assert.Equal(t, g.Strokes[0], st.Locked[0].Points)
}

func TestSessionSubmitAfterComplete(t *testing.T) {
	g := river()
	s := New(g, grader.SnapPolicy())
	for _, stroke := range g.Strokes {
		_, err := s.Submit(stroke)
		require.NoError(t, err)
	}

	_, err := s.Submit(g.Strokes[0])
	assert.ErrorIs(t, err, ErrComplete)
}

func TestSessionEmptyStroke(t *testing.T) {
	s := New(river(), grader.SnapPolicy())

	_, err := s.Submit(nil)
	assert.ErrorIs(t, err, ErrEmptyStroke)

	st := s.State()
	assert.Equal(t, 0, st.Target)
	assert.Nil(t, st.Last)
}

func TestSessionResetFromAnyState(t *testing.T) {
	g := river()
	s := New(g, grader.SnapPolicy())

	// Mid-session reset.
	_, err := s.Submit(g.Strokes[0])
	require.NoError(t, err)
	s.Reset()
	st := s.State()
	assert.Equal(t, 0, st.Target)
	assert.Empty(t, st.Locked)
	assert.False(t, st.Complete)

	// Reset from Complete.
	for _, stroke := range g.Strokes {
		_, err := s.Submit(stroke)
		require.NoError(t, err)
	}
	require.True(t, s.Complete())
	s.Reset()
	st = s.State()
	assert.Equal(t, 0, st.Target)
	assert.Empty(t, st.Locked)
}

func TestSessionSetGlyph(t *testing.T) {
	g := river()
	s := New(g, grader.SnapPolicy())
	_, err := s.Submit(g.Strokes[0])
	require.NoError(t, err)

	one := &glyph.Glyph{
		Character: "一",
		Strokes:   []geometry.Stroke{{{X: 10, Y: 50}, {X: 90, Y: 50}}},
	}
	s.SetGlyph(one)

	st := s.State()
	assert.Equal(t, "一", st.Character)
	assert.Equal(t, 0, st.Target)
	assert.Equal(t, 1, st.Total)
	assert.Empty(t, st.Locked)
}

func TestSessionConcreteScenario(t *testing.T) {
	// Reference stroke (10,50)-(90,50); user draws the identical segment.
	one := &glyph.Glyph{
		Character: "一",
		Strokes:   []geometry.Stroke{{{X: 10, Y: 50}, {X: 90, Y: 50}}},
	}
	p := grader.SnapPolicy()
	p.SnapThreshold = 0.001 // any threshold > 0 accepts an exact match

	s := New(one, p)
	dec, err := s.Submit(geometry.Stroke{{X: 10, Y: 50}, {X: 90, Y: 50}})
	require.NoError(t, err)
	assert.True(t, dec.Accepted)
	assert.Equal(t, 0.0, dec.Distance)
	assert.Equal(t, 1, s.State().Target)
	assert.True(t, s.Complete())
}

func TestManagerKeysIndependentSessions(t *testing.T) {
	m := NewManager()
	g := river()

	idA, a := m.Create(g, grader.SnapPolicy())
	idB, _ := m.Create(g, grader.SnapPolicy())
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, m.Len())

	_, err := a.Submit(g.Strokes[0])
	require.NoError(t, err)

	gotA, ok := m.Get(idA)
	require.True(t, ok)
	assert.Equal(t, 1, gotA.State().Target)

	gotB, ok := m.Get(idB)
	require.True(t, ok)
	assert.Equal(t, 0, gotB.State().Target)

	m.Remove(idA)
	_, ok = m.Get(idA)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}
