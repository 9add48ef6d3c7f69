package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
)

func TestGenerate(t *testing.T) {
	g := &glyph.Glyph{
		Character: "二",
		Meaning:   "two",
		Strokes: []geometry.Stroke{
			{{X: 25, Y: 30}, {X: 75, Y: 30}},
			{{X: 10, Y: 70}, {X: 90, Y: 70}},
		},
	}

	out := filepath.Join(t.TempDir(), "二.pdf")
	gen := NewGenerator(g, out, Options{Guides: true, Title: true})

	if err := gen.Generate(); err != nil {
		t.Fatal(err)
	}

	fi, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Fatal("empty PDF written")
	}
}

func TestGenerateRejectsInvalidGlyph(t *testing.T) {
	g := &glyph.Glyph{Character: "空"}

	gen := NewGenerator(g, filepath.Join(t.TempDir(), "out.pdf"), Options{})
	if err := gen.Generate(); err == nil {
		t.Fatal("expected validation error for glyph without strokes")
	}
}
