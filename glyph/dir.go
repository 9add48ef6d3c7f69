package glyph

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Dir serves glyphs from a directory of YAML files, one glyph per file,
// named <character>.yaml.
type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Glyph(character string) (*Glyph, error) {
	data, err := os.ReadFile(filepath.Join(d.path, character+".yaml"))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "reading glyph %q: %v", character, err)
	}

	var g Glyph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "decoding glyph %q: %v", character, err)
	}
	if g.Character == "" {
		g.Character = character
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "glyph %q: %v", character, err)
	}

	return &g, nil
}

// List returns the characters available in the directory, sorted.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "reading glyph dir: %v", err)
	}

	var chars []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		chars = append(chars, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(chars)

	return chars, nil
}

// WriteFile stores a glyph as a YAML file under dir, for seeding a
// library.
func WriteFile(dir string, g *Glyph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, g.Character+".yaml"), data, 0644)
}
