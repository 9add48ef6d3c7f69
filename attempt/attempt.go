// Package attempt models a user's drawn attempt at a character and its
// YAML file representation, as recorded by the shell and replayed by the
// batch grader.
package attempt

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/shodojo/tegaki/geometry"
)

// Attempt is an ordered sequence of raw strokes drawn for one character.
// The collection grows by append only; strokes are never reordered or
// mutated after they are added.
type Attempt struct {
	Character string            `yaml:"character" json:"character"`
	Strokes   []geometry.Stroke `yaml:"strokes" json:"strokes"`
}

// Append records one completed pen stroke.
func (a *Attempt) Append(s geometry.Stroke) {
	a.Strokes = append(a.Strokes, s)
}

// ReadFile loads a recorded attempt from a YAML file.
func ReadFile(path string) (*Attempt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var a Attempt
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding attempt %s: %w", path, err)
	}

	return &a, nil
}

// WriteFile stores the attempt as a YAML file.
func (a *Attempt) WriteFile(path string) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
