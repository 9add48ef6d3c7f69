package glyph

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Cached memoizes a Provider with an LRU cache, one entry per character.
// Only successful lookups are cached: a transient ErrUnavailable must not
// shadow later successful fetches, and ErrNotFound stays cheap to answer
// upstream.
type Cached struct {
	src   Provider
	cache *lru.Cache[string, *Glyph]
}

func NewCached(src Provider, size int) (*Cached, error) {
	cache, err := lru.New[string, *Glyph](size)
	if err != nil {
		return nil, err
	}
	return &Cached{src: src, cache: cache}, nil
}

// List delegates to the wrapped provider when it can enumerate.
func (c *Cached) List() ([]string, error) {
	if l, ok := c.src.(interface{ List() ([]string, error) }); ok {
		return l.List()
	}
	return nil, errors.Errorf("provider %T cannot enumerate characters", c.src)
}

func (c *Cached) Glyph(character string) (*Glyph, error) {
	if g, ok := c.cache.Get(character); ok {
		return g, nil
	}

	g, err := c.src.Glyph(character)
	if err != nil {
		return nil, err
	}
	c.cache.Add(character, g)

	return g, nil
}
