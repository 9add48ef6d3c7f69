package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/grader"
	"github.com/shodojo/tegaki/log"
)

// Config is read from the environment.
type Config struct {
	Port         string `env:"TEGAKI_PORT" envDefault:"8787"`
	GlyphDir     string `env:"TEGAKI_GLYPHS" envDefault:"glyphs"`
	GlyphService string `env:"TEGAKI_GLYPH_SERVICE"`
	CacheSize    int    `env:"TEGAKI_CACHE_SIZE" envDefault:"128"`
	// JWTSecret signs session tokens. When unset a random secret is
	// generated at startup, which invalidates tokens across restarts.
	JWTSecret string `env:"TEGAKI_JWT_SECRET"`

	Sensitivity   float64 `env:"TEGAKI_SENSITIVITY" envDefault:"3"`
	SnapThreshold float64 `env:"TEGAKI_SNAP_THRESHOLD" envDefault:"35"`
	ClearRejected bool    `env:"TEGAKI_CLEAR_REJECTED" envDefault:"false"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		cfg.JWTSecret = hex.EncodeToString(buf)
		log.Trace.Println("TEGAKI_JWT_SECRET not set, generated an ephemeral secret")
	}

	return cfg, nil
}

func (cfg *Config) gradePolicy() grader.Policy {
	p := grader.WholeGlyphPolicy()
	if cfg.Sensitivity > 0 {
		p.Sensitivity = cfg.Sensitivity
	}
	return p
}

func (cfg *Config) snapPolicy() grader.Policy {
	p := grader.SnapPolicy()
	if cfg.SnapThreshold > 0 {
		p.SnapThreshold = cfg.SnapThreshold
	}
	p.ClearRejected = cfg.ClearRejected
	return p
}

// buildProvider assembles the glyph source: the HTTP glyph service when
// configured, the local library directory otherwise, memoized either way
// so fetching stays out of the per-stroke path.
func (cfg *Config) buildProvider() (glyph.Provider, error) {
	var src glyph.Provider
	if cfg.GlyphService != "" {
		src = glyph.NewClient(cfg.GlyphService, 10*time.Second)
	} else {
		src = glyph.NewDir(cfg.GlyphDir)
	}

	return glyph.NewCached(src, cfg.CacheSize)
}
