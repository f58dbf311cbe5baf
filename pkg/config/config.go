// Package config loads orbitcards settings from TOML.
//
// Every value has a default, so an empty or missing file is valid. A file
// only needs the keys it changes:
//
//	[cards]
//	max_cards = 6
//	origin    = "https://example.com"
//
//	[throttle]
//	scroll = "750ms"
//
//	[placement]
//	validate_at_scaled_size = true
//
// Lookup order for the file is an explicit path, then
// $XDG_CONFIG_HOME/orbitcards/config.toml (or the platform equivalent).
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/placement"
)

// Default values not owned by another package.
const (
	DefaultMaxCards       = 8
	DefaultScrollThrottle = 500 * time.Millisecond
	DefaultResizeThrottle = 200 * time.Millisecond
	DefaultExitDelay      = 500 * time.Millisecond
	DefaultWidth          = 1200
	DefaultHeight         = 800
	DefaultFormat         = "svg"
)

// Formats lists the output formats the render section accepts.
var Formats = []string{"svg", "png", "pdf", "json"}

// Config is the full settings tree.
type Config struct {
	Cards     Cards              `toml:"cards"`
	Placement placement.Options  `toml:"placement"`
	Geometry  geometry.Constants `toml:"geometry"`
	Throttle  Throttle           `toml:"throttle"`
	Render    Render             `toml:"render"`
}

// Cards configures the card set.
type Cards struct {
	MaxCards int `toml:"max_cards"`
	// Seed fixes the placement random source. Zero picks a fresh seed.
	Seed   uint64 `toml:"seed"`
	Origin string `toml:"origin"`
}

// Throttle configures the input rate limiters.
type Throttle struct {
	Scroll Duration `toml:"scroll"`
	Resize Duration `toml:"resize"`
}

// Render configures the output sinks.
type Render struct {
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Format    string   `toml:"format"`
	Animate   bool     `toml:"animate"`
	Avatar    string   `toml:"avatar"`
	ExitDelay Duration `toml:"exit_delay"`
}

// Duration is a time.Duration written as a string ("500ms") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Cards:     Cards{MaxCards: DefaultMaxCards},
		Placement: placement.DefaultOptions(),
		Geometry:  geometry.DefaultConstants(),
		Throttle: Throttle{
			Scroll: Duration{DefaultScrollThrottle},
			Resize: Duration{DefaultResizeThrottle},
		},
		Render: Render{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Format:    DefaultFormat,
			Animate:   true,
			ExitDelay: Duration{DefaultExitDelay},
		},
	}
}

// Load decodes the file at path over the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the config at path. An empty path falls back to
// [DefaultPath]; if that file does not exist the defaults are returned.
func Resolve(path string) (Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	path = DefaultPath()
	if path == "" {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// DefaultPath returns the per-user config file location, or "" if no
// config directory can be determined.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "orbitcards", "config.toml")
}

// Validate checks every section and returns the first problem found as an
// INVALID_CONFIG error.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Cards.MaxCards >= 1, "cards.max_cards must be at least 1"},
		{c.Placement.MaxAttempts >= 1, "placement.max_attempts must be at least 1"},
		{c.Placement.ScaleMin > 0, "placement.scale_min must be positive"},
		{c.Placement.ScaleMin <= c.Placement.ScaleMax, "placement.scale_min must not exceed scale_max"},
		{inUnit(c.Placement.OuterProbability), "placement.outer_probability must be within [0, 1]"},
		{positive(c.Geometry.MaxCardWidth), "geometry.max_card_width must be positive"},
		{positive(c.Geometry.CardWidthDivisor), "geometry.card_width_divisor must be positive"},
		{positive(c.Geometry.CardAspect), "geometry.card_aspect must be positive"},
		{positive(c.Geometry.AvatarDivisor), "geometry.avatar_divisor must be positive"},
		{c.Geometry.Margin >= 0, "geometry.margin must not be negative"},
		{c.Geometry.OverlapThreshold > 0 && c.Geometry.OverlapThreshold <= 1, "geometry.overlap_threshold must be within (0, 1]"},
		{c.Geometry.MinDistanceFactor >= 0, "geometry.min_distance_factor must not be negative"},
		{positive(c.Geometry.Outer.Width) && positive(c.Geometry.Outer.Height), "geometry.outer band must be positive"},
		{positive(c.Geometry.Inner.Width) && positive(c.Geometry.Inner.Height), "geometry.inner band must be positive"},
		{c.Throttle.Scroll.Duration >= 0, "throttle.scroll must not be negative"},
		{c.Throttle.Resize.Duration >= 0, "throttle.resize must not be negative"},
		{c.Render.ExitDelay.Duration >= 0, "render.exit_delay must not be negative"},
		{slices.Contains(Formats, c.Render.Format), fmt.Sprintf("render.format must be one of %s", strings.Join(Formats, ", "))},
	}
	for _, chk := range checks {
		if !chk.ok {
			return errors.New(errors.ErrCodeInvalidConfig, "%s", chk.msg)
		}
	}
	if err := errors.ValidateViewport(c.Render.Width, c.Render.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render viewport")
	}
	if c.Cards.Origin != "" {
		if err := errors.ValidateOrigin(c.Cards.Origin); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cards.origin")
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
