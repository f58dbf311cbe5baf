package placement

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/geometry"
)

// Default search parameters.
const (
	DefaultMaxAttempts      = 100
	DefaultScaleMin         = 0.9
	DefaultScaleMax         = 1.1
	DefaultOuterProbability = 0.5
)

// ErrExhausted is returned when no valid position was found within the
// attempt budget. Any PLACEMENT_EXHAUSTED error matches it with errors.Is.
var ErrExhausted = errors.New(errors.ErrCodePlacementExhausted, "no valid position found")

// Source is a uniform [0, 1) generator. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Options controls the search.
type Options struct {
	MaxAttempts          int     `toml:"max_attempts"`
	ScaleMin             float64 `toml:"scale_min"`
	ScaleMax             float64 `toml:"scale_max"`
	OuterProbability     float64 `toml:"outer_probability"`
	ValidateAtScaledSize bool    `toml:"validate_at_scaled_size"`
}

// DefaultOptions returns the stock search parameters.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:      DefaultMaxAttempts,
		ScaleMin:         DefaultScaleMin,
		ScaleMax:         DefaultScaleMax,
		OuterProbability: DefaultOuterProbability,
	}
}

// Band identifies which ellipse a position was sampled from.
type Band int

const (
	BandOuter Band = iota
	BandInner
)

func (b Band) String() string {
	if b == BandInner {
		return "inner"
	}
	return "outer"
}

// Position is the result of a successful search. X and Y are the card's
// top-left corner; the caller applies Scale to the card's dimensions.
type Position struct {
	X        float64
	Y        float64
	Scale    float64
	Band     Band
	Attempts int
}

// Rect returns the final card rectangle for a w×h card placed at p.
func (p Position) Rect(w, h float64) geometry.Rect {
	return geometry.Rect{X: p.X, Y: p.Y, W: w * p.Scale, H: h * p.Scale}
}

// Engine samples card positions. It is not safe for concurrent use because
// its random source is not.
type Engine struct {
	rng  Source
	opts Options
}

// New creates an engine drawing from rng. A nil opts uses [DefaultOptions].
func New(rng Source, opts *Options) *Engine {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return &Engine{rng: rng, opts: o}
}

// NewSeeded creates an engine with a deterministic PCG source.
func NewSeeded(seed uint64, opts *Options) *Engine {
	return New(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)), opts)
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options { return e.opts }

// FindPosition searches for a position for a w×h card that satisfies
// geometry.IsValidPosition against placed and stays clear of the avatar.
// It returns an error matching [ErrExhausted] after MaxAttempts failures.
func (e *Engine) FindPosition(w, h float64, placed []geometry.Rect, p geometry.Params) (Position, error) {
	avatar := p.AvatarBox()
	for attempt := 1; attempt <= e.opts.MaxAttempts; attempt++ {
		pos, rect := e.sample(w, h, p)
		if geometry.IsValidPosition(rect, placed, p) && !geometry.OverlapsAvatar(rect, avatar) {
			pos.Attempts = attempt
			return pos, nil
		}
	}
	return Position{Attempts: e.opts.MaxAttempts}, errors.New(errors.ErrCodePlacementExhausted,
		"no valid position for %s card after %d attempts", fmtSize(w, h), e.opts.MaxAttempts)
}

// sample draws one candidate and returns it with the rectangle it is
// validated as.
func (e *Engine) sample(w, h float64, p geometry.Params) (Position, geometry.Rect) {
	angle := e.rng.Float64() * 2 * math.Pi
	scale := e.opts.ScaleMin + e.rng.Float64()*(e.opts.ScaleMax-e.opts.ScaleMin)
	band, ellipse := BandInner, p.Inner
	if e.rng.Float64() < e.opts.OuterProbability {
		band, ellipse = BandOuter, p.Outer
	}

	cw, ch := w, h
	if e.opts.ValidateAtScaledSize {
		cw, ch = w*scale, h*scale
	}
	rect := geometry.CenteredAt(ellipse.PointAt(p.Center, angle), cw, ch)
	return Position{X: rect.X, Y: rect.Y, Scale: scale, Band: band}, rect
}

func fmtSize(w, h float64) string {
	return fmt.Sprintf("%.0fx%.0f", w, h)
}
