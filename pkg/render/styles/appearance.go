package styles

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Ranges of the random card parameters.
const (
	FloatRange  = 20.0 // px, offsets are drawn from [-FloatRange, FloatRange]
	RotateRange = 5.0  // deg
	MaxDelay    = 10.0 // s, delays are drawn from [0, MaxDelay)

	backgroundLightness = 0.85
	borderLightness     = 0.70
)

// Appearance is everything random about how one card looks.
type Appearance struct {
	Hue        float64        `json:"hue"`
	Background colorful.Color `json:"-"`
	Border     colorful.Color `json:"-"`
	Float      [6]float64     `json:"float"`
	Rotate     [3]float64     `json:"rotate"`
	Delay      float64        `json:"delay"`
}

// Pastel returns the background and border colors for hue (degrees):
// full saturation at 85% and 70% lightness.
func Pastel(hue float64) (background, border colorful.Color) {
	return colorful.Hsl(hue, 1, backgroundLightness), colorful.Hsl(hue, 1, borderLightness)
}

// CSSVars renders the float and rotation parameters as CSS custom
// properties for the card keyframes.
func (a Appearance) CSSVars() string {
	return fmt.Sprintf(
		"--float-x1:%.1fpx;--float-y1:%.1fpx;--float-x2:%.1fpx;--float-y2:%.1fpx;--float-x3:%.1fpx;--float-y3:%.1fpx;"+
			"--rotate-1:%.2fdeg;--rotate-2:%.2fdeg;--rotate-3:%.2fdeg;animation-delay:%.2fs",
		a.Float[0], a.Float[1], a.Float[2], a.Float[3], a.Float[4], a.Float[5],
		a.Rotate[0], a.Rotate[1], a.Rotate[2], a.Delay)
}

// Palette draws appearances from a seeded source. It is not safe for
// concurrent use.
type Palette struct {
	rng *rand.Rand
}

// NewPalette creates a palette for seed.
func NewPalette(seed uint64) *Palette {
	return &Palette{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Next draws the next appearance.
func (p *Palette) Next() Appearance {
	a := Appearance{Hue: p.rng.Float64() * 360}
	a.Background, a.Border = Pastel(a.Hue)
	for i := range a.Float {
		a.Float[i] = p.symmetric(FloatRange)
	}
	for i := range a.Rotate {
		a.Rotate[i] = p.symmetric(RotateRange)
	}
	a.Delay = p.rng.Float64() * MaxDelay
	return a
}

func (p *Palette) symmetric(r float64) float64 {
	return (p.rng.Float64()*2 - 1) * r
}
