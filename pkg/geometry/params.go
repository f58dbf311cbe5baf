package geometry

// Default layout constants.
const (
	DefaultMaxCardWidth      = 200.0
	DefaultCardWidthDivisor  = 6.0
	DefaultCardAspect        = 0.75
	DefaultAvatarDivisor     = 3.0
	DefaultMargin            = 20.0
	DefaultOverlapThreshold  = 0.1
	DefaultMinDistanceFactor = 0.5
)

// Band scales an ellipse to the viewport: RX = W*Width, RY = H*Height.
type Band struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Default band factors.
var (
	DefaultOuterBand = Band{Width: 0.35, Height: 0.4667}
	DefaultInnerBand = Band{Width: 0.25, Height: 0.3333}
)

// Constants holds the tunable inputs of [Constants.Recompute].
type Constants struct {
	MaxCardWidth      float64 `toml:"max_card_width"`
	CardWidthDivisor  float64 `toml:"card_width_divisor"`
	CardAspect        float64 `toml:"card_aspect"`
	AvatarDivisor     float64 `toml:"avatar_divisor"`
	Margin            float64 `toml:"margin"`
	OverlapThreshold  float64 `toml:"overlap_threshold"`
	MinDistanceFactor float64 `toml:"min_distance_factor"`
	Outer             Band    `toml:"outer"`
	Inner             Band    `toml:"inner"`
}

// DefaultConstants returns the constants used by [Recompute].
func DefaultConstants() Constants {
	return Constants{
		MaxCardWidth:      DefaultMaxCardWidth,
		CardWidthDivisor:  DefaultCardWidthDivisor,
		CardAspect:        DefaultCardAspect,
		AvatarDivisor:     DefaultAvatarDivisor,
		Margin:            DefaultMargin,
		OverlapThreshold:  DefaultOverlapThreshold,
		MinDistanceFactor: DefaultMinDistanceFactor,
		Outer:             DefaultOuterBand,
		Inner:             DefaultInnerBand,
	}
}

// Params is an immutable layout snapshot for one viewport size.
type Params struct {
	Width             float64 `json:"viewport_width"`
	Height            float64 `json:"viewport_height"`
	CardWidth         float64 `json:"card_width"`
	CardHeight        float64 `json:"card_height"`
	Center            Point   `json:"center"`
	Outer             Ellipse `json:"outer"`
	Inner             Ellipse `json:"inner"`
	AvatarSize        float64 `json:"avatar_size"`
	Margin            float64 `json:"margin"`
	OverlapThreshold  float64 `json:"overlap_threshold"`
	MinDistanceFactor float64 `json:"min_distance_factor"`
}

// Recompute derives Params for a w×h viewport using [DefaultConstants].
func Recompute(w, h float64) Params {
	return DefaultConstants().Recompute(w, h)
}

// Recompute derives Params for a w×h viewport. It has no side effects.
func (c Constants) Recompute(w, h float64) Params {
	cardW := min(w/c.CardWidthDivisor, c.MaxCardWidth)
	return Params{
		Width:      w,
		Height:     h,
		CardWidth:  cardW,
		CardHeight: cardW * c.CardAspect,
		Center:     Point{X: w / 2, Y: h / 2},
		Outer:      Ellipse{RX: w * c.Outer.Width, RY: h * c.Outer.Height},
		Inner:      Ellipse{RX: w * c.Inner.Width, RY: h * c.Inner.Height},
		AvatarSize: min(h/c.AvatarDivisor, w/c.AvatarDivisor),

		Margin:            c.Margin,
		OverlapThreshold:  c.OverlapThreshold,
		MinDistanceFactor: c.MinDistanceFactor,
	}
}

// AvatarBox returns the bounding square of the avatar circle.
func (p Params) AvatarBox() Rect {
	return CenteredAt(p.Center, p.AvatarSize, p.AvatarSize)
}

// Bounds returns the region a card must stay inside: the viewport inset by
// Margin on every side.
func (p Params) Bounds() Rect {
	return Rect{X: p.Margin, Y: p.Margin, W: p.Width - 2*p.Margin, H: p.Height - 2*p.Margin}
}
