package render

import (
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/orbitcards/pkg/cards"
	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/render/styles"
)

// DefaultExitDelay is how long an evicted card stays in the frame while
// it animates out.
const DefaultExitDelay = 500 * time.Millisecond

// CardView is a card as the sinks draw it.
type CardView struct {
	ID      string            `json:"id"`
	Rect    geometry.Rect     `json:"rect"`
	Scale   float64           `json:"scale"`
	Title   string            `json:"title"`
	Date    string            `json:"date"`
	Link    string            `json:"link,omitempty"`
	Style   styles.Appearance `json:"style"`
	Exiting bool              `json:"exiting,omitempty"`

	exitAt time.Time
}

// Frame is one renderable state of the scene.
type Frame struct {
	Params  geometry.Params
	Cards   []CardView
	Exiting []CardView
}

// Avatar returns the avatar's center and diameter.
func (f Frame) Avatar() (geometry.Point, float64) {
	return f.Params.Center, f.Params.AvatarSize
}

// Stage collects presenter notifications into a [Frame]. It is safe for
// concurrent use.
type Stage struct {
	mu        sync.Mutex
	palette   *styles.Palette
	origin    string
	exitDelay time.Duration
	now       func() time.Time

	params  geometry.Params
	live    []*CardView
	exiting []CardView
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithOrigin sets the site origin card links are resolved against.
func WithOrigin(origin string) StageOption { return func(s *Stage) { s.origin = origin } }

// WithExitDelay sets how long evicted cards stay in the frame.
func WithExitDelay(d time.Duration) StageOption { return func(s *Stage) { s.exitDelay = d } }

// WithStageClock replaces the wall clock used for exit animations.
func WithStageClock(now func() time.Time) StageOption { return func(s *Stage) { s.now = now } }

// NewStage creates an empty stage. seed drives card colors and motion.
func NewStage(seed uint64, opts ...StageOption) *Stage {
	s := &Stage{
		palette:   styles.NewPalette(seed),
		exitDelay: DefaultExitDelay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ cards.Presenter = (*Stage)(nil)

func (s *Stage) Place(c *cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, _ := c.Post.Link(s.origin)
	v := &CardView{
		ID:    c.ID.String(),
		Rect:  c.Rect,
		Scale: c.Scale,
		Title: c.Post.Title,
		Date:  c.Post.DisplayDate(),
		Link:  link,
		Style: s.palette.Next(),
	}
	c.Handle = v
	s.live = append(s.live, v)
}

func (s *Stage) Move(c *cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v := s.view(c); v != nil {
		v.Rect = c.Rect
		v.Scale = c.Scale
	}
}

func (s *Stage) Evict(c *cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.view(c)
	if v == nil {
		return
	}
	s.live = slices.DeleteFunc(s.live, func(x *CardView) bool { return x == v })
	out := *v
	out.Exiting = true
	out.exitAt = s.now().Add(s.exitDelay)
	s.exiting = append(s.exiting, out)
}

func (s *Stage) Layout(p geometry.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// Frame returns the current state. Exiting cards whose animation has
// finished are detached first.
func (s *Stage) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.exiting = slices.DeleteFunc(s.exiting, func(v CardView) bool { return !now.Before(v.exitAt) })

	f := Frame{
		Params:  s.params,
		Cards:   make([]CardView, len(s.live)),
		Exiting: slices.Clone(s.exiting),
	}
	for i, v := range s.live {
		f.Cards[i] = *v
	}
	return f
}

// view finds the view for c, preferring the handle set by Place.
func (s *Stage) view(c *cards.Card) *CardView {
	if v, ok := c.Handle.(*CardView); ok {
		return v
	}
	id := c.ID.String()
	i := slices.IndexFunc(s.live, func(v *CardView) bool { return v.ID == id })
	if i < 0 {
		return nil
	}
	return s.live[i]
}
