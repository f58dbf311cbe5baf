// Package scene drives the floating-cards effect from discrete input events.
//
// A [Controller] owns the layout snapshot, the card set, the post deck and
// the scroll and resize throttles. It is fed four events:
//
//	Load    viewport ready; compute params and place the initial cards
//	Scroll  add the next card (throttled, leading edge)
//	Resize  recompute params and relayout every card (throttled)
//	Click   resolve a card's post into an absolute link
//
// The controller never renders. Everything visible flows through the
// [cards.Presenter] it was built with.
package scene

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orbitcards/pkg/cards"
	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/observability"
	"github.com/matzehuels/orbitcards/pkg/placement"
	"github.com/matzehuels/orbitcards/pkg/posts"
	"github.com/matzehuels/orbitcards/pkg/throttle"
)

// Controller is the top-level lifecycle owner. It is not safe for
// concurrent use.
type Controller struct {
	cfg       config.Config
	engine    *placement.Engine
	params    geometry.Params
	manager   *cards.Manager
	scroll    *throttle.Limiter
	resize    *throttle.Limiter
	presenter cards.Presenter
	logger    *log.Logger
	clock     throttle.Clock
	loaded    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPresenter sets the presenter that renders the scene.
func WithPresenter(p cards.Presenter) Option { return func(c *Controller) { c.presenter = p } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithClock replaces the wall clock used by the throttles.
func WithClock(clock throttle.Clock) Option { return func(c *Controller) { c.clock = clock } }

// WithSource replaces the placement random source.
func WithSource(src placement.Source) Option {
	return func(c *Controller) {
		opts := c.cfg.Placement
		c.engine = placement.New(src, &opts)
	}
}

// New creates a controller from cfg. Cards.Seed selects a reproducible
// random source; zero seeds from the clock.
func New(cfg config.Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		presenter: cards.NopPresenter{},
		logger:    log.Default(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		seed := cfg.Cards.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		popts := cfg.Placement
		c.engine = placement.NewSeeded(seed, &popts)
	}
	c.scroll = throttle.New(cfg.Throttle.Scroll.Duration, throttle.WithClock(c.clock))
	c.resize = throttle.New(cfg.Throttle.Resize.Duration, throttle.WithClock(c.clock))
	return c
}

// Load computes the layout for a width×height viewport and places up to
// min(MaxCards, len(list)) cards. A nil list means the post source is
// absent: the avatar-only scene is laid out and a DATA_SOURCE_ABSENT error
// is returned. An empty list is not an error.
func (c *Controller) Load(ctx context.Context, width, height float64, list []posts.Post) (int, error) {
	if err := errors.ValidateViewport(width, height); err != nil {
		return 0, err
	}
	c.params = c.cfg.Geometry.Recompute(width, height)
	c.presenter.Layout(c.params)
	c.loaded = true

	if list == nil {
		err := errors.New(errors.ErrCodeDataSourceAbsent, "no post source; cards disabled")
		c.logger.Error("card subsystem skipped", "err", err)
		return 0, err
	}

	deck := cards.NewDeck(posts.Normalize(list))
	c.manager = cards.NewManager(c.engine, c.params, deck,
		cards.WithPresenter(c.presenter),
		cards.WithLogger(c.logger),
		cards.WithMaxCards(c.cfg.Cards.MaxCards),
	)
	placed := c.manager.Init(ctx)
	c.logger.Info("scene loaded", "viewport", sizeString(width, height), "posts", deck.Len(), "cards", placed)
	return placed, nil
}

// Scroll handles a scroll event. If the scroll throttle accepts it, the
// next post is added as a card. It reports whether the event was accepted
// and returns the new card, which is nil when placement failed or there
// are no cards. Scrolls before Load are ignored and leave the throttle
// untouched.
func (c *Controller) Scroll(ctx context.Context) (*cards.Card, bool) {
	if !c.loaded {
		return nil, false
	}
	accepted := c.scroll.Allow()
	observability.Scene().OnScroll(ctx, accepted)
	if !accepted {
		c.logger.Debug("scroll dropped")
		return nil, false
	}
	if c.manager == nil {
		return nil, true
	}
	card, err := c.manager.AddNext(ctx)
	if err != nil {
		return nil, true
	}
	return card, true
}

// Resize handles a viewport change. If the resize throttle accepts it, the
// params are recomputed once and every card is relaid out against the new
// snapshot. Resize never evicts. It reports whether the event was accepted.
func (c *Controller) Resize(ctx context.Context, width, height float64) (bool, error) {
	if err := errors.ValidateViewport(width, height); err != nil {
		return false, err
	}
	accepted := c.resize.Allow()
	observability.Scene().OnResize(ctx, accepted, width, height)
	if !accepted {
		c.logger.Debug("resize dropped", "viewport", sizeString(width, height))
		return false, nil
	}

	c.params = c.cfg.Geometry.Recompute(width, height)
	if c.manager == nil {
		c.presenter.Layout(c.params)
		return true, nil
	}

	start := time.Now()
	c.manager.SetParams(c.params)
	moved := c.manager.RelayoutAll(ctx)
	observability.Scene().OnRelayout(ctx, moved, c.manager.Len(), time.Since(start))
	c.logger.Debug("relayout", "viewport", sizeString(width, height), "moved", moved, "cards", c.manager.Len())
	return true, nil
}

// Click resolves the link of the i-th card, oldest first. A card whose
// post has no path yields MISSING_LINK_TARGET, which is logged.
func (c *Controller) Click(ctx context.Context, i int) (string, error) {
	if c.manager == nil {
		return "", errors.New(errors.ErrCodeCardNotFound, "no cards")
	}
	card, ok := c.manager.At(i)
	if !ok {
		return "", errors.New(errors.ErrCodeCardNotFound, "no card at index %d (have %d)", i, c.manager.Len())
	}
	return c.link(card)
}

// ClickCard resolves the link of the card with the given ID.
func (c *Controller) ClickCard(ctx context.Context, id uuid.UUID) (string, error) {
	if c.manager == nil {
		return "", errors.New(errors.ErrCodeCardNotFound, "no cards")
	}
	card, ok := c.manager.Find(id)
	if !ok {
		return "", errors.New(errors.ErrCodeCardNotFound, "no card %s", id)
	}
	return c.link(card)
}

func (c *Controller) link(card *cards.Card) (string, error) {
	url, err := card.Post.Link(c.cfg.Cards.Origin)
	if err != nil {
		if errors.Is(err, errors.ErrCodeMissingLinkTarget) {
			c.logger.Warn("card has no link target", "post", card.Post.Title)
		}
		return "", err
	}
	c.logger.Debug("open", "url", url)
	return url, nil
}

// Params returns the current layout snapshot.
func (c *Controller) Params() geometry.Params { return c.params }

// Loaded reports whether Load has run.
func (c *Controller) Loaded() bool { return c.loaded }

// Cards returns the held cards, oldest first.
func (c *Controller) Cards() []cards.Card {
	if c.manager == nil {
		return nil
	}
	return c.manager.Cards()
}

// Cursor returns the post cursor.
func (c *Controller) Cursor() int {
	if c.manager == nil {
		return 0
	}
	return c.manager.Cursor()
}

// ThrottleStats reports how many scroll and resize events were accepted
// and dropped.
func (c *Controller) ThrottleStats() (scroll, resize Stats) {
	scroll.Accepted, scroll.Dropped = c.scroll.Stats()
	resize.Accepted, resize.Dropped = c.resize.Stats()
	return scroll, resize
}

// Stats counts throttled events.
type Stats struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// Snapshot is a serializable view of the scene.
type Snapshot struct {
	Params   geometry.Params `json:"params"`
	Cards    []cards.Card    `json:"cards"`
	Cursor   int             `json:"cursor"`
	MaxCards int             `json:"max_cards"`
	Posts    int             `json:"posts"`
	Scroll   Stats           `json:"scroll"`
	Resize   Stats           `json:"resize"`
}

// Snapshot captures the current scene.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Params:   c.params,
		Cards:    c.Cards(),
		Cursor:   c.Cursor(),
		MaxCards: c.cfg.Cards.MaxCards,
	}
	if s.Cards == nil {
		s.Cards = []cards.Card{}
	}
	if c.manager != nil {
		s.MaxCards = c.manager.MaxCards()
		s.Posts = c.manager.Deck().Len()
	}
	s.Scroll, s.Resize = c.ThrottleStats()
	return s
}

func sizeString(w, h float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "x" + strconv.FormatFloat(h, 'f', -1, 64)
}
