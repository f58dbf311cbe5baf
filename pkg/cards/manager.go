package cards

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/observability"
	"github.com/matzehuels/orbitcards/pkg/placement"
	"github.com/matzehuels/orbitcards/pkg/posts"
)

// DefaultMaxCards is the default capacity of the card set.
const DefaultMaxCards = 8

// Manager owns the card set. It is not safe for concurrent use; callers
// drive it from a single event loop.
type Manager struct {
	engine    *placement.Engine
	params    geometry.Params
	deck      *Deck
	cards     []*Card
	maxCards  int
	presenter Presenter
	logger    *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithPresenter sets the presenter notified of card changes.
func WithPresenter(p Presenter) Option { return func(m *Manager) { m.presenter = p } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithMaxCards sets the capacity. Values below 1 are ignored.
func WithMaxCards(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.maxCards = n
		}
	}
}

// NewManager creates an empty card set.
func NewManager(engine *placement.Engine, params geometry.Params, deck *Deck, opts ...Option) *Manager {
	m := &Manager{
		engine:    engine,
		params:    params,
		deck:      deck,
		maxCards:  DefaultMaxCards,
		presenter: NopPresenter{},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.deck == nil {
		m.deck = NewDeck(nil)
	}
	return m
}

// Init fills the set with min(MaxCards, deck length) add attempts and
// returns how many cards were placed.
func (m *Manager) Init(ctx context.Context) int {
	n := min(m.maxCards, m.deck.Len())
	placed := 0
	for range n {
		if c, _ := m.AddNext(ctx); c != nil {
			placed++
		}
	}
	m.logger.Debug("initialized cards", "attempts", n, "placed", placed, "cursor", m.deck.Cursor())
	return placed
}

// AddNext draws the next post from the deck and adds a card for it. The
// cursor advances even if placement fails. An empty deck is a no-op.
func (m *Manager) AddNext(ctx context.Context) (*Card, error) {
	post, ok := m.deck.Next()
	if !ok {
		return nil, nil
	}
	return m.AddCard(ctx, post)
}

// AddCard evicts the oldest card if the set is full, then places a new
// card for post. If no position is found the set keeps its evicted size
// and the returned error matches placement.ErrExhausted.
func (m *Manager) AddCard(ctx context.Context, post posts.Post) (*Card, error) {
	if len(m.cards) >= m.maxCards {
		m.evictFront(ctx)
	}

	w, h := m.params.CardWidth, m.params.CardHeight
	pos, err := m.engine.FindPosition(w, h, m.rects(-1), m.params)
	observability.Placement().OnSearch(ctx, err == nil, pos.Attempts)
	if err != nil {
		m.logger.Debug("skipped card", "post", post.Title, "attempts", pos.Attempts)
		return nil, err
	}

	c := &Card{
		ID:    uuid.New(),
		Rect:  pos.Rect(w, h),
		Scale: pos.Scale,
		Post:  post,
	}
	m.cards = append(m.cards, c)
	m.presenter.Place(c)
	m.logger.Debug("placed card", "post", post.Title, "band", pos.Band, "attempts", pos.Attempts)
	return c, nil
}

// RelayoutAll gives every card a fresh position, using the other cards as
// obstacles. Cards with no valid position keep their rectangle. It returns
// the number of cards moved.
func (m *Manager) RelayoutAll(ctx context.Context) int {
	w, h := m.params.CardWidth, m.params.CardHeight
	moved := 0
	for i, c := range m.cards {
		pos, err := m.engine.FindPosition(w, h, m.rects(i), m.params)
		observability.Placement().OnSearch(ctx, err == nil, pos.Attempts)
		if err != nil {
			m.logger.Debug("kept card in place", "post", c.Post.Title)
			continue
		}
		c.Rect = pos.Rect(w, h)
		c.Scale = pos.Scale
		m.presenter.Move(c)
		moved++
	}
	return moved
}

// SetParams installs a new layout snapshot and forwards it to the
// presenter. Existing cards are not moved; call RelayoutAll for that.
func (m *Manager) SetParams(p geometry.Params) {
	m.params = p
	m.presenter.Layout(p)
}

// Params returns the current layout snapshot.
func (m *Manager) Params() geometry.Params { return m.params }

// Cards returns copies of the held cards, oldest first.
func (m *Manager) Cards() []Card {
	out := make([]Card, len(m.cards))
	for i, c := range m.cards {
		out[i] = *c
	}
	return out
}

// Find returns the card with the given ID.
func (m *Manager) Find(id uuid.UUID) (*Card, bool) {
	i := slices.IndexFunc(m.cards, func(c *Card) bool { return c.ID == id })
	if i < 0 {
		return nil, false
	}
	return m.cards[i], true
}

// At returns the i-th card, oldest first.
func (m *Manager) At(i int) (*Card, bool) {
	if i < 0 || i >= len(m.cards) {
		return nil, false
	}
	return m.cards[i], true
}

// Len returns the number of held cards.
func (m *Manager) Len() int { return len(m.cards) }

// MaxCards returns the capacity.
func (m *Manager) MaxCards() int { return m.maxCards }

// Cursor returns the deck cursor.
func (m *Manager) Cursor() int { return m.deck.Cursor() }

// Deck returns the post deck.
func (m *Manager) Deck() *Deck { return m.deck }

func (m *Manager) evictFront(ctx context.Context) {
	c := m.cards[0]
	m.presenter.Evict(c)
	m.cards[0] = nil
	m.cards = m.cards[1:]
	observability.Placement().OnEvict(ctx, c.ID.String())
	m.logger.Debug("evicted card", "post", c.Post.Title)
}

// rects returns the rectangles of all cards except index skip.
func (m *Manager) rects(skip int) []geometry.Rect {
	out := make([]geometry.Rect, 0, len(m.cards))
	for i, c := range m.cards {
		if i != skip {
			out = append(out, c.Rect)
		}
	}
	return out
}
