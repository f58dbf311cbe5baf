package cards

import (
	"github.com/google/uuid"

	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/posts"
)

// Card is one floating card. Handle belongs to the presenter and is never
// inspected by this package.
type Card struct {
	ID     uuid.UUID     `json:"id"`
	Rect   geometry.Rect `json:"rect"`
	Scale  float64       `json:"scale"`
	Post   posts.Post    `json:"post"`
	Handle any           `json:"-"`
}

// Presenter renders cards. The manager calls it synchronously from the
// operation that changed the card.
type Presenter interface {
	// Place is called after a new card joins the set.
	Place(c *Card)
	// Move is called after relayout gave c a new rectangle.
	Move(c *Card)
	// Evict is called before c is removed from the set.
	Evict(c *Card)
	// Layout is called when a new Params snapshot takes effect.
	Layout(p geometry.Params)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) Place(*Card)            {}
func (NopPresenter) Move(*Card)             {}
func (NopPresenter) Evict(*Card)            {}
func (NopPresenter) Layout(geometry.Params) {}

// Presenters fans notifications out to several presenters in order.
type Presenters []Presenter

func (ps Presenters) Place(c *Card) {
	for _, p := range ps {
		p.Place(c)
	}
}

func (ps Presenters) Move(c *Card) {
	for _, p := range ps {
		p.Move(c)
	}
}

func (ps Presenters) Evict(c *Card) {
	for _, p := range ps {
		p.Evict(c)
	}
}

func (ps Presenters) Layout(params geometry.Params) {
	for _, p := range ps {
		p.Layout(params)
	}
}
