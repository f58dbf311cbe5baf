package render

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/orbitcards/pkg/cards"
	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/posts"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newCard(title, path string, x float64) *cards.Card {
	return &cards.Card{
		ID:    uuid.New(),
		Rect:  geometry.Rect{X: x, Y: 100, W: 200, H: 150},
		Scale: 1,
		Post:  posts.Post{Title: title, Date: "2024-03-01", Path: path},
	}
}

func TestStagePlaceAndMove(t *testing.T) {
	s := NewStage(1, WithOrigin("https://example.com"))
	s.Layout(geometry.Recompute(1200, 800))

	a := newCard("A", "/a.html", 40)
	s.Place(a)
	if _, ok := a.Handle.(*CardView); !ok {
		t.Fatalf("Place() did not set the handle, got %T", a.Handle)
	}

	a.Rect.X = 900
	a.Scale = 1.1
	s.Move(a)

	f := s.Frame()
	if len(f.Cards) != 1 {
		t.Fatalf("len(Cards) = %d, want 1", len(f.Cards))
	}
	v := f.Cards[0]
	if v.Rect.X != 900 || v.Scale != 1.1 {
		t.Errorf("view = %+v, want moved", v)
	}
	if v.Link != "https://example.com/a.html" || v.Date != "Mar 1, 2024" {
		t.Errorf("view link/date = %q, %q", v.Link, v.Date)
	}
	if f.Params.Width != 1200 {
		t.Errorf("Params.Width = %v, want 1200", f.Params.Width)
	}
}

func TestStageEvictAnimatesThenDetaches(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	s := NewStage(1, WithStageClock(clock.now))

	a, b := newCard("A", "/a.html", 40), newCard("B", "/b.html", 400)
	s.Place(a)
	s.Place(b)
	s.Evict(a)

	f := s.Frame()
	if len(f.Cards) != 1 || f.Cards[0].Title != "B" {
		t.Fatalf("live cards = %+v, want only B", f.Cards)
	}
	if len(f.Exiting) != 1 || !f.Exiting[0].Exiting || f.Exiting[0].Title != "A" {
		t.Fatalf("exiting = %+v, want A", f.Exiting)
	}

	clock.t = clock.t.Add(499 * time.Millisecond)
	if n := len(s.Frame().Exiting); n != 1 {
		t.Errorf("exiting after 499ms = %d, want 1", n)
	}
	clock.t = clock.t.Add(time.Millisecond)
	if n := len(s.Frame().Exiting); n != 0 {
		t.Errorf("exiting after 500ms = %d, want 0", n)
	}
}

func TestStageMoveWithoutHandle(t *testing.T) {
	s := NewStage(1)
	a := newCard("A", "", 40)
	s.Place(a)

	// A copy as returned by Manager.Cards keeps the ID but may lose the handle.
	cp := *a
	cp.Handle = nil
	cp.Rect.Y = 500
	s.Move(&cp)

	if got := s.Frame().Cards[0].Rect.Y; got != 500 {
		t.Errorf("Rect.Y = %v, want 500", got)
	}
	if got := s.Frame().Cards[0].Link; got != "" {
		t.Errorf("Link = %q, want empty for a post without a path", got)
	}
}

func TestStageIsPresenter(t *testing.T) {
	var p cards.Presenter = NewStage(1)
	p.Layout(geometry.Recompute(800, 600))
}

func TestFrameAvatar(t *testing.T) {
	f := Frame{Params: geometry.Recompute(1200, 800)}
	c, size := f.Avatar()
	if c.X != 600 || c.Y != 400 {
		t.Errorf("center = %+v, want (600, 400)", c)
	}
	if size != 800.0/3 {
		t.Errorf("size = %v, want %v", size, 800.0/3)
	}
}
