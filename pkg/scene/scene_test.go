package scene

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbitcards/pkg/cards"
	"github.com/matzehuels/orbitcards/pkg/config"
	"github.com/matzehuels/orbitcards/pkg/errors"
	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/posts"
)

// Draw triples (angle, scale, band) that land on four disjoint spots in a
// 1200x800 viewport: right, left, bottom and top of the avatar.
var spots = []float64{
	0, 0.5, 0,
	0.5, 0.5, 0,
	0.25, 0.5, 0.9,
	0.75, 0.5, 0.9,
}

type cycle struct {
	vals []float64
	n    int
}

func (c *cycle) Float64() float64 {
	v := c.vals[c.n%len(c.vals)]
	c.n++
	return v
}

type layoutRecorder struct {
	cards.NopPresenter
	layouts []geometry.Params
	evicted []string
}

func (r *layoutRecorder) Layout(p geometry.Params) { r.layouts = append(r.layouts, p) }
func (r *layoutRecorder) Evict(c *cards.Card)      { r.evicted = append(r.evicted, c.Post.Title) }

var samplePosts = []posts.Post{
	{Title: "A", Date: "2024-01-01", Path: "2024/01/01/a"},
	{Title: "B", Date: "2024-02-01", Path: "/2024/02/01/b.html"},
	{Title: "C", Date: "2024-03-01", Path: ""},
}

type fixture struct {
	ctrl  *Controller
	clock *SimClock
	rec   *layoutRecorder
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Cards.Origin = "https://example.com"
	f := fixture{
		clock: NewSimClock(time.Unix(1700000000, 0)),
		rec:   &layoutRecorder{},
	}
	opts = append([]Option{
		WithSource(&cycle{vals: spots}),
		WithClock(f.clock.Now),
		WithPresenter(f.rec),
		WithLogger(log.New(io.Discard)),
	}, opts...)
	f.ctrl = New(cfg, opts...)
	return f
}

func TestLoadThenScroll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	placed, err := f.ctrl.Load(ctx, 1200, 800, samplePosts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if placed != 3 || f.ctrl.Cursor() != 0 {
		t.Fatalf("Load() placed %d, cursor %d; want 3, 0", placed, f.ctrl.Cursor())
	}

	f.clock.Set(time.Second)
	card, ok := f.ctrl.Scroll(ctx)
	if !ok {
		t.Fatal("Scroll() was dropped")
	}
	if card == nil || card.Post.Title != "A" {
		t.Fatalf("Scroll() card = %+v, want post A reused", card)
	}
	if n := len(f.ctrl.Cards()); n != 4 {
		t.Errorf("len(Cards()) = %d, want 4", n)
	}
	if f.ctrl.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", f.ctrl.Cursor())
	}
}

func TestLoadNormalizesPaths(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ctrl.Load(context.Background(), 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}
	if got := f.ctrl.Cards()[0].Post.Path; got != "/2024/01/01/a.html" {
		t.Errorf("Path = %q, want normalized", got)
	}
	if samplePosts[0].Path != "2024/01/01/a" {
		t.Error("Load() mutated the caller's posts")
	}
}

func TestScrollThrottle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.ctrl.Load(ctx, 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{100 * time.Millisecond, false},
		{499 * time.Millisecond, false},
		{500 * time.Millisecond, true},
		{600 * time.Millisecond, false},
	}
	for _, s := range steps {
		f.clock.Set(s.at)
		if _, ok := f.ctrl.Scroll(ctx); ok != s.want {
			t.Errorf("Scroll() at %v accepted = %v, want %v", s.at, ok, s.want)
		}
	}

	scroll, _ := f.ctrl.ThrottleStats()
	if scroll.Accepted != 2 || scroll.Dropped != 3 {
		t.Errorf("scroll stats = %+v, want 2 accepted, 3 dropped", scroll)
	}
}

func TestScrollBeforeLoad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if card, ok := f.ctrl.Scroll(ctx); card != nil || ok {
		t.Fatalf("Scroll() before Load = %v, %v; want nil, false", card, ok)
	}
	if scroll, _ := f.ctrl.ThrottleStats(); scroll.Accepted != 0 || scroll.Dropped != 0 {
		t.Errorf("scroll stats = %+v, want throttle untouched", scroll)
	}

	if _, err := f.ctrl.Load(ctx, 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}
	f.clock.Set(100 * time.Millisecond)
	if _, ok := f.ctrl.Scroll(ctx); !ok {
		t.Error("first scroll after Load should open the window")
	}
}

func TestResize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.ctrl.Load(ctx, 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}
	before := len(f.ctrl.Cards())

	ok, err := f.ctrl.Resize(ctx, 1024, 768)
	if err != nil || !ok {
		t.Fatalf("Resize() = %v, %v; want accepted", ok, err)
	}
	want := geometry.Recompute(1024, 768)
	if f.ctrl.Params() != want {
		t.Errorf("Params() = %+v, want %+v", f.ctrl.Params(), want)
	}
	if len(f.rec.layouts) != 2 || f.rec.layouts[1] != want {
		t.Errorf("layouts = %d, want load + resize", len(f.rec.layouts))
	}
	if got := len(f.ctrl.Cards()); got != before {
		t.Errorf("Resize() changed card count %d -> %d", before, got)
	}
	if len(f.rec.evicted) != 0 {
		t.Errorf("Resize() evicted %v", f.rec.evicted)
	}

	// inside the 200ms window
	f.clock.Set(150 * time.Millisecond)
	ok, err = f.ctrl.Resize(ctx, 800, 600)
	if err != nil || ok {
		t.Errorf("Resize() inside window = %v, %v; want dropped", ok, err)
	}
	if f.ctrl.Params() != want {
		t.Error("dropped resize recomputed params")
	}
}

func TestResizeInvalidViewport(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.Resize(context.Background(), 0, 600)
	if !errors.Is(err, errors.ErrCodeInvalidViewport) {
		t.Errorf("Resize(0, 600) error = %v, want INVALID_VIEWPORT", err)
	}
}

func TestLoadInvalidViewport(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.Load(context.Background(), -1, 800, samplePosts)
	if !errors.Is(err, errors.ErrCodeInvalidViewport) {
		t.Errorf("Load() error = %v, want INVALID_VIEWPORT", err)
	}
	if f.ctrl.Loaded() {
		t.Error("Loaded() after failed Load")
	}
}

func TestLoadWithoutPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	n, err := f.ctrl.Load(ctx, 1200, 800, nil)
	if !errors.Is(err, errors.ErrCodeDataSourceAbsent) || n != 0 {
		t.Fatalf("Load(nil) = %d, %v; want 0, DATA_SOURCE_ABSENT", n, err)
	}
	if !f.ctrl.Loaded() || len(f.rec.layouts) != 1 {
		t.Error("avatar-only scene should still be laid out")
	}

	card, ok := f.ctrl.Scroll(ctx)
	if card != nil || !ok {
		t.Errorf("Scroll() = %v, %v; want nil, true", card, ok)
	}
	if ok, err := f.ctrl.Resize(ctx, 800, 600); !ok || err != nil {
		t.Errorf("Resize() = %v, %v; want accepted", ok, err)
	}
	if len(f.rec.layouts) != 2 {
		t.Errorf("layouts = %d, want 2", len(f.rec.layouts))
	}
	if _, err := f.ctrl.Click(ctx, 0); !errors.Is(err, errors.ErrCodeCardNotFound) {
		t.Errorf("Click() error = %v, want CARD_NOT_FOUND", err)
	}
}

func TestLoadEmptyPosts(t *testing.T) {
	f := newFixture(t)
	n, err := f.ctrl.Load(context.Background(), 1200, 800, []posts.Post{})
	if err != nil || n != 0 {
		t.Errorf("Load([]) = %d, %v; want 0, nil", n, err)
	}
}

func TestClick(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.ctrl.Load(ctx, 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		index    int
		wantURL  string
		wantCode errors.Code
	}{
		{0, "https://example.com/2024/01/01/a.html", ""},
		{1, "https://example.com/2024/02/01/b.html", ""},
		{2, "", errors.ErrCodeMissingLinkTarget},
		{3, "", errors.ErrCodeCardNotFound},
		{-1, "", errors.ErrCodeCardNotFound},
	}
	for _, tt := range tests {
		url, err := f.ctrl.Click(ctx, tt.index)
		if url != tt.wantURL || errors.GetCode(err) != tt.wantCode {
			t.Errorf("Click(%d) = %q, %v; want %q, %q", tt.index, url, err, tt.wantURL, tt.wantCode)
		}
	}
}

func TestClickCard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.ctrl.Load(ctx, 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}
	first := f.ctrl.Cards()[0]

	url, err := f.ctrl.ClickCard(ctx, first.ID)
	if err != nil || url != "https://example.com/2024/01/01/a.html" {
		t.Errorf("ClickCard() = %q, %v", url, err)
	}
}

func TestSnapshotJSON(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ctrl.Load(context.Background(), 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(f.ctrl.Snapshot())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var got struct {
		Cards []struct {
			ID   string `json:"id"`
			Post struct {
				Title string `json:"title"`
			} `json:"post"`
		} `json:"cards"`
		MaxCards int `json:"max_cards"`
		Posts    int `json:"posts"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(got.Cards) != 3 || got.MaxCards != 8 || got.Posts != 3 {
		t.Errorf("snapshot = %+v", got)
	}
	if got.Cards[0].ID == "" || got.Cards[0].Post.Title != "A" {
		t.Errorf("first card = %+v", got.Cards[0])
	}
}

func TestSnapshotEmpty(t *testing.T) {
	f := newFixture(t)
	s := f.ctrl.Snapshot()
	if s.Cards == nil || len(s.Cards) != 0 {
		t.Errorf("Snapshot().Cards = %v, want empty non-nil", s.Cards)
	}
}

func TestSnapshotReportsManagerCap(t *testing.T) {
	cfg := config.Default()
	cfg.Cards.MaxCards = 0
	ctrl := New(cfg,
		WithSource(&cycle{vals: spots}),
		WithLogger(log.New(io.Discard)),
	)
	if _, err := ctrl.Load(context.Background(), 1200, 800, samplePosts); err != nil {
		t.Fatal(err)
	}
	if got := ctrl.Snapshot().MaxCards; got != cards.DefaultMaxCards {
		t.Errorf("Snapshot().MaxCards = %d, want %d", got, cards.DefaultMaxCards)
	}
}
