package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/orbitcards/pkg/geometry"
	"github.com/matzehuels/orbitcards/pkg/render"
)

func TestCanvasBox(t *testing.T) {
	c := newCanvas(6, 4)
	c.box(1, 0, 4, 3, 0, 0)
	c.text(2, 1, "hello", 2, 0)

	want := strings.Join([]string{
		" ╭──╮ ",
		" │he│ ",
		" │  │ ",
		" ╰──╯ ",
	}, "\n")
	if got := c.String(); got != want {
		t.Errorf("canvas =\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasClips(t *testing.T) {
	c := newCanvas(3, 2)
	c.set(-1, 0, 'x', 0)
	c.set(3, 0, 'x', 0)
	c.set(0, 2, 'x', 0)
	c.text(2, 1, "abc", 10, 0)
	if got := c.String(); got != "   \n  a" {
		t.Errorf("canvas = %q", got)
	}
	if c.at(5, 5) != 0 {
		t.Error("at out of bounds should be 0")
	}
}

func TestCanvasStyles(t *testing.T) {
	c := newCanvas(4, 1)
	s := c.addStyle(lipgloss.NewStyle().Bold(true))
	if s != 1 {
		t.Fatalf("first style index = %d, want 1", s)
	}
	c.set(1, 0, 'a', s)
	c.set(2, 0, 'b', s)
	if c.at(1, 0) != 'a' || c.style[2] != s {
		t.Error("cells not set")
	}
	if !strings.Contains(c.String(), "ab") {
		t.Errorf("styled run split: %q", c.String())
	}
}

func TestDrawFrame(t *testing.T) {
	p := geometry.Recompute(480, 320)
	f := render.Frame{
		Params: p,
		Cards: []render.CardView{{
			ID:    "a",
			Rect:  geometry.Rect{X: 16, Y: 16, W: 160, H: 64},
			Title: "Hello orbit",
			Date:  "Jan 1, 2024",
		}},
	}
	out := drawFrame(f, 60, 20, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("lines = %d, want 20", len(lines))
	}
	for _, want := range []string{"Hello orbit", "Jan 1, 2024", "╭", "░"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}
