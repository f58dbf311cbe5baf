package geometry

import (
	"math"
	"testing"
)

func TestRecomputeCardSize(t *testing.T) {
	sizes := [][2]float64{
		{1200, 800}, {1920, 1080}, {600, 900}, {320, 568}, {1, 1}, {1199.5, 10},
	}
	for _, s := range sizes {
		w, h := s[0], s[1]
		p := Recompute(w, h)
		wantW := math.Min(w/6, 200)
		if p.CardWidth != wantW {
			t.Errorf("Recompute(%v, %v).CardWidth = %v, want %v", w, h, p.CardWidth, wantW)
		}
		if p.CardHeight != 0.75*p.CardWidth {
			t.Errorf("Recompute(%v, %v).CardHeight = %v, want %v", w, h, p.CardHeight, 0.75*p.CardWidth)
		}
	}
}

func TestRecompute(t *testing.T) {
	p := Recompute(1200, 800)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"card width", p.CardWidth, 200},
		{"card height", p.CardHeight, 150},
		{"center x", p.Center.X, 600},
		{"center y", p.Center.Y, 400},
		{"outer rx", p.Outer.RX, 1200 * 0.35},
		{"outer ry", p.Outer.RY, 800 * 0.4667},
		{"inner rx", p.Inner.RX, 1200 * 0.25},
		{"inner ry", p.Inner.RY, 800 * 0.3333},
		{"avatar", p.AvatarSize, 800.0 / 3},
		{"margin", p.Margin, 20},
		{"overlap threshold", p.OverlapThreshold, 0.1},
		{"min distance factor", p.MinDistanceFactor, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRecomputeIsDeterministic(t *testing.T) {
	if Recompute(1024, 768) != Recompute(1024, 768) {
		t.Error("Recompute should be a pure function of the viewport size")
	}
}

func TestConstantsRecompute(t *testing.T) {
	c := DefaultConstants()
	c.MaxCardWidth = 120
	c.Margin = 5

	p := c.Recompute(1200, 800)
	if p.CardWidth != 120 {
		t.Errorf("CardWidth = %v, want 120", p.CardWidth)
	}
	if p.Margin != 5 {
		t.Errorf("Margin = %v, want 5", p.Margin)
	}
}

func TestAvatarBox(t *testing.T) {
	p := Recompute(900, 600)
	box := p.AvatarBox()

	if box.W != 200 || box.H != 200 {
		t.Errorf("AvatarBox size = %vx%v, want 200x200", box.W, box.H)
	}
	if c := box.Center(); c != p.Center {
		t.Errorf("AvatarBox center = %v, want %v", c, p.Center)
	}
}

func TestBounds(t *testing.T) {
	p := Recompute(1200, 800)
	want := Rect{X: 20, Y: 20, W: 1160, H: 760}
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
