package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFrame(), WithJSONSeed(42))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 1200 || out.Height != 800 {
		t.Errorf("size = %vx%v, want 1200x800", out.Width, out.Height)
	}
	if out.Seed != 42 {
		t.Errorf("Seed = %d, want 42", out.Seed)
	}
	if out.Avatar.X != 600 || out.Avatar.Y != 400 {
		t.Errorf("Avatar = %+v", out.Avatar)
	}
	if len(out.Cards) != 2 {
		t.Fatalf("Cards count = %d, want 2", len(out.Cards))
	}
	c := out.Cards[0]
	if c.ID != "a" || c.X != 920 || c.Width != 200 || c.Link != "https://example.com/a.html" {
		t.Errorf("first card = %+v", c)
	}
	if len(c.Background) != 7 || c.Background[0] != '#' {
		t.Errorf("Background = %q, want hex color", c.Background)
	}
	if out.Exiting != nil {
		t.Error("exiting cards should be omitted by default")
	}
}

func TestRenderJSONWithExiting(t *testing.T) {
	data, err := RenderJSON(testFrame(), WithJSONExiting())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Exiting) != 1 || out.Exiting[0].ID != "c" {
		t.Errorf("Exiting = %+v, want card c", out.Exiting)
	}
}
