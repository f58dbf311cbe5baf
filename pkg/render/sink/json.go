package sink

import (
	"encoding/json"

	"github.com/matzehuels/orbitcards/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed    uint64
	exiting bool
}

// WithJSONSeed records the seed in the output, so the same scene can be
// regenerated.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONExiting includes cards that are still animating out.
func WithJSONExiting() JSONOption { return func(r *jsonRenderer) { r.exiting = true } }

type jsonOutput struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Seed       uint64     `json:"seed,omitempty"`
	CardWidth  float64    `json:"card_width"`
	CardHeight float64    `json:"card_height"`
	Avatar     jsonAvatar `json:"avatar"`
	Cards      []jsonCard `json:"cards"`
	Exiting    []jsonCard `json:"exiting,omitempty"`
}

type jsonAvatar struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

type jsonCard struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       string     `json:"date,omitempty"`
	Link       string     `json:"link,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Scale      float64    `json:"scale"`
	Background string     `json:"background"`
	Border     string     `json:"border"`
	Float      [6]float64 `json:"float"`
	Rotate     [3]float64 `json:"rotate"`
	Delay      float64    `json:"delay"`
}

// RenderJSON exports the frame as a pretty-printed JSON document: viewport,
// avatar, and every card's rectangle, text, link and appearance.
func RenderJSON(f render.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	center, size := f.Avatar()
	out := jsonOutput{
		Width:      f.Params.Width,
		Height:     f.Params.Height,
		Seed:       r.seed,
		CardWidth:  f.Params.CardWidth,
		CardHeight: f.Params.CardHeight,
		Avatar:     jsonAvatar{X: center.X, Y: center.Y, Size: size},
		Cards:      buildJSONCards(f.Cards),
	}
	if r.exiting && len(f.Exiting) > 0 {
		out.Exiting = buildJSONCards(f.Exiting)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCards(views []render.CardView) []jsonCard {
	out := make([]jsonCard, 0, len(views))
	for _, v := range views {
		out = append(out, jsonCard{
			ID:         v.ID,
			Title:      v.Title,
			Date:       v.Date,
			Link:       v.Link,
			X:          v.Rect.X,
			Y:          v.Rect.Y,
			Width:      v.Rect.W,
			Height:     v.Rect.H,
			Scale:      v.Scale,
			Background: v.Style.Background.Hex(),
			Border:     v.Style.Border.Hex(),
			Float:      v.Style.Float,
			Rotate:     v.Style.Rotate,
			Delay:      v.Style.Delay,
		})
	}
	return out
}
