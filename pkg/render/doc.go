// Package render turns the card set into something to look at.
//
// # Overview
//
// The core packages only produce geometry. This package bridges them to
// output formats:
//
//   - [Stage] is a [cards.Presenter] that keeps a renderable [Frame]:
//     every live card with its colors, text and link, plus cards that are
//     still playing their exit animation
//   - [ToPDF] and [ToPNG] convert SVG to other formats using the external
//     rsvg-convert tool (from librsvg)
//
// Output formats live in the [sink] subpackage and card colors and motion
// in [styles].
//
//	stage := render.NewStage(seed, render.WithOrigin("https://example.com"))
//	ctrl := scene.New(cfg, scene.WithPresenter(stage))
//	ctrl.Load(ctx, 1200, 800, list)
//	svg := sink.RenderSVG(stage.Frame())
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [cards.Presenter]: github.com/matzehuels/orbitcards/pkg/cards#Presenter
// [sink]: github.com/matzehuels/orbitcards/pkg/render/sink
// [styles]: github.com/matzehuels/orbitcards/pkg/render/styles
package render
