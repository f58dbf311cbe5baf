// Package pkg provides the core libraries for Orbitcards.
//
// # Overview
//
// Orbitcards scatters post cards around a central avatar: each card lands
// at a random point on one of two ellipses around the avatar, at a random
// scale, and is rejected if it leaves the viewport, covers the avatar or
// overlaps another card too much. A capped, first-in first-out set of cards
// is kept on screen, scrolling adds the next post from a cycling deck, and
// resizing re-lays out every card.
//
// # Architecture
//
// The data flow through Orbitcards:
//
//	Post list (JSON / YAML / TOML)
//	         ↓
//	    [posts] package (decode + normalize paths)
//	         ↓
//	    [scene] package (throttled scroll/resize/click)
//	         ↓
//	    [cards] package (deck, FIFO manager) → [placement] → [geometry]
//	         ↓
//	    [render] package (stage + sinks)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	cfg := config.Default()
//	cfg.Cards.Origin = "https://example.com"
//
//	stage := render.NewStage(cfg.Cards.Seed, render.WithOrigin(cfg.Cards.Origin))
//	ctrl := scene.New(cfg, scene.WithPresenter(stage))
//
//	list, _ := posts.Load("posts.json")
//	ctrl.Load(ctx, 1200, 800, list)
//	ctrl.Scroll(ctx)
//
//	svg := sink.RenderSVG(stage.Frame())
//
// # Main Packages
//
//   - [geometry]: viewport parameters, rectangles, overlap and validity checks
//   - [placement]: rejection-sampling position search
//   - [cards]: post deck and the capacity-bounded card manager
//   - [scene]: controller wiring throttled input to the manager, plus scripted replay
//   - [throttle]: leading-edge rate limiter
//   - [posts]: post list decoding and link resolution
//   - [render], [render/sink], [render/styles]: frame collection and output formats
//   - [config]: TOML configuration
//   - [observability]: placement, scene and render hooks
//   - [errors]: coded errors
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/geometry
// [placement]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/placement
// [cards]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/cards
// [scene]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/scene
// [throttle]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/throttle
// [posts]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/posts
// [render]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/render/styles
// [config]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/orbitcards/pkg/errors
package pkg
