// Package sink provides output format renderers for card scenes.
//
// # Overview
//
// A "sink" transforms a [render.Frame] into a final output format:
//
//   - SVG: the scene with CSS float animation and hover emphasis
//   - JSON: card geometry and appearance for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws the avatar circle and every card as a rounded pastel
// rectangle carrying its title and date, linked to its post. Each card
// gets its float offsets and rotations as CSS custom properties; hovering
// pauses the float, raises the card and adds a glow. Cards that are being
// evicted are drawn with the exit transition (slide down, fade).
//
//	svg := sink.RenderSVG(stage.Frame(),
//	    sink.WithAvatarImage("avatar.png"),
//	    sink.WithGuides(),
//	)
//
// # SVG Options
//
//   - [WithStatic]: Drop the animation CSS (for PNG/PDF snapshots)
//   - [WithAvatarImage]: Fill the avatar circle with an image
//   - [WithBackground]: Page background color
//   - [WithGuides]: Draw the placement bands and the margin box
//
// [render.Frame]: github.com/matzehuels/orbitcards/pkg/render#Frame
package sink
