// Package styles holds the visual parameters of a card: its pastel color
// pair, float path, rotations and animation delay, plus the text helpers
// the sinks share.
//
// Appearances are drawn from a [Palette], which wraps a seeded random
// source so the same seed gives the same colors and motion:
//
//	pal := styles.NewPalette(42)
//	a := pal.Next()
//	a.Background.Hex() // "#b3e6ff"-style pastel
package styles
