// Package placement finds positions for floating cards by bounded-retry
// rejection sampling on two elliptical bands.
//
// # Algorithm
//
// For up to [Options.MaxAttempts] tries, [Engine.FindPosition] draws three
// values from its random source, in this order:
//
//  1. an angle in [0, 2π)
//  2. a scale in [ScaleMin, ScaleMax]
//  3. a band: outer with probability OuterProbability, inner otherwise
//
// The candidate rectangle is centered on the band's perimeter point at that
// angle and accepted iff [geometry.IsValidPosition] holds against the placed
// rectangles and the candidate does not touch the avatar.
//
// The validity predicate has no closed-form inverse, so sampling is the
// simplest correct search; the attempt cap bounds the cost and lets a
// crowded layout degrade to "no card this round" instead of spinning.
//
// # Scale
//
// By default the candidate is validated at the unscaled w×h and the sampled
// scale is returned for the caller to apply afterwards, so a scaled-up card
// may slightly cross the margin or overlap limits it was checked against.
// Set [Options.ValidateAtScaledSize] to center and validate the candidate at
// its final size instead.
//
// # Example
//
//	eng := placement.NewSeeded(42, nil)
//	p := geometry.Recompute(1200, 800)
//	pos, err := eng.FindPosition(p.CardWidth, p.CardHeight, placed, p)
//	if errors.Is(err, placement.ErrExhausted) {
//	    // skip this card
//	}
//	rect := pos.Rect(p.CardWidth, p.CardHeight)
package placement
