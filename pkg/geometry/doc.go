// Package geometry derives layout parameters from a viewport and evaluates
// candidate card rectangles against them.
//
// # Overview
//
// Cards float on two concentric elliptical bands around a central avatar.
// Every layout decision is made against a [Params] snapshot computed by
// [Recompute] (or [Constants.Recompute] for tuned constants) from the
// current viewport size:
//
//	p := geometry.Recompute(1200, 800)
//	p.CardWidth   // 200
//	p.CardHeight  // 150
//	p.Outer       // Ellipse{RX: 420, RY: 373.36}
//	p.AvatarBox() // 266.67px square centered on (600, 400)
//
// A Params value is immutable: recomputing on resize produces a new
// snapshot, so no caller ever observes a mix of old and new values.
//
// # Overlap Evaluation
//
// Three predicates decide whether a candidate rectangle may be placed:
//
//   - [OverlapRatio]: summed intersection area with placed rectangles,
//     relative to the candidate's own area.
//   - [OverlapsAvatar]: whether the candidate touches the avatar's bounding
//     square. The avatar is a circle but is treated as its bounding box.
//   - [IsValidPosition]: margin containment, overlap threshold and minimum
//     corner distance combined.
package geometry
