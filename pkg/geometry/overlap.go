package geometry

// OverlapRatio returns the summed intersection area of candidate with every
// rectangle in placed, divided by the candidate's area, capped at 1.
// A candidate with no area, or an empty placed set, yields 0.
func OverlapRatio(candidate Rect, placed []Rect) float64 {
	area := candidate.Area()
	if area <= 0 {
		return 0
	}
	var total float64
	for _, r := range placed {
		total += candidate.IntersectionArea(r)
	}
	return min(1, total/area)
}

// OverlapsAvatar reports whether candidate touches the avatar's bounding
// square. Touching edges count as overlap.
func OverlapsAvatar(candidate, avatar Rect) bool {
	return candidate.Touches(avatar)
}

// InBounds reports whether candidate lies inside the viewport minus the
// margin on all four sides.
func InBounds(candidate Rect, p Params) bool {
	return candidate.X >= p.Margin &&
		candidate.Y >= p.Margin &&
		candidate.Right() <= p.Width-p.Margin &&
		candidate.Bottom() <= p.Height-p.Margin
}

// IsValidPosition reports whether candidate may be placed among placed:
// it must be in bounds, overlap less than p.OverlapThreshold, and keep its
// top-left corner farther than min(W, H)*p.MinDistanceFactor from every
// placed rectangle's top-left corner.
func IsValidPosition(candidate Rect, placed []Rect, p Params) bool {
	if !InBounds(candidate, p) {
		return false
	}
	if OverlapRatio(candidate, placed) >= p.OverlapThreshold {
		return false
	}
	minDistance := min(candidate.W, candidate.H) * p.MinDistanceFactor
	for _, r := range placed {
		if Distance(candidate.Origin(), r.Origin()) <= minDistance {
			return false
		}
	}
	return true
}
