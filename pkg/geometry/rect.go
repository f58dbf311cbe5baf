package geometry

import "math"

// Point is a position in viewport pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Scale returns r with its width and height multiplied by s.
// The top-left corner is kept in place.
func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W * s, H: r.H * s}
}

// CenteredAt returns a w×h rectangle whose center is c.
func CenteredAt(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// IntersectionArea returns the area shared by r and o, or 0 if they are
// disjoint. It is symmetric in its arguments.
func (r Rect) IntersectionArea(o Rect) float64 {
	dx := max(0, min(r.Right(), o.Right())-max(r.X, o.X))
	dy := max(0, min(r.Bottom(), o.Bottom())-max(r.Y, o.Y))
	return dx * dy
}

// Touches reports whether r and o intersect or share an edge.
func (r Rect) Touches(o Rect) bool {
	return !(r.Right() < o.X || r.X > o.Right() || r.Bottom() < o.Y || r.Y > o.Bottom())
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Ellipse is an axis-aligned ellipse described by its semi-axes.
type Ellipse struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// PointAt returns the point on the ellipse perimeter at angle (radians)
// when the ellipse is centered on c.
func (e Ellipse) PointAt(c Point, angle float64) Point {
	return Point{
		X: c.X + e.RX*math.Cos(angle),
		Y: c.Y + e.RY*math.Sin(angle),
	}
}
