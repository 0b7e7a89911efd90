package geom

// Point is an absolute position, vertical component first as QuickDraw
// stores them.
type Point struct {
	V Fixed
	H Fixed
}

// Delta is a relative offset between two points. Unlike points, deltas
// form an additive group: they can be added to each other and negated.
type Delta struct {
	DV Fixed
	DH Fixed
}

// ZeroDelta is the additive identity.
var ZeroDelta = Delta{}

// Add returns the point offset by d.
func (p Point) Add(d Delta) Point {
	return Point{V: p.V + d.DV, H: p.H + d.DH}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Delta {
	return Delta{DV: p.V - q.V, DH: p.H - q.H}
}

// Add returns the combined offset d + e.
func (d Delta) Add(e Delta) Delta {
	return Delta{DV: d.DV + e.DV, DH: d.DH + e.DH}
}

// Neg returns the opposite offset.
func (d Delta) Neg() Delta {
	return Delta{DV: -d.DV, DH: -d.DH}
}

// Rect is a rectangle described by its top-left and bottom-right corners.
type Rect struct {
	TopLeft     Point
	BottomRight Point
}

// RectFromCorners builds a rectangle from two corner points.
func RectFromCorners(topLeft, bottomRight Point) Rect {
	return Rect{TopLeft: topLeft, BottomRight: bottomRight}
}

// RectFromDelta builds a rectangle from a top-left corner and dimensions.
func RectFromDelta(topLeft Point, dim Delta) Rect {
	return Rect{TopLeft: topLeft, BottomRight: topLeft.Add(dim)}
}

// Dimensions returns the rectangle's extent as a delta.
func (r Rect) Dimensions() Delta {
	return r.BottomRight.Sub(r.TopLeft)
}

// Width returns the rounded horizontal extent in pixels.
func (r Rect) Width() int {
	return r.Dimensions().DH.Round()
}

// Height returns the rounded vertical extent in pixels.
func (r Rect) Height() int {
	return r.Dimensions().DV.Round()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
