package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SignedArea returns the shoelace area of the polygon. The sign encodes
// winding: positive for counter-clockwise, negative for clockwise. The
// value is invariant under cyclic rotation of the vertex list and negates
// under reversal.
func (p Polygon2) SignedArea() float64 {
	var s float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// Area returns the absolute enclosed area.
func (p Polygon2) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the mean of the polygon's vertices.
func (p Polygon2) Centroid() v2.Vec {
	var c v2.Vec
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = c.Add(v)
	}
	return v2.Vec{X: c.X / float64(len(p)), Y: c.Y / float64(len(p))}
}

// Invert returns a copy with reversed vertex order.
func (p Polygon2) Invert() Polygon2 {
	out := make(Polygon2, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// MinMax returns the bounding box corners of the polygon.
func (p Polygon2) MinMax() (min, max v2.Vec) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Contains reports whether pt lies inside the polygon or within Eps of its
// boundary, using ray casting. Works for concave polygons.
func (p Polygon2) Contains(pt v2.Vec) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[j], p[i]
		if distPointSegment(pt, a, b) <= Eps {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// distPointSegment returns the distance from pt to the segment ab.
func distPointSegment(pt, a, b v2.Vec) float64 {
	ab := v2.Vec{X: b.X - a.X, Y: b.Y - a.Y}
	ap := v2.Vec{X: pt.X - a.X, Y: pt.Y - a.Y}
	den := ab.X*ab.X + ab.Y*ab.Y
	if den < Eps*Eps {
		return math.Hypot(ap.X, ap.Y)
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / den
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(pt.X-(a.X+t*ab.X), pt.Y-(a.Y+t*ab.Y))
}
