package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
)

// Normal returns the unit normal of the polygon's plane computed with
// Newell's method. Unlike a three-vertex cross product, Newell's sum gives
// the area-weighted orientation, so a reflex first corner on a concave
// footprint cannot flip the result. Returns the zero vector for degenerate
// input.
func (p Polygon3) Normal() v3.Vec {
	var n v3.Vec
	for i, a := range p {
		b := p[(i+1)%len(p)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	l := n.Length()
	if l < Eps {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// Area returns the enclosed area. The magnitude of the Newell vector is
// twice the polygon area regardless of winding.
func (p Polygon3) Area() float64 {
	var sum v3.Vec
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum = sum.Add(a.Cross(b))
	}
	return sum.Length() / 2
}

// Centroid returns the mean of the polygon's vertices.
func (p Polygon3) Centroid() v3.Vec {
	var c v3.Vec
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = c.Add(v)
	}
	return c.MulScalar(1 / float64(len(p)))
}

// Translate returns a copy of the polygon moved by d.
func (p Polygon3) Translate(d v3.Vec) Polygon3 {
	out := make(Polygon3, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Invert returns a copy with reversed vertex order, flipping the winding
// and therefore the normal.
func (p Polygon3) Invert() Polygon3 {
	out := make(Polygon3, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// PointsUp reports whether the polygon normal has a positive vertical
// component.
func (p Polygon3) PointsUp() bool {
	return p.Normal().Z > Eps
}

// PointsDown reports whether the polygon normal has a negative vertical
// component.
func (p Polygon3) PointsDown() bool {
	return p.Normal().Z < -Eps
}

// OrderClockwise returns a copy wound clockwise as seen from the given
// viewpoint, i.e. with the normal pointing away from the viewer.
func (p Polygon3) OrderClockwise(viewpoint v3.Vec) Polygon3 {
	if p.Normal().Dot(viewpoint.Sub(p.Centroid())) > 0 {
		return p.Invert()
	}
	out := make(Polygon3, len(p))
	copy(out, p)
	return out
}

// Edges returns the directed edges of the polygon, including the closing
// edge from the last vertex back to the first.
func (p Polygon3) Edges() [][2]v3.Vec {
	edges := make([][2]v3.Vec, 0, len(p))
	for i, a := range p {
		edges = append(edges, [2]v3.Vec{a, p[(i+1)%len(p)]})
	}
	return edges
}

// MinMax returns the axis-aligned bounding box corners of the polygon.
func (p Polygon3) MinMax() (min, max v3.Vec) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// Validate checks that the polygon has at least three distinct vertices
// and encloses a non-zero area. Failure means the input is malformed at
// the caller.
func (p Polygon3) Validate() error {
	distinct := 0
	for i, v := range p {
		dup := false
		for _, w := range p[:i] {
			if v.Sub(w).Length() < Eps {
				dup = true
				break
			}
		}
		if !dup {
			distinct++
		}
	}
	if distinct < 3 {
		return errors.Wrapf(ErrDegeneratePolygon, "%d distinct vertices", distinct)
	}
	if p.Area() < AreaEps {
		return errors.Wrap(ErrDegeneratePolygon, "zero area")
	}
	return nil
}

// IsCoplanar reports whether b lies in a's plane. Anti-parallel normals
// count as coplanar: two surfaces facing each other across the same plane
// are what the intersection engine is looking for.
func IsCoplanar(a, b Polygon3) bool {
	na, nb := a.Normal(), b.Normal()
	if na.Length() < 0.5 || nb.Length() < 0.5 {
		return false
	}
	if 1-math.Abs(na.Dot(nb)) > AngleEps {
		return false
	}
	d := na.Dot(a[0])
	for _, v := range b {
		if math.Abs(na.Dot(v)-d) > Eps {
			return false
		}
	}
	return true
}

// EqualWithin reports whether the two polygons trace the same closed ring
// within tolerance, regardless of start vertex or winding direction.
func (p Polygon3) EqualWithin(q Polygon3, tol float64) bool {
	if len(p) != len(q) || len(p) == 0 {
		return false
	}
	if matchFrom(p, q, tol) {
		return true
	}
	return matchFrom(p, q.Invert(), tol)
}

// matchFrom tries every cyclic rotation of q against p.
func matchFrom(p, q Polygon3, tol float64) bool {
	n := len(p)
	for off := 0; off < n; off++ {
		ok := true
		for i := 0; i < n; i++ {
			if p[i].Sub(q[(i+off)%n]).Length() > tol {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Canonical returns a copy rotated to start at the lexicographically
// smallest vertex, wound so the second vertex is the smaller of the two
// neighbours. Geometrically identical polygons with different start vertex
// or direction canonicalize to the same vertex sequence.
func (p Polygon3) Canonical() Polygon3 {
	if len(p) < 2 {
		out := make(Polygon3, len(p))
		copy(out, p)
		return out
	}
	start := 0
	for i := range p {
		if lessVec(p[i], p[start]) {
			start = i
		}
	}
	n := len(p)
	fwd := p[(start+1)%n]
	bwd := p[(start-1+n)%n]
	out := make(Polygon3, n)
	if lessVec(bwd, fwd) {
		for i := 0; i < n; i++ {
			out[i] = p[(start-i+n*2)%n]
		}
	} else {
		for i := 0; i < n; i++ {
			out[i] = p[(start+i)%n]
		}
	}
	return out
}

func lessVec(a, b v3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
