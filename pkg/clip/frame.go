// Package clip maps 3D planar polygons into a 2D working plane and
// performs boolean set operations there, delegating the clipping itself to
// polyclip-go (a Vatti implementation, so concave footprint outlines are
// handled).
package clip

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/masonry/pkg/geom"
)

var (
	xAxis = v3.Vec{X: 1}
	zAxis = v3.Vec{Z: 1}
)

// Frame is an orthonormal coordinate frame for a plane: an origin and two
// in-plane axes U, V plus the plane normal. Frames are scratch values,
// recomputed whenever needed and never persisted.
type Frame struct {
	Origin v3.Vec
	U      v3.Vec
	V      v3.Vec
	Normal v3.Vec
}

// NewFrame derives the working frame for the polygon's plane. The frame
// depends only on the plane itself, never on the vertex list: the normal
// is canonicalized to one of the two plane orientations, the origin is the
// plane's closest point to the world origin, and U is horizontal (global
// Z crossed with the normal) unless the plane is horizontal, in which case
// U is global X. Two coplanar polygons therefore always derive the exact
// same frame, even when their windings face opposite ways.
func NewFrame(p geom.Polygon3) (Frame, error) {
	n := p.Normal()
	if n.Length() < 0.5 {
		return Frame{}, errors.Wrap(geom.ErrDegeneratePolygon, "clip: no plane normal")
	}
	n = canonicalNormal(n)

	var u v3.Vec
	if 1-math.Abs(n.Z) < geom.AngleEps {
		u = xAxis
	} else {
		u = zAxis.Cross(n).Normalize()
	}
	v := n.Cross(u)
	d := n.Dot(p[0])
	return Frame{Origin: n.MulScalar(d), U: u, V: v, Normal: n}, nil
}

// canonicalNormal picks one of the two opposite plane orientations
// deterministically: positive Z wins, then positive X, then positive Y.
func canonicalNormal(n v3.Vec) v3.Vec {
	switch {
	case n.Z > geom.Eps:
		return n
	case n.Z < -geom.Eps:
		return n.MulScalar(-1)
	case n.X > geom.Eps:
		return n
	case n.X < -geom.Eps:
		return n.MulScalar(-1)
	case n.Y < 0:
		return n.MulScalar(-1)
	}
	return n
}

// Project maps the polygon into the frame's 2D plane coordinates.
func (f Frame) Project(p geom.Polygon3) geom.Polygon2 {
	out := make(geom.Polygon2, len(p))
	for i, vtx := range p {
		r := vtx.Sub(f.Origin)
		out[i] = v2.Vec{X: r.Dot(f.U), Y: r.Dot(f.V)}
	}
	return out
}

// Unproject maps 2D plane coordinates back into 3-space. For points that
// were produced by Project on the same frame the round trip is exact
// within geom.Eps.
func (f Frame) Unproject(p geom.Polygon2) geom.Polygon3 {
	out := make(geom.Polygon3, len(p))
	for i, pt := range p {
		out[i] = f.Origin.Add(f.U.MulScalar(pt.X)).Add(f.V.MulScalar(pt.Y))
	}
	return out
}
