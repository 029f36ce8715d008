package clip

import (
	polyclip "github.com/ctessum/polyclip-go"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/masonry/pkg/geom"
)

// Intersect returns the overlap of a and b, or nil when they do not
// overlap. A nil result is the common case and is not an error.
func Intersect(a, b geom.Polygon2) []geom.Polygon2 {
	if !bboxOverlap(a, b) {
		return nil
	}
	return construct(a, b, polyclip.INTERSECTION)
}

// Difference returns the remainder of a after removing its overlap with b.
// The remainder may be split into several pieces, for example around a
// hole punched through the middle of a.
func Difference(a, b geom.Polygon2) []geom.Polygon2 {
	if !bboxOverlap(a, b) {
		out := make(geom.Polygon2, len(a))
		copy(out, a)
		return []geom.Polygon2{out}
	}
	return construct(a, b, polyclip.DIFFERENCE)
}

// Union returns the combined area of a and b.
func Union(a, b geom.Polygon2) []geom.Polygon2 {
	return construct(a, b, polyclip.UNION)
}

func construct(a, b geom.Polygon2, op polyclip.Op) []geom.Polygon2 {
	res := toPolyclip(a).Construct(op, toPolyclip(b))
	var out []geom.Polygon2
	for _, contour := range res {
		p := fromPolyclip(contour)
		if p.Area() < geom.AreaEps {
			continue
		}
		out = append(out, p)
	}
	return out
}

// bboxOverlap is the coarse reject: polygons whose bounding boxes do not
// touch cannot overlap, and most candidate pairs fail right here.
func bboxOverlap(a, b geom.Polygon2) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	amin, amax := a.MinMax()
	bmin, bmax := b.MinMax()
	return amin.X <= bmax.X+geom.Eps && bmin.X <= amax.X+geom.Eps &&
		amin.Y <= bmax.Y+geom.Eps && bmin.Y <= amax.Y+geom.Eps
}

func toPolyclip(p geom.Polygon2) polyclip.Polygon {
	c := make(polyclip.Contour, len(p))
	for i, v := range p {
		c[i] = polyclip.Point{X: v.X, Y: v.Y}
	}
	return polyclip.Polygon{c}
}

func fromPolyclip(c polyclip.Contour) geom.Polygon2 {
	p := make(geom.Polygon2, len(c))
	for i, pt := range c {
		p[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	return p
}
