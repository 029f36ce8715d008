// Package intersect reconciles surface topology across zones. The engine
// splits mutually overlapping coplanar surfaces into matching pieces, and
// the matcher pairs the coincident pieces up and finalizes each surface's
// boundary condition.
package intersect

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"github.com/chazu/masonry/pkg/clip"
	"github.com/chazu/masonry/pkg/geom"
	"github.com/chazu/masonry/pkg/model"
)

// maxPasses caps the fixed-point iteration. Every pass either splits a
// surface or terminates the loop, so the cap can only bite on pathological
// (self-intersecting) footprints, which are undefined input.
const maxPasses = 16

// ErrMultipleMatchCandidates reports three or more mutually coincident
// surfaces after intersection. That is a modeling error the caller must
// resolve; the matcher never picks a partner arbitrarily.
var ErrMultipleMatchCandidates = errors.New("multiple match candidates")

// entry is a surface snapshotted for one pass, indexed in the R-tree by
// its padded 3D bounding box.
type entry struct {
	surface model.Surface
	poly    geom.Polygon3
	rect    rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// snapshot collects all surfaces in deterministic (name-sorted) order and
// builds the spatial index over them.
func snapshot(store model.Store) ([]*entry, *rtreego.Rtree, error) {
	var entries []*entry
	for _, obj := range store.ObjectsOf(model.TypeSurface) {
		s := model.AsSurface(obj)
		poly := s.Vertices()
		if len(poly) < 3 {
			continue
		}
		rect, err := boundsOf(poly)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "intersect: surface %q bounds", s.Name())
		}
		entries = append(entries, &entry{surface: s, poly: poly, rect: rect})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].surface.Name() < entries[j].surface.Name()
	})
	tree := rtreego.NewTree(3, 2, 8)
	for _, e := range entries {
		tree.Insert(e)
	}
	return entries, tree, nil
}

// boundsOf returns the surface's axis-aligned box, padded so planar
// surfaces get a positive extent on every axis and abutting boxes
// register as overlapping.
func boundsOf(p geom.Polygon3) (rtreego.Rect, error) {
	min, max := p.MinMax()
	pad := geom.Eps
	return rtreego.NewRect(
		rtreego.Point{min.X - pad, min.Y - pad, min.Z - pad},
		[]float64{max.X - min.X + 2*pad, max.Y - min.Y + 2*pad, max.Z - min.Z + 2*pad},
	)
}

// candidates returns the entries whose boxes overlap e, excluding e
// itself and entries in e's own zone, in name order.
func candidates(tree *rtreego.Rtree, e *entry) []*entry {
	var out []*entry
	for _, hit := range tree.SearchIntersect(e.rect) {
		o := hit.(*entry)
		if o == e || o.surface.ZoneName() == e.surface.ZoneName() {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].surface.Name() < out[j].surface.Name()
	})
	return out
}

// IntersectAll splits every pair of overlapping coplanar surfaces in
// different zones into a shared overlap piece plus remainder pieces,
// replacing the originals in the model. It iterates to a fixed point so
// pieces produced by one split are themselves considered against the rest
// of the model; the final surface set does not depend on pair order.
// Running it again on the result is a no-op.
func IntersectAll(store model.Store) error {
	for pass := 0; pass < maxPasses; pass++ {
		splits, err := intersectPass(store)
		if err != nil {
			return err
		}
		if splits == 0 {
			return nil
		}
	}
	return errors.Errorf("intersect: no fixed point after %d passes", maxPasses)
}

// intersectPass scans an immutable snapshot for overlapping pairs, then
// commits all replacements as a batched create/delete against the store.
// A surface split in this pass takes part in no further pairs until the
// next pass sees its pieces.
func intersectPass(store model.Store) (int, error) {
	entries, tree, err := snapshot(store)
	if err != nil {
		return 0, err
	}

	type replacement struct {
		original *entry
		pieces   []geom.Polygon3
	}
	var repls []replacement
	consumed := make(map[string]bool)

	for _, a := range entries {
		if consumed[a.surface.Name()] {
			continue
		}
		for _, b := range candidates(tree, a) {
			if a.surface.Name() >= b.surface.Name() {
				continue // each unordered pair once
			}
			if consumed[a.surface.Name()] || consumed[b.surface.Name()] {
				continue
			}
			if !geom.IsCoplanar(a.poly, b.poly) {
				continue
			}

			aPieces, bPieces, err := splitPair(a.poly, b.poly)
			if err != nil {
				return 0, errors.Wrapf(err, "intersect: %q x %q", a.surface.Name(), b.surface.Name())
			}
			if aPieces != nil {
				repls = append(repls, replacement{original: a, pieces: aPieces})
				consumed[a.surface.Name()] = true
			}
			if bPieces != nil {
				repls = append(repls, replacement{original: b, pieces: bPieces})
				consumed[b.surface.Name()] = true
			}
		}
	}

	for _, r := range repls {
		commitReplacement(store, r.original, r.pieces)
	}
	return len(repls), nil
}

// splitPair computes the overlap of two coplanar polygons through one
// shared plane frame. For each side it returns the replacement pieces
// (overlap first, then remainders), or nil when that side needs no split:
// either there is no real overlap, or the side is already exactly the
// overlap. Both sides' overlap pieces come from the same projected
// polygon, so they coincide exactly, which the matcher requires.
func splitPair(a, b geom.Polygon3) (aPieces, bPieces []geom.Polygon3, err error) {
	frame, err := clip.NewFrame(a)
	if err != nil {
		return nil, nil, err
	}
	a2 := frame.Project(a)
	b2 := frame.Project(b)

	overlaps := clip.Intersect(a2, b2)
	if len(overlaps) == 0 {
		return nil, nil, nil
	}

	aPieces = splitSide(frame, a, a2, overlaps)
	bPieces = splitSide(frame, b, b2, overlaps)
	return aPieces, bPieces, nil
}

// splitSide assembles one side's replacement set: every overlap piece plus
// the side's remainder pieces. Returns nil when the surface already
// coincides with the single overlap, since replacing it would only churn
// names.
func splitSide(frame clip.Frame, orig geom.Polygon3, orig2 geom.Polygon2, overlaps []geom.Polygon2) []geom.Polygon3 {
	remainders := []geom.Polygon2{orig2}
	for _, ov := range overlaps {
		var next []geom.Polygon2
		for _, r := range remainders {
			next = append(next, clip.Difference(r, ov)...)
		}
		remainders = next
	}
	if len(remainders) == 0 && len(overlaps) == 1 {
		// Whole surface is the overlap: no split needed.
		return nil
	}
	pieces := make([]geom.Polygon2, 0, len(overlaps)+len(remainders))
	pieces = append(pieces, overlaps...)
	pieces = append(pieces, remainders...)
	orientation := orig.Normal()
	out := make([]geom.Polygon3, 0, len(pieces))
	for _, p := range pieces {
		p3 := frame.Unproject(p)
		if p3.Normal().Dot(orientation) < 0 {
			p3 = p3.Invert()
		}
		out = append(out, p3)
	}
	return out
}

// commitReplacement replaces a surface with its pieces, carrying over the
// zone, type tag and current boundary classification. Piece names derive
// from the original name, so they stay unique model-wide.
func commitReplacement(store model.Store, e *entry, pieces []geom.Polygon3) {
	orig := e.surface
	for i, poly := range pieces {
		s := model.AsSurface(store.New(model.TypeSurface, fmt.Sprintf("%s_%d", orig.Name(), i+1)))
		s.SetZoneName(orig.ZoneName())
		s.SetSurfaceType(orig.SurfaceType())
		s.SetVertices(poly)
		s.Set(model.FieldOutsideBC, orig.BoundaryCondition())
		s.Set(model.FieldOutsideBCObject, orig.PartnerName())
		s.Set(model.FieldSunExposure, orig.Get(model.FieldSunExposure))
		s.Set(model.FieldWindExposure, orig.Get(model.FieldWindExposure))
	}
	store.Remove(orig.Object)
}

// IntersectMatch runs IntersectAll then MatchAll. If matching fails, the
// intersection's splits remain applied; they are not rolled back.
func IntersectMatch(store model.Store) error {
	if err := IntersectAll(store); err != nil {
		return err
	}
	return MatchAll(store)
}
