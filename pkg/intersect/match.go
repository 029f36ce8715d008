package intersect

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/masonry/pkg/geom"
	"github.com/chazu/masonry/pkg/model"
)

// MatchAll pairs up coincident surfaces across zones and finalizes every
// surface's boundary condition. After intersection, true adjacencies are
// area-identical coplanar polygons; each such pair gets a symmetric
// Surface boundary condition referencing the other by name. A surface
// with no partner becomes Ground when it lies entirely at or below grade,
// Outdoors otherwise.
//
// Three or more mutually coincident surfaces are a modeling error and
// fail with ErrMultipleMatchCandidates.
func MatchAll(store model.Store) error {
	entries, tree, err := snapshot(store)
	if err != nil {
		return err
	}

	partner := make(map[string]string, len(entries))
	for _, a := range entries {
		for _, b := range candidates(tree, a) {
			if a.surface.Name() >= b.surface.Name() {
				continue
			}
			if !geom.IsCoplanar(a.poly, b.poly) {
				continue
			}
			if !a.poly.EqualWithin(b.poly, geom.Eps) {
				continue
			}
			if prev, ok := partner[a.surface.Name()]; ok && prev != b.surface.Name() {
				return errors.Wrapf(ErrMultipleMatchCandidates,
					"surface %q matches both %q and %q", a.surface.Name(), prev, b.surface.Name())
			}
			if prev, ok := partner[b.surface.Name()]; ok && prev != a.surface.Name() {
				return errors.Wrapf(ErrMultipleMatchCandidates,
					"surface %q matches both %q and %q", b.surface.Name(), prev, a.surface.Name())
			}
			partner[a.surface.Name()] = b.surface.Name()
			partner[b.surface.Name()] = a.surface.Name()
		}
	}

	matched, unmatched := lo.FilterReject(entries, func(e *entry, _ int) bool {
		_, ok := partner[e.surface.Name()]
		return ok
	})
	for _, e := range matched {
		e.surface.SetPartner(partner[e.surface.Name()])
	}
	for _, e := range unmatched {
		if belowGrade(e.poly) {
			e.surface.SetGround()
		} else {
			e.surface.SetOutdoors()
		}
	}
	return nil
}

// belowGrade reports whether the polygon lies entirely at or below ground
// elevation 0. One rule covers ground-touching floors and fully buried
// basement walls.
func belowGrade(p geom.Polygon3) bool {
	_, max := p.MinMax()
	return max.Z <= geom.Eps
}
