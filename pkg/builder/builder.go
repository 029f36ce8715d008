package builder

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/chazu/masonry/pkg/geom"
	"github.com/chazu/masonry/pkg/model"
)

// Build generates the block's zones and surfaces into the store. One zone
// is created per storey, named <block>_Storey_<index>, each enclosing a
// watertight solid: a floor wound downward, a ceiling wound upward (the
// topmost tagged roof) and one outward-facing wall per outline edge.
// Surface names encode block, storey and surface index and are unique
// model-wide as long as block names are unique.
//
// Boundary conditions are set to an initial classification (Ground for
// surfaces entirely at or below grade, Outdoors otherwise); running the
// intersection engine and matcher afterwards refines them against
// neighbouring zones and blocks.
func Build(store model.Store, b Block) error {
	if b.NumStories < 1 {
		return errors.Errorf("builder: block %q: NumStories must be >= 1, got %d", b.Name, b.NumStories)
	}
	if b.BelowGroundStories < 0 {
		return errors.Errorf("builder: block %q: negative BelowGroundStories", b.Name)
	}
	if b.BelowGroundStories > 0 && b.BelowGroundStoreyHeight <= 0 {
		return errors.Errorf("builder: block %q: BelowGroundStoreyHeight must be positive", b.Name)
	}
	if b.Height <= 0 {
		return errors.Errorf("builder: block %q: Height must be positive", b.Name)
	}

	foot := b.Footprint()
	if err := foot.Validate(); err != nil {
		return errors.Wrapf(err, "builder: block %q outline", b.Name)
	}

	top := b.Storeys()[len(b.Storeys())-1]
	for _, storey := range b.Storeys() {
		buildStorey(store, b, foot, storey, storey == top)
	}
	return nil
}

func buildStorey(store model.Store, b Block, foot geom.Polygon3, storey int, topmost bool) {
	zoneName := fmt.Sprintf("%s_Storey_%d", b.Name, storey)
	zone := model.AsZone(store.New(model.TypeZone, zoneName))
	zone.SetStorey(storey)
	zone.SetBelowGround(storey < 0)

	fh := b.FloorElevation(storey)
	ch := b.CeilingElevation(storey)

	floor := foot.Translate(v3.Vec{Z: fh}).Invert() // wound downward
	addSurface(store, zoneName, fmt.Sprintf("%s_Floor", zoneName), model.SurfaceFloor, floor)

	kind := model.SurfaceCeiling
	if topmost {
		kind = model.SurfaceRoof
	}
	ceiling := foot.Translate(v3.Vec{Z: ch}) // wound upward
	addSurface(store, zoneName, fmt.Sprintf("%s_%s", zoneName, lo.Capitalize(kind)), kind, ceiling)

	walls := lo.Filter(makeWalls(foot, fh, ch), func(w geom.Polygon3, _ int) bool {
		return w.Area() > geom.AreaEps
	})
	for i, wall := range walls {
		addSurface(store, zoneName, fmt.Sprintf("%s_Wall_%d", zoneName, i), model.SurfaceWall, wall)
	}
}

// makeWalls builds one vertical rectangle per footprint edge, spanning
// floor to ceiling elevation. Zero-length edges produce zero-area walls
// which the caller filters out.
func makeWalls(foot geom.Polygon3, fh, ch float64) []geom.Polygon3 {
	var walls []geom.Polygon3
	for _, e := range foot.Edges() {
		walls = append(walls, makeWall(e[0], e[1], fh, ch))
	}
	return walls
}

// makeWall spans the edge p1->p2 vertically. With a counter-clockwise
// footprint the vertex order upper-left, lower-left, lower-right,
// upper-right yields an outward-facing normal.
func makeWall(p1, p2 v3.Vec, fh, ch float64) geom.Polygon3 {
	return geom.Polygon3{
		{X: p1.X, Y: p1.Y, Z: ch},
		{X: p1.X, Y: p1.Y, Z: fh},
		{X: p2.X, Y: p2.Y, Z: fh},
		{X: p2.X, Y: p2.Y, Z: ch},
	}
}

func addSurface(store model.Store, zoneName, name, kind string, poly geom.Polygon3) {
	s := model.AsSurface(store.New(model.TypeSurface, name))
	s.SetZoneName(zoneName)
	s.SetSurfaceType(kind)
	s.SetVertices(poly)
	_, max := poly.MinMax()
	if max.Z <= geom.Eps {
		s.SetGround()
	} else {
		s.SetOutdoors()
	}
}
