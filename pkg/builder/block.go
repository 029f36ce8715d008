// Package builder generates zoned 3D building envelopes from 2D footprint
// outlines plus height and storey parameters. Each storey becomes one
// zone with floor, ceiling (or roof) and wall surfaces, wound so that
// exterior faces point outward.
package builder

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/masonry/pkg/geom"
)

// Zoning selects how a block is partitioned into zones.
type Zoning int

// ZoneByStorey maps each storey to one zone. It is the only mode.
const ZoneByStorey Zoning = iota

// Block describes a building block to generate: a footprint outline
// extruded to a height and partitioned into storeys. Blocks are transient
// input, never persisted.
type Block struct {
	Name    string
	Outline []v2.Vec // footprint vertices, (x, y); no self-intersections
	Height  float64  // roof height above ground level

	NumStories              int     // above-ground storeys, >= 1
	BelowGroundStories      int     // basement storeys, >= 0
	BelowGroundStoreyHeight float64 // height of each basement storey

	Zoning Zoning
}

// outline returns the footprint vertices with a closing duplicate of the
// first point dropped if present.
func (b Block) outline() []v2.Vec {
	pts := b.Outline
	if len(pts) > 1 {
		first, last := pts[0], pts[len(pts)-1]
		if (v2.Vec{X: first.X - last.X, Y: first.Y - last.Y}).Length() < geom.Eps {
			pts = pts[:len(pts)-1]
		}
	}
	return pts
}

// Footprint returns the ground-level outline as a 3D polygon at z=0,
// wound counter-clockwise seen from above.
func (b Block) Footprint() geom.Polygon3 {
	pts := b.outline()
	p := make(geom.Polygon3, len(pts))
	for i, pt := range pts {
		p[i] = v3.Vec{X: pt.X, Y: pt.Y}
	}
	if p.PointsDown() {
		p = p.Invert()
	}
	return p
}

// StoreyHeight returns the height of one above-ground storey: the block
// height split evenly across the above-ground storeys.
func (b Block) StoreyHeight() float64 {
	return b.Height / float64(b.NumStories)
}

// LowestFloorLevel returns the floor elevation of the deepest basement
// storey.
func (b Block) LowestFloorLevel() float64 {
	return -float64(b.BelowGroundStories) * b.BelowGroundStoreyHeight
}

// Storeys returns the storey indices of the block from the deepest
// basement up. Ground floor is storey 0.
func (b Block) Storeys() []int {
	out := make([]int, 0, b.BelowGroundStories+b.NumStories)
	for i := -b.BelowGroundStories; i < b.NumStories; i++ {
		out = append(out, i)
	}
	return out
}

// FloorElevation returns a storey's floor elevation. Basement storeys are
// spaced by the basement storey height, above-ground storeys by the
// above-ground storey height.
func (b Block) FloorElevation(storey int) float64 {
	if storey < 0 {
		return float64(storey) * b.BelowGroundStoreyHeight
	}
	return float64(storey) * b.StoreyHeight()
}

// CeilingElevation returns a storey's ceiling elevation.
func (b Block) CeilingElevation(storey int) float64 {
	return b.FloorElevation(storey + 1)
}

// FloorHeights lists the floor elevation of every storey, lowest first.
func (b Block) FloorHeights() []float64 {
	storeys := b.Storeys()
	out := make([]float64, len(storeys))
	for i, s := range storeys {
		out[i] = b.FloorElevation(s)
	}
	return out
}

// CeilingHeights lists the ceiling elevation of every storey, lowest
// first.
func (b Block) CeilingHeights() []float64 {
	storeys := b.Storeys()
	out := make([]float64, len(storeys))
	for i, s := range storeys {
		out[i] = b.CeilingElevation(s)
	}
	return out
}
