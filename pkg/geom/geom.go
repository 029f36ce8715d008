// Package geom is the planar polygon kernel for building envelope
// geometry. It provides 2D and 3D polygon value types with area, normal,
// centroid, coplanarity, point containment and winding operations used by
// the block builder and the surface intersection engine.
package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
)

// Shared numeric tolerances. Every distance, angle and area comparison in
// the engine goes through these constants so that a borderline case passes
// or fails identically at every comparison site.
const (
	// Eps is the coordinate and plane-distance tolerance.
	Eps = 1e-8
	// AngleEps bounds 1-|cos| when testing normals for parallelism.
	AngleEps = 1e-8
	// AreaEps is the smallest overlap area treated as a real overlap.
	AreaEps = 1e-6
)

// ErrDegeneratePolygon reports malformed input geometry: fewer than three
// distinct vertices, or zero enclosed area. It indicates a caller bug and
// is fatal to the current operation; retrying with the same input is
// meaningless.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Polygon3 is a closed planar polygon in 3-space. The last vertex connects
// implicitly back to the first. Polygons are value types; operations
// return new polygons and never mutate the receiver.
type Polygon3 []v3.Vec

// Polygon2 is a closed polygon in a 2D working plane, produced by
// projecting a Polygon3 through a clip.Frame.
type Polygon2 []v2.Vec
