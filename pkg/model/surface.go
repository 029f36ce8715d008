package model

import (
	"github.com/chazu/masonry/pkg/geom"
)

// Surface wraps a model object of TypeSurface with typed accessors for the
// fields the engine manipulates.
type Surface struct {
	Object
}

// AsSurface wraps a raw model object as a Surface.
func AsSurface(o Object) Surface {
	return Surface{Object: o}
}

// SurfaceType returns the wall/floor/ceiling/roof tag, or "" when unset.
func (s Surface) SurfaceType() string {
	return str(s.Get(FieldSurfaceType))
}

func (s Surface) SetSurfaceType(t string) {
	s.Set(FieldSurfaceType, t)
}

// ZoneName returns the name of the zone the surface belongs to.
func (s Surface) ZoneName() string {
	return str(s.Get(FieldZoneName))
}

func (s Surface) SetZoneName(zone string) {
	s.Set(FieldZoneName, zone)
}

// BoundaryCondition returns the outside boundary condition value.
func (s Surface) BoundaryCondition() string {
	return str(s.Get(FieldOutsideBC))
}

// PartnerName returns the name of the partner surface when the boundary
// condition is BCSurface, or "".
func (s Surface) PartnerName() string {
	return str(s.Get(FieldOutsideBCObject))
}

// Vertices returns the surface polygon, or nil when unset.
func (s Surface) Vertices() geom.Polygon3 {
	p, _ := s.Get(FieldVertices).(geom.Polygon3)
	return p
}

func (s Surface) SetVertices(p geom.Polygon3) {
	s.Set(FieldVertices, p)
}

// SetOutdoors marks the surface as exterior, exposed to sun and wind, with
// no partner.
func (s Surface) SetOutdoors() {
	s.Set(FieldOutsideBC, BCOutdoors)
	s.Set(FieldOutsideBCObject, "")
	s.Set(FieldSunExposure, SunExposed)
	s.Set(FieldWindExposure, WindExposed)
}

// SetGround marks the surface as ground-coupled with no partner.
func (s Surface) SetGround() {
	s.Set(FieldOutsideBC, BCGround)
	s.Set(FieldOutsideBCObject, "")
	s.Set(FieldSunExposure, NoSun)
	s.Set(FieldWindExposure, NoWind)
}

// SetPartner marks the surface as adjacent to the named partner surface.
// The partner reference is relational: a by-name lookup, not ownership.
func (s Surface) SetPartner(name string) {
	s.Set(FieldOutsideBC, BCSurface)
	s.Set(FieldOutsideBCObject, name)
	s.Set(FieldSunExposure, NoSun)
	s.Set(FieldWindExposure, NoWind)
}
