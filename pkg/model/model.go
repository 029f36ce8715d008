// Package model defines the capability interface through which the
// geometry engine reads and writes the external model-object collection.
// The engine never touches a model file; persistence belongs entirely to
// whatever implements Store. Implementations (memory) provide the object
// collection behind this interface, so the geometry core stays decoupled
// from the host object model.
package model

// Object types in the model collection.
const (
	TypeZone    = "Zone"
	TypeSurface = "BuildingSurface:Detailed"
)

// Field names used by the engine on zone and surface objects.
const (
	FieldSurfaceType     = "Surface_Type"
	FieldZoneName        = "Zone_Name"
	FieldOutsideBC       = "Outside_Boundary_Condition"
	FieldOutsideBCObject = "Outside_Boundary_Condition_Object"
	FieldSunExposure     = "Sun_Exposure"
	FieldWindExposure    = "Wind_Exposure"
	FieldVertices        = "Vertices"
	FieldStorey          = "Storey"
	FieldBelowGround     = "Below_Ground"
)

// Surface type tags. The topmost ceiling of a block is retagged as roof.
const (
	SurfaceWall    = "wall"
	SurfaceFloor   = "floor"
	SurfaceCeiling = "ceiling"
	SurfaceRoof    = "roof"
)

// Boundary condition values and the matching exposure settings.
const (
	BCOutdoors = "Outdoors"
	BCGround   = "Ground"
	BCSurface  = "Surface"

	SunExposed  = "SunExposed"
	NoSun       = "NoSun"
	WindExposed = "WindExposed"
	NoWind      = "NoWind"
)

// Object is a single named, typed model object with dynamic fields.
type Object interface {
	// Name returns the object's unique name within its type.
	Name() string
	// Type returns the object type key.
	Type() string
	// Get returns a field value, or nil if the field is unset.
	Get(field string) any
	// Set stores a field value.
	Set(field string, value any)
}

// Store is the keyed model-object collection. Iteration order is
// insertion order, which the engine relies on for determinism.
type Store interface {
	// New creates and registers an object of the given type and name.
	New(objType, name string) Object
	// Remove deletes the object from the collection.
	Remove(obj Object)
	// ObjectsOf returns all objects of the given type in insertion order.
	ObjectsOf(objType string) []Object
	// Len returns the number of objects of the given type.
	Len(objType string) int
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
