package builder

import (
	"fmt"
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/masonry/pkg/geom"
	"github.com/chazu/masonry/pkg/model"
	"github.com/chazu/masonry/pkg/model/memory"
)

func squareBlock(name string) Block {
	return Block{
		Name:       name,
		Outline:    []v2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Height:     10,
		NumStories: 1,
	}
}

func surfacesOf(t *testing.T, store model.Store, zone string) []model.Surface {
	t.Helper()
	var out []model.Surface
	for _, obj := range store.ObjectsOf(model.TypeSurface) {
		s := model.AsSurface(obj)
		if s.ZoneName() == zone {
			out = append(out, s)
		}
	}
	return out
}

func countByType(surfaces []model.Surface) map[string]int {
	counts := make(map[string]int)
	for _, s := range surfaces {
		counts[s.SurfaceType()]++
	}
	return counts
}

func TestSingleStoreyBlock(t *testing.T) {
	store := memory.New()
	if err := Build(store, squareBlock("Box")); err != nil {
		t.Fatal(err)
	}

	if store.Len(model.TypeZone) != 1 {
		t.Fatalf("zone count = %d, want 1", store.Len(model.TypeZone))
	}
	zone := model.AsZone(store.ObjectsOf(model.TypeZone)[0])
	if zone.Name() != "Box_Storey_0" {
		t.Errorf("zone name = %q", zone.Name())
	}
	if zone.Storey() != 0 || zone.BelowGround() {
		t.Errorf("storey = %d belowGround = %v", zone.Storey(), zone.BelowGround())
	}

	surfaces := surfacesOf(t, store, "Box_Storey_0")
	if len(surfaces) != 6 {
		t.Fatalf("surface count = %d, want 6", len(surfaces))
	}
	counts := countByType(surfaces)
	if counts[model.SurfaceFloor] != 1 || counts[model.SurfaceRoof] != 1 || counts[model.SurfaceWall] != 4 {
		t.Errorf("surface types = %v, want 1 floor, 1 roof, 4 walls", counts)
	}
	if counts[model.SurfaceCeiling] != 0 {
		t.Errorf("single storey block should have no plain ceiling, got %v", counts)
	}

	for _, s := range surfaces {
		switch s.SurfaceType() {
		case model.SurfaceFloor:
			if s.BoundaryCondition() != model.BCGround {
				t.Errorf("floor bc = %q, want Ground", s.BoundaryCondition())
			}
			if !s.Vertices().PointsDown() {
				t.Error("floor should be wound downward")
			}
		case model.SurfaceRoof:
			if s.BoundaryCondition() != model.BCOutdoors {
				t.Errorf("roof bc = %q, want Outdoors", s.BoundaryCondition())
			}
			if !s.Vertices().PointsUp() {
				t.Error("roof should be wound upward")
			}
		case model.SurfaceWall:
			if s.BoundaryCondition() != model.BCOutdoors {
				t.Errorf("wall %q bc = %q, want Outdoors", s.Name(), s.BoundaryCondition())
			}
			if math.Abs(s.Vertices().Area()-100) > geom.AreaEps {
				t.Errorf("wall %q area = %f, want 100", s.Name(), s.Vertices().Area())
			}
		}
	}
}

func TestWallsFaceOutward(t *testing.T) {
	store := memory.New()
	if err := Build(store, squareBlock("Box")); err != nil {
		t.Fatal(err)
	}
	center := v3.Vec{X: 5, Y: 5, Z: 5}
	for _, s := range surfacesOf(t, store, "Box_Storey_0") {
		if s.SurfaceType() != model.SurfaceWall {
			continue
		}
		poly := s.Vertices()
		away := poly.Centroid().Sub(center)
		if poly.Normal().Dot(away) <= 0 {
			t.Errorf("wall %q normal points inward", s.Name())
		}
	}
}

// Every edge of a storey's solid must be shared by exactly two surfaces
// with opposite winding: that is what makes the zone watertight.
func TestStoreySolidIsClosed(t *testing.T) {
	store := memory.New()
	b := Block{
		Name: "Concave",
		Outline: []v2.Vec{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4},
			{X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10},
		},
		Height:     6,
		NumStories: 2,
	}
	if err := Build(store, b); err != nil {
		t.Fatal(err)
	}

	key := func(v v3.Vec) string { return fmt.Sprintf("%.6f,%.6f,%.6f", v.X, v.Y, v.Z) }
	for _, zoneObj := range store.ObjectsOf(model.TypeZone) {
		directed := make(map[string]int)
		for _, s := range surfacesOf(t, store, zoneObj.Name()) {
			for _, e := range s.Vertices().Edges() {
				directed[key(e[0])+"->"+key(e[1])]++
			}
		}
		for edge, n := range directed {
			if n != 1 {
				t.Errorf("zone %s: directed edge %s appears %d times", zoneObj.Name(), edge, n)
			}
		}
		// Opposite winding: each directed edge's reverse must also appear.
		for _, s := range surfacesOf(t, store, zoneObj.Name()) {
			for _, e := range s.Vertices().Edges() {
				if directed[key(e[1])+"->"+key(e[0])] != 1 {
					t.Errorf("zone %s: edge %s has no opposite-winding partner", zoneObj.Name(), key(e[0]))
				}
			}
		}
	}
}

func TestBasementStoreys(t *testing.T) {
	store := memory.New()
	b := Block{
		Name:                    "Tower",
		Outline:                 []v2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Height:                  9,
		NumStories:              3,
		BelowGroundStories:      1,
		BelowGroundStoreyHeight: 2.5,
	}
	if err := Build(store, b); err != nil {
		t.Fatal(err)
	}

	if store.Len(model.TypeZone) != 4 {
		t.Fatalf("zone count = %d, want 4", store.Len(model.TypeZone))
	}
	wantZones := []string{"Tower_Storey_-1", "Tower_Storey_0", "Tower_Storey_1", "Tower_Storey_2"}
	for i, obj := range store.ObjectsOf(model.TypeZone) {
		if obj.Name() != wantZones[i] {
			t.Errorf("zone[%d] = %q, want %q", i, obj.Name(), wantZones[i])
		}
	}

	basement := model.AsZone(store.ObjectsOf(model.TypeZone)[0])
	if !basement.BelowGround() || basement.Storey() != -1 {
		t.Errorf("basement storey = %d belowGround = %v", basement.Storey(), basement.BelowGround())
	}
	for _, s := range surfacesOf(t, store, "Tower_Storey_-1") {
		if s.BoundaryCondition() != model.BCGround {
			t.Errorf("basement %s %q bc = %q, want Ground", s.SurfaceType(), s.Name(), s.BoundaryCondition())
		}
	}

	// Only the topmost storey carries a roof.
	for _, zone := range wantZones {
		counts := countByType(surfacesOf(t, store, zone))
		wantRoof, wantCeiling := 0, 1
		if zone == "Tower_Storey_2" {
			wantRoof, wantCeiling = 1, 0
		}
		if counts[model.SurfaceRoof] != wantRoof || counts[model.SurfaceCeiling] != wantCeiling {
			t.Errorf("zone %s surface types = %v", zone, counts)
		}
	}
}

func TestBlockElevations(t *testing.T) {
	b := Block{
		Name:                    "E",
		Outline:                 []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Height:                  9,
		NumStories:              3,
		BelowGroundStories:      2,
		BelowGroundStoreyHeight: 2.5,
	}
	if got := b.StoreyHeight(); math.Abs(got-3) > geom.Eps {
		t.Errorf("storey height = %f, want 3", got)
	}
	if got := b.LowestFloorLevel(); math.Abs(got+5) > geom.Eps {
		t.Errorf("lowest floor level = %f, want -5", got)
	}
	wantFloors := []float64{-5, -2.5, 0, 3, 6}
	for i, got := range b.FloorHeights() {
		if math.Abs(got-wantFloors[i]) > geom.Eps {
			t.Errorf("floor height[%d] = %f, want %f", i, got, wantFloors[i])
		}
	}
	wantCeilings := []float64{-2.5, 0, 3, 6, 9}
	for i, got := range b.CeilingHeights() {
		if math.Abs(got-wantCeilings[i]) > geom.Eps {
			t.Errorf("ceiling height[%d] = %f, want %f", i, got, wantCeilings[i])
		}
	}
}

func TestClosingPointDropped(t *testing.T) {
	b := squareBlock("C")
	b.Outline = append(b.Outline, b.Outline[0])
	foot := b.Footprint()
	if len(foot) != 4 {
		t.Fatalf("footprint vertex count = %d, want 4", len(foot))
	}
	store := memory.New()
	if err := Build(store, b); err != nil {
		t.Fatal(err)
	}
	if got := len(surfacesOf(t, store, "C_Storey_0")); got != 6 {
		t.Errorf("surface count = %d, want 6", got)
	}
}

func TestClockwiseOutlineNormalized(t *testing.T) {
	b := squareBlock("CW")
	// Reverse to clockwise; the footprint must still come out CCW.
	for i, j := 0, len(b.Outline)-1; i < j; i, j = i+1, j-1 {
		b.Outline[i], b.Outline[j] = b.Outline[j], b.Outline[i]
	}
	if !b.Footprint().PointsUp() {
		t.Error("footprint should normalize to counter-clockwise")
	}
}

func TestDegenerateOutline(t *testing.T) {
	cases := []struct {
		name    string
		outline []v2.Vec
	}{
		{"two points", []v2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{"collinear", []v2.Vec{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}},
		{"duplicates", []v2.Vec{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}},
	}
	for _, c := range cases {
		b := squareBlock("D")
		b.Outline = c.outline
		err := Build(memory.New(), b)
		if !errors.Is(err, geom.ErrDegeneratePolygon) {
			t.Errorf("%s: err = %v, want ErrDegeneratePolygon", c.name, err)
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	store := memory.New()
	b := squareBlock("P")
	b.NumStories = 0
	if err := Build(store, b); err == nil {
		t.Error("NumStories=0 should fail")
	}
	b = squareBlock("P2")
	b.Height = 0
	if err := Build(store, b); err == nil {
		t.Error("zero height should fail")
	}
	b = squareBlock("P3")
	b.BelowGroundStories = 1
	if err := Build(store, b); err == nil {
		t.Error("basement without storey height should fail")
	}
}
