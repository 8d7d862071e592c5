package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func colorNear(a, b core.Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps && math.Abs(a.B-b.B) <= eps
}

// solidBackground returns the same color in every direction
type solidBackground core.Color

func (s solidBackground) Color(core.Vec3) core.Color { return core.Color(s) }

func TestCastRay_DepthZeroIsBlack(t *testing.T) {
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Ivory())},
		Background: solidBackground(core.White),
	}

	for _, depth := range []int{0, -1} {
		got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, depth)
		if got != core.Black {
			t.Errorf("depth %d: got %v, want black", depth, got)
		}
	}
}

func TestCastRay_MissReturnsBackground(t *testing.T) {
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Ivory())},
		Background: NewGradientSky(core.White, core.Black),
	}

	got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0), world, 3)
	if !colorNear(got, core.White, 1e-12) {
		t.Errorf("got %v, want sky top", got)
	}

	// A nil background falls back to the default gradient
	world.Background = nil
	got = CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0), world, 3)
	if !colorNear(got, core.NewColor(0.5, 0.7, 1.0), 1e-12) {
		t.Errorf("default background = %v", got)
	}
}

func TestCastRay_LocalPhong(t *testing.T) {
	// Eye, hit point and light all on the +Z axis: diffuse and specular
	// terms are both exactly 1
	mat := material.New(core.NewColor(0.5, 0.5, 0.5), 10, [4]float64{0.6, 0.3, 0, 0}, 1, 0)
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat)},
		Lights:     []lights.Light{lights.NewLight(core.NewVec3(0, 0, 10), core.White, 1)},
		Background: solidBackground(core.Black),
	}

	// ambient 0.05 + diffuse 0.5*0.6 + specular 0.3
	expected := core.NewColor(0.65, 0.65, 0.65)

	for _, depth := range []int{1, 2, 3} {
		got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, depth)
		if !colorNear(got, expected, 1e-9) {
			t.Errorf("depth %d: got %v, want %v", depth, got, expected)
		}
	}
}

func TestCastRay_LitSphereBrighterThanAmbient(t *testing.T) {
	// Unit sphere at the origin seen from (0,0,5), lit from 5 units above
	// the eye so the front of the sphere faces the light
	mat := material.New(core.NewColor(0.4, 0.4, 0.3), 10, [4]float64{0.9, 0, 0, 0}, 1, 0)
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat)},
		Lights:     []lights.Light{lights.NewLight(core.NewVec3(0, 5, 5), core.White, 1)},
		Background: solidBackground(core.Black),
	}
	origin := core.NewVec3(0, 0, 5)
	direction := core.NewVec3(0, 0, -1)

	hit, _ := world.NearestHit(origin, direction)
	if !hit.Hit {
		t.Fatal("Expected the sphere to be hit")
	}
	if math.Abs(hit.Distance-4) > 1e-5 {
		t.Errorf("Distance = %f, want 4", hit.Distance)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Normal = %v, want (0,0,1)", hit.Normal)
	}
	if shadow := shadowIntensity(hit, world.Lights[0], world.Objects); shadow != 0 {
		t.Errorf("light is unobstructed but shadow = %f", shadow)
	}

	ambient := mat.Diffuse.Multiply(AmbientFactor)
	got := CastRay(origin, direction, world, 3)
	if got.R <= ambient.R || got.G <= ambient.G || got.B <= ambient.B {
		t.Errorf("lit color %v is not brighter than ambient %v", got, ambient)
	}

	// cos = 4/sqrt(41) between the normal and the light direction
	expected := ambient.Add(mat.Diffuse.Multiply(0.9 * 4 / math.Sqrt(41)))
	if !colorNear(got, expected, 1e-9) {
		t.Errorf("got %v, want ambient+diffuse %v", got, expected)
	}
}

func TestCastRay_AmbientOnlyWithoutLights(t *testing.T) {
	mat := material.New(core.NewColor(0.4, 0.2, 0.8), 10, [4]float64{1, 0, 0, 0}, 1, 0)
	world := &World{
		Objects: []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat)},
	}

	got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, 3)
	if !colorNear(got, mat.Diffuse.Multiply(AmbientFactor), 1e-12) {
		t.Errorf("got %v, want ambient %v", got, mat.Diffuse.Multiply(AmbientFactor))
	}
}

func TestCastRay_NearestObjectWins(t *testing.T) {
	near := material.New(core.NewColor(1, 0, 0), 10, [4]float64{1, 0, 0, 0}, 1, 0)
	far := material.New(core.NewColor(0, 0, 1), 10, [4]float64{1, 0, 0, 0}, 1, 0)
	world := &World{
		Objects: []geometry.Object{
			geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far),
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, near),
		},
	}

	got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, 3)
	if !colorNear(got, core.NewColor(0.1, 0, 0), 1e-12) {
		t.Errorf("got %v, want the near sphere's ambient", got)
	}
}

func TestCastRay_UnnormalizedDirection(t *testing.T) {
	world := &World{
		Objects: []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Ivory())},
		Lights:  []lights.Light{lights.NewLight(core.NewVec3(-20, 20, 20), core.White, 1.5)},
	}

	unit := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0.1, 0.1, -1), world, 3)
	scaled := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0.3, 0.3, -3), world, 3)
	if !colorNear(unit, scaled, 1e-9) {
		t.Errorf("direction length changed the result: %v vs %v", unit, scaled)
	}
}

func TestCastRay_Mirror(t *testing.T) {
	mirror := material.New(core.Black, 1, [4]float64{0, 0, 1, 0}, 1, 0)
	background := core.NewColor(0.2, 0.4, 0.6)
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror)},
		Background: solidBackground(background),
	}

	tests := []struct {
		name     string
		depth    int
		expected core.Color
	}{
		{"reflection reaches the sky", 2, background},
		{"no budget left for the reflected ray", 1, core.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, tt.depth)
			if !colorNear(got, tt.expected, 1e-9) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCastRay_GlassAtNormalIncidence(t *testing.T) {
	glass := material.New(core.Black, 1, [4]float64{0, 0, 0, 1}, 1.5, 1)
	background := core.NewColor(0.2, 0.4, 0.6)
	world := &World{
		Objects:    []geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, 0), 1, glass)},
		Background: solidBackground(background),
	}

	// Straight through the center: two boundaries each passing 1 - 0.04
	got := CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, 3)
	want := background.Multiply(0.96 * 0.96)
	if !colorNear(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}

	// Depth 2 runs out before the exiting ray leaves the sphere
	got = CastRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), world, 2)
	if !colorNear(got, core.Black, 1e-12) {
		t.Errorf("depth 2: got %v, want black", got)
	}
}

func TestShadowIntensity(t *testing.T) {
	hit := geometry.Intersect{
		Hit:    true,
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	light := lights.NewLight(core.NewVec3(0, 10, 0), core.White, 1)
	blocker := func(y float64) geometry.Object {
		return geometry.NewSphere(core.NewVec3(0, y, 0), 0.5, material.Rubber())
	}
	falloff := func(t float64) float64 {
		ratio := t / 10
		return 1 - ratio*ratio
	}

	tests := []struct {
		name     string
		objects  []geometry.Object
		expected float64
	}{
		{"no occluder", nil, 0},
		{"occluder halfway", []geometry.Object{blocker(5)}, falloff(4.5)},
		{"occluder beyond the light", []geometry.Object{blocker(12)}, 0},
		{"occluder beside the ray", []geometry.Object{geometry.NewSphere(core.NewVec3(3, 5, 0), 0.5, material.Rubber())}, 0},
		{"first occluder found wins", []geometry.Object{blocker(8), blocker(2)}, falloff(7.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shadowIntensity(hit, light, tt.objects)
			if math.Abs(got-tt.expected) > 1e-3 {
				t.Errorf("shadow = %f, want %f", got, tt.expected)
			}
		})
	}

	t.Run("occluder at the surface is nearly full shadow", func(t *testing.T) {
		got := shadowIntensity(hit, light, []geometry.Object{blocker(0.6)})
		if got < 0.99 || got > 1 {
			t.Errorf("shadow = %f, want close to 1", got)
		}
	})
}

func TestCastRay_ShadowDarkensSurface(t *testing.T) {
	floor := geometry.NewCubeFromCorners(core.NewVec3(-10, -1, -10), core.NewVec3(10, 0, 10), material.Rubber())
	light := lights.NewLight(core.NewVec3(0, 10, 0), core.White, 1)
	origin := core.NewVec3(0, 5, 5)
	direction := core.NewVec3(0, -5, -5)

	lit := CastRay(origin, direction, &World{Objects: []geometry.Object{floor}, Lights: []lights.Light{light}}, 3)

	blocker := geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5, material.Rubber())
	shadowed := CastRay(origin, direction, &World{Objects: []geometry.Object{floor, blocker}, Lights: []lights.Light{light}}, 3)

	if shadowed.Luminance() >= lit.Luminance() {
		t.Errorf("shadowed %v is not darker than lit %v", shadowed, lit)
	}
}

func TestRefract(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	incident := core.NewVec3(0.8, -0.6, 0)

	t.Run("entering bends toward the normal", func(t *testing.T) {
		got, ok := refract(incident, normal, 1/1.5)
		if !ok {
			t.Fatal("unexpected total internal reflection")
		}
		if got.X >= incident.X || got.Y >= 0 {
			t.Errorf("refracted direction %v does not bend toward -normal", got)
		}
		if math.Abs(got.Length()-1) > 1e-12 {
			t.Errorf("refracted direction not unit: %f", got.Length())
		}
		// Snell: sin_t = eta * sin_i
		if math.Abs(got.X-0.8/1.5) > 1e-12 {
			t.Errorf("sin_t = %f, want %f", got.X, 0.8/1.5)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		if _, ok := refract(incident, normal, 1.5); ok {
			t.Error("expected total internal reflection")
		}
	})

	t.Run("normal incidence passes straight", func(t *testing.T) {
		got, ok := refract(core.NewVec3(0, -1, 0), normal, 1/1.5)
		if !ok || !vecNear(got, core.NewVec3(0, -1, 0), 1e-12) {
			t.Errorf("got %v, %v", got, ok)
		}
	})
}

func TestFresnel(t *testing.T) {
	tests := []struct {
		name      string
		incident  core.Vec3
		normal    core.Vec3
		ior       float64
		expected  float64
		tolerance float64
	}{
		{"entering at normal incidence", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), 1.5, 0.04, 1e-12},
		{"exiting at normal incidence", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), 1.5, 0.04, 1e-12},
		{"exiting at an angle uses air to glass", core.NewVec3(0.6, 0, -0.8), core.NewVec3(0, 0, -1), 1.5, 0.043894736, 1e-8},
		{"past the inside critical angle is not total", core.NewVec3(0.8, 0.6, 0), core.NewVec3(0, 1, 0), 1.5, 0.064524971, 1e-8},
		{"grazing with matched index", core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 1, 1, 0},
		{"matched index", core.NewVec3(0.8, -0.6, 0), core.NewVec3(0, 1, 0), 1, 0, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fresnel(tt.incident, tt.normal, tt.ior)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("fresnel = %f, want %f", got, tt.expected)
			}
		})
	}

	t.Run("side of the normal does not matter", func(t *testing.T) {
		incident := core.NewVec3(0.6, 0, -0.8)
		entering := fresnel(incident, core.NewVec3(0, 0, 1), 1.5)
		exiting := fresnel(incident, core.NewVec3(0, 0, -1), 1.5)
		if entering != exiting {
			t.Errorf("entering %f != exiting %f", entering, exiting)
		}
	})

	t.Run("grazing angles reflect more", func(t *testing.T) {
		head := fresnel(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), 1.5)
		grazing := fresnel(core.NewVec3(0.99, -0.141, 0).Normalize(), core.NewVec3(0, 1, 0), 1.5)
		if grazing <= head {
			t.Errorf("grazing %f <= head-on %f", grazing, head)
		}
	})
}

func TestCastRay_SceneBoundsParity(t *testing.T) {
	objects := []geometry.Object{
		geometry.NewCube(core.NewVec3(-1.5, 0, -4), 1, material.Ivory()),
		geometry.NewSphere(core.NewVec3(1, 0.5, -3), 0.75, material.Glass()),
		geometry.NewCube(core.NewVec3(0, -1.5, -4), 2, material.Mirror()),
	}
	bounds := objects[0].BoundingBox()
	for _, object := range objects[1:] {
		bounds = bounds.Union(object.BoundingBox())
	}
	bounds = bounds.Expand(ShadowBias)

	lightList := []lights.Light{lights.NewLight(core.NewVec3(-3, 4, 1), core.White, 1.5)}
	bounded := &World{Objects: objects, Lights: lightList, Background: NewEclipseSky(), Bounds: &bounds}
	unbounded := &World{Objects: objects, Lights: lightList, Background: NewEclipseSky()}

	camera := NewCamera(core.NewVec3(0, 1, 4), core.NewVec3(0, 0, -4), core.NewVec3(0, 1, 0))
	escaped := 0
	for y := -10; y <= 10; y++ {
		for x := -10; x <= 10; x++ {
			dir := camera.BasisChange(core.NewVec3(float64(x)/10, float64(y)/10, -1))
			if bounded.escapesBounds(camera.Eye, dir) {
				escaped++
			}

			a := CastRay(camera.Eye, dir, bounded, 3)
			b := CastRay(camera.Eye, dir, unbounded, 3)
			if a != b {
				t.Fatalf("direction %v: bounded %v, unbounded %v", dir, a, b)
			}
		}
	}

	if escaped == 0 {
		t.Error("no ray took the fast path")
	}
}

func TestWorld_EscapesBounds(t *testing.T) {
	bounds := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	world := &World{Bounds: &bounds}

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  bool
	}{
		{"outside pointing away", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), true},
		{"outside pointing in", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), false},
		{"inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), false},
		{"outside passing by", core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := world.escapesBounds(tt.origin, tt.direction); got != tt.expected {
				t.Errorf("escapesBounds = %v, want %v", got, tt.expected)
			}
		})
	}

	if (&World{}).escapesBounds(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)) {
		t.Error("world without bounds must never take the fast path")
	}
}
