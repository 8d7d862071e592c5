package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCube_RayIntersect_EntryFaces(t *testing.T) {
	// 2x2x2 cube centered at origin
	cube := NewCube(core.NewVec3(0, 0, 0), 2, material.Rubber())

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"front face", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 4, core.NewVec3(0, 0, 1)},
		{"back face", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 4, core.NewVec3(0, 0, -1)},
		{"right face", core.NewVec3(5, 0.3, 0), core.NewVec3(-1, 0, 0), 4, core.NewVec3(1, 0, 0)},
		{"left face", core.NewVec3(-5, 0, 0.3), core.NewVec3(1, 0, 0), 4, core.NewVec3(-1, 0, 0)},
		{"top face", core.NewVec3(0.2, 3, 0.2), core.NewVec3(0, -1, 0), 2, core.NewVec3(0, 1, 0)},
		{"bottom face", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), 2, core.NewVec3(0, -1, 0)},
		{"oblique into top", core.NewVec3(0, 3, 1.5), core.NewVec3(0, -2, -1).Normalize(), math.Sqrt(5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := cube.RayIntersect(tt.origin, tt.direction)
			if !hit.Hit {
				t.Fatal("Expected hit, but got miss")
			}
			if !approx(hit.Distance, tt.expectedT) {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.Distance)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			expectedPoint := tt.origin.Add(tt.direction.Multiply(hit.Distance))
			if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
				t.Errorf("Expected point %v, got %v", expectedPoint, hit.Point)
			}
		})
	}
}

func TestCube_RayIntersect_NormalIsSingleAxis(t *testing.T) {
	cube := NewCubeFromCorners(core.NewVec3(-1, -2, -3), core.NewVec3(2, 1, 0), material.Rubber())

	// Sweep rays from a ring of origins toward points inside the cube
	for i := 0; i < 64; i++ {
		angle := float64(i) / 64 * 2 * math.Pi
		origin := core.NewVec3(6*math.Cos(angle), 2*math.Sin(3*angle), 6*math.Sin(angle))
		target := core.NewVec3(0.5*math.Sin(angle), -0.5, -1.5)
		direction := target.Subtract(origin).Normalize()

		hit := cube.RayIntersect(origin, direction)
		if !hit.Hit {
			t.Fatalf("ray %d toward interior point missed", i)
		}

		if !approx(hit.Normal.Length(), 1) {
			t.Errorf("ray %d: normal %v is not unit length", i, hit.Normal)
		}
		nonZero := 0
		for axis := 0; axis < 3; axis++ {
			if hit.Normal.Component(axis) != 0 {
				nonZero++
			}
		}
		if nonZero != 1 {
			t.Errorf("ray %d: normal %v is not axis aligned", i, hit.Normal)
		}
		if hit.Normal.Dot(direction) >= 0 {
			t.Errorf("ray %d: entry normal %v does not face the ray", i, hit.Normal)
		}
	}
}

func TestCube_RayIntersect_ParallelOutsideSlab(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, material.Rubber())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"parallel to x slab, above", core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0, -1)},
		{"parallel to x slab, beside", core.NewVec3(-1.01, 0, 5), core.NewVec3(0, 0, -1)},
		{"tiny x component counts as parallel", core.NewVec3(3, 0, 5), core.NewVec3(1e-9, 0, -1)},
		{"parallel to z slab", core.NewVec3(5, 0, 2), core.NewVec3(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit := cube.RayIntersect(tt.origin, tt.direction); hit.Hit {
				t.Errorf("Expected miss, got hit at t=%f", hit.Distance)
			}
		})
	}
}

func TestCube_RayIntersect_Misses(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, material.Rubber())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"pointing away", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)},
		{"passes beside", core.NewVec3(3, 3, 5), core.NewVec3(0, -0.1, -1).Normalize()},
		{"zero direction outside", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0)},
		{"zero direction inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)},
		{"behind the ray", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit := cube.RayIntersect(tt.origin, tt.direction); hit.Hit {
				t.Errorf("Expected miss, got hit at t=%f", hit.Distance)
			}
		})
	}
}

func TestCube_RayIntersect_FromInside(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, material.Glass())

	hit := cube.RayIntersect(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !hit.Hit {
		t.Fatal("Expected hit from inside")
	}
	if !approx(hit.Distance, 1) {
		t.Errorf("Expected t=1, got %f", hit.Distance)
	}
	// The entry face behind the origin is reported, not the exit face
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected entry face normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != material.Glass() {
		t.Errorf("Expected glass material copy on hit")
	}
}

func TestCube_RayIntersect_FromInsideReportsEntryFace(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, material.Rubber())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		distance  float64
		normal    core.Vec3
	}{
		{"toward -Z", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 1, core.NewVec3(0, 0, 1)},
		{"toward +X", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 1, core.NewVec3(-1, 0, 0)},
		{"toward +Y off center", core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 1, 0), 0.5, core.NewVec3(0, -1, 0)},
		{"diagonal toward -X", core.NewVec3(0.5, 0, 0), core.NewVec3(-1, 0, -0.5).Normalize(), 1.5 * math.Sqrt(1.25), core.NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := cube.RayIntersect(tt.origin, tt.direction)
			if !hit.Hit {
				t.Fatal("Expected hit from inside")
			}
			if !approx(hit.Distance, tt.distance) {
				t.Errorf("Expected t=%f, got %f", tt.distance, hit.Distance)
			}
			if hit.Normal != tt.normal {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
		})
	}
}

func TestCube_UV(t *testing.T) {
	cube := NewCubeFromCorners(core.NewVec3(0, 0, 0), core.NewVec3(2, 4, 8), material.Rubber())

	tests := []struct {
		name   string
		point  core.Vec3
		normal core.Vec3
		u, v   float64
	}{
		{"+X", core.NewVec3(2, 1, 2), core.NewVec3(1, 0, 0), 0.25, 0.75},
		{"-X", core.NewVec3(0, 1, 2), core.NewVec3(-1, 0, 0), 0.75, 0.75},
		{"+Y", core.NewVec3(0.5, 4, 6), core.NewVec3(0, 1, 0), 0.25, 0.75},
		{"-Y", core.NewVec3(0.5, 0, 6), core.NewVec3(0, -1, 0), 0.25, 0.25},
		{"+Z", core.NewVec3(0.5, 3, 8), core.NewVec3(0, 0, 1), 0.75, 0.25},
		{"-Z", core.NewVec3(0.5, 3, 0), core.NewVec3(0, 0, -1), 0.25, 0.25},
		{"normal within tolerance", core.NewVec3(2, 1, 2), core.NewVec3(1, 0.00001, 0), 0.25, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := cube.UV(tt.point, tt.normal)
			if !approx(u, tt.u) || !approx(v, tt.v) {
				t.Errorf("UV = (%f, %f), want (%f, %f)", u, v, tt.u, tt.v)
			}
		})
	}
}

func TestCube_UVCornersStayInUnitSquare(t *testing.T) {
	cube := NewCube(core.NewVec3(1, 2, 3), 3, material.Rubber())
	corners := []core.Vec3{cube.Min, cube.Max}

	for _, face := range cubeFaces {
		for _, p := range corners {
			u, v := cube.UV(p, face.normal)
			if u < 0 || u > 1 || v < 0 || v > 1 {
				t.Errorf("face %v corner %v: UV (%f, %f) outside unit square", face.normal, p, u, v)
			}
		}
	}
}

func TestCube_SurfaceColor(t *testing.T) {
	red := core.NewColor(1, 0, 0)
	texture := material.NewCheckerboardTexture(2, 2, 1, red, red)
	textures := []*material.Texture{texture}

	plain := NewCube(core.NewVec3(0, 0, 0), 2, material.Ivory())
	textured := plain.WithTexture(0)
	missing := plain.WithTexture(7)

	hit := textured.RayIntersect(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if got := textured.SurfaceColor(hit, textures); got != red {
		t.Errorf("textured cube color = %v, want %v", got, red)
	}
	if got := plain.SurfaceColor(hit, textures); got != material.Ivory().Diffuse {
		t.Errorf("plain cube color = %v, want diffuse", got)
	}
	if got := missing.SurfaceColor(hit, textures); got != material.Ivory().Diffuse {
		t.Errorf("out-of-range texture id should fall back to diffuse, got %v", got)
	}
	if plain.TextureID != NoTexture {
		t.Error("WithTexture must not modify the original cube")
	}
}
