package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	parallelEpsilon = 1e-8 // Direction components below this are treated as parallel to a slab
	faceEpsilon     = 1e-4 // Tolerance when matching a normal to a cube face
)

// faceMapping describes how a cube face projects to UV space. U and V are
// taken from the two axes orthogonal to the face normal and normalized by
// the cube's extent; flipped axes run from max to min.
type faceMapping struct {
	normal core.Vec3
	uAxis  int
	vAxis  int
	flipU  bool
	flipV  bool
}

// cubeFaces is the UV convention for all six faces. Side faces keep +Y up
// in texture space (V flipped so the top row of the texture is at the top of
// the face) and are oriented so U runs left to right when the face is viewed
// from outside.
var cubeFaces = [6]faceMapping{
	{normal: core.NewVec3(1, 0, 0), uAxis: 2, vAxis: 1, flipU: false, flipV: true},  // +X
	{normal: core.NewVec3(-1, 0, 0), uAxis: 2, vAxis: 1, flipU: true, flipV: true},  // -X
	{normal: core.NewVec3(0, 1, 0), uAxis: 0, vAxis: 2, flipU: false, flipV: false}, // +Y
	{normal: core.NewVec3(0, -1, 0), uAxis: 0, vAxis: 2, flipU: false, flipV: true}, // -Y
	{normal: core.NewVec3(0, 0, 1), uAxis: 0, vAxis: 1, flipU: true, flipV: true},   // +Z
	{normal: core.NewVec3(0, 0, -1), uAxis: 0, vAxis: 1, flipU: false, flipV: true}, // -Z
}

// Cube represents an axis-aligned box given by its min and max corners
type Cube struct {
	Min       core.Vec3
	Max       core.Vec3
	Material  material.Material
	TextureID int // Index into the scene textures, or NoTexture
}

// NewCube creates a cube with the given center and edge length
func NewCube(center core.Vec3, size float64, mat material.Material) *Cube {
	half := core.NewVec3(size/2, size/2, size/2)
	return NewCubeFromCorners(center.Subtract(half), center.Add(half), mat)
}

// NewCubeFromCorners creates a box from two opposite corners in any order
func NewCubeFromCorners(a, b core.Vec3, mat material.Material) *Cube {
	bounds := core.NewAABBFromPoints(a, b)
	return &Cube{
		Min:       bounds.Min,
		Max:       bounds.Max,
		Material:  mat,
		TextureID: NoTexture,
	}
}

// WithTexture returns a copy of the cube that samples textures[textureID]
func (c *Cube) WithTexture(textureID int) *Cube {
	textured := *c
	textured.TextureID = textureID
	return &textured
}

// RayIntersect finds the nearest intersection using the slab method. The
// normal is always the face that produced the entry distance, so a ray
// starting inside the cube reports the entry face behind it, not the face
// it leaves through.
func (c *Cube) RayIntersect(origin, direction core.Vec3) Intersect {
	if direction.IsZero() {
		return NoHit()
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	var hitNormal core.Vec3

	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		d := direction.Component(axis)
		lo := c.Min.Component(axis)
		hi := c.Max.Component(axis)

		if math.Abs(d) < parallelEpsilon {
			// Parallel to this slab: either always inside it or never
			if o < lo || o > hi {
				return NoHit()
			}
			continue
		}

		invD := 1.0 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD
		faceNormal := core.AxisVec3(axis, -1)

		if t1 > t2 {
			t1, t2 = t2, t1
			faceNormal = core.AxisVec3(axis, 1)
		}

		if t1 > tMin {
			tMin = t1
			hitNormal = faceNormal
		}
		if t2 < tMax {
			tMax = t2
		}

		if tMin > tMax {
			return NoHit()
		}
	}

	t := tMin
	if t <= 0 {
		t = tMax
	}
	if t <= 0 || math.IsInf(t, 0) || hitNormal.IsZero() {
		return NoHit()
	}

	return Intersect{
		Hit:      true,
		Distance: t,
		Point:    origin.Add(direction.Multiply(t)),
		Normal:   hitNormal,
		Material: c.Material,
	}
}

// UV maps a point on the cube surface to texture coordinates using the face
// selected by normal
func (c *Cube) UV(point, normal core.Vec3) (float64, float64) {
	face := cubeFaces[len(cubeFaces)-1]
	for _, f := range cubeFaces {
		if normal.Subtract(f.normal).LengthSquared() < faceEpsilon*faceEpsilon {
			face = f
			break
		}
	}

	u := c.axisFraction(point, face.uAxis)
	v := c.axisFraction(point, face.vAxis)
	if face.flipU {
		u = 1 - u
	}
	if face.flipV {
		v = 1 - v
	}
	return u, v
}

// axisFraction returns where point lies between Min and Max along axis
func (c *Cube) axisFraction(point core.Vec3, axis int) float64 {
	extent := c.Max.Component(axis) - c.Min.Component(axis)
	if extent <= 0 {
		return 0
	}
	return (point.Component(axis) - c.Min.Component(axis)) / extent
}

// SurfaceColor returns the texture color at the hit or the diffuse color
func (c *Cube) SurfaceColor(hit Intersect, textures []*material.Texture) core.Color {
	return surfaceColor(c.Material, c.TextureID, textures, func() (float64, float64) {
		return c.UV(hit.Point, hit.Normal)
	})
}

// BoundingBox returns the cube's own bounds
func (c *Cube) BoundingBox() core.AABB {
	return core.NewAABB(c.Min, c.Max)
}

func (c *Cube) isObject() {}
