package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NoTexture marks an object that uses its material's diffuse color
const NoTexture = -1

// Intersect contains information about a ray-object intersection.
// Distance, Point, Normal and Material are meaningful only when Hit is true.
type Intersect struct {
	Hit      bool
	Distance float64           // Parameter t along the ray, > 0
	Point    core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit outward surface normal
	Material material.Material // Copy of the hit object's material
}

// NoHit returns the miss sentinel
func NoHit() Intersect {
	return Intersect{}
}

// Object is a scene primitive that can be hit by rays. The set of
// implementations is closed: Sphere and Cube.
type Object interface {
	// RayIntersect returns the nearest intersection in front of origin
	RayIntersect(origin, direction core.Vec3) Intersect
	// SurfaceColor returns the base color at a hit, sampling the object's
	// texture when it has one
	SurfaceColor(hit Intersect, textures []*material.Texture) core.Color
	// BoundingBox returns the axis-aligned bounds of the object
	BoundingBox() core.AABB

	isObject()
}

// surfaceColor samples textures[textureID] at (u, v), falling back to the
// material's diffuse color when the object has no usable texture
func surfaceColor(mat material.Material, textureID int, textures []*material.Texture, uv func() (float64, float64)) core.Color {
	if textureID < 0 || textureID >= len(textures) || textures[textureID] == nil {
		return mat.Diffuse
	}
	u, v := uv()
	return textures[textureID].Sample(u, v)
}
