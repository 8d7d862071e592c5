package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center    core.Vec3
	Radius    float64
	Material  material.Material
	TextureID int // Index into the scene textures, or NoTexture
}

// NewSphere creates a new untextured sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:    center,
		Radius:    radius,
		Material:  mat,
		TextureID: NoTexture,
	}
}

// WithTexture returns a copy of the sphere that samples textures[textureID]
func (s *Sphere) WithTexture(textureID int) *Sphere {
	textured := *s
	textured.TextureID = textureID
	return &textured
}

// RayIntersect tests if a ray intersects with the sphere
func (s *Sphere) RayIntersect(origin, direction core.Vec3) Intersect {
	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := direction.LengthSquared()
	if a < 1e-16 || s.Radius <= 0 {
		return NoHit()
	}

	oc := origin.Subtract(s.Center)
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return NoHit()
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= 0 || math.IsInf(root, 0) {
		// Origin is inside the sphere or it is behind us
		root = (-halfB + sqrtD) / a
		if root <= 0 || math.IsInf(root, 0) {
			return NoHit()
		}
	}

	point := origin.Add(direction.Multiply(root))
	return Intersect{
		Hit:      true,
		Distance: root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Multiply(1.0 / s.Radius),
		Material: s.Material,
	}
}

// UV maps a surface normal to longitude/latitude coordinates. U wraps
// around the Y axis, V runs from the north pole (0) to the south pole (1).
func (s *Sphere) UV(normal core.Vec3) (float64, float64) {
	u := 0.5 + math.Atan2(normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 - math.Asin(max(-1.0, min(1.0, normal.Y)))/math.Pi
	return u, v
}

// SurfaceColor returns the texture color at the hit or the diffuse color
func (s *Sphere) SurfaceColor(hit Intersect, textures []*material.Texture) core.Color {
	return surfaceColor(s.Material, s.TextureID, textures, func() (float64, float64) {
		return s.UV(hit.Normal)
	})
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

func (s *Sphere) isObject() {}
