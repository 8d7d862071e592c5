package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// ShadowBias offsets secondary ray origins off the surface to avoid
	// self-intersection
	ShadowBias = 1e-4
	// AmbientFactor is the fraction of the surface color always visible
	AmbientFactor = 0.1
)

// World is the read-only scene data shared by every ray of a render pass
type World struct {
	Objects    []geometry.Object
	Lights     []lights.Light
	Textures   []*material.Texture
	Background Background // Defaults to a blue-white gradient when nil
	Bounds     *core.AABB // Optional bound enabling the escape fast path
}

var defaultBackground = NewGradientSky(core.NewColor(0.5, 0.7, 1.0), core.White)

// background returns the color for a ray leaving the scene
func (w *World) background(direction core.Vec3) core.Color {
	if w.Background == nil {
		return defaultBackground.Color(direction)
	}
	return w.Background.Color(direction)
}

// escapesBounds reports whether a ray can skip the object scan: it starts
// outside the scene bound and never enters it
func (w *World) escapesBounds(origin, direction core.Vec3) bool {
	if w.Bounds == nil {
		return false
	}
	if w.Bounds.Contains(origin) {
		return false
	}
	return !w.Bounds.Hit(core.NewRay(origin, direction), 0, math.Inf(1))
}

// NearestHit returns the closest intersection and the object it belongs to.
// Ties keep the first object in scene order.
func (w *World) NearestHit(origin, direction core.Vec3) (geometry.Intersect, geometry.Object) {
	nearest := geometry.NoHit()
	var nearestObject geometry.Object

	for _, object := range w.Objects {
		hit := object.RayIntersect(origin, direction)
		if hit.Hit && (!nearest.Hit || hit.Distance < nearest.Distance) {
			nearest = hit
			nearestObject = object
		}
	}

	return nearest, nearestObject
}

// CastRay returns the color seen along a ray, following reflection and
// refraction for at most depth levels. The result is not clamped.
func CastRay(origin, direction core.Vec3, world *World, depth int) core.Color {
	if depth <= 0 {
		return core.Black
	}

	direction = direction.Normalize()

	if world.escapesBounds(origin, direction) {
		return world.background(direction)
	}

	hit, object := world.NearestHit(origin, direction)
	if !hit.Hit {
		return world.background(direction)
	}

	mat := hit.Material
	surfaceColor := object.SurfaceColor(hit, world.Textures)
	color := localIllumination(origin, hit, surfaceColor, world)

	reflectColor := core.Black
	if mat.IsReflective() {
		reflectDir := direction.Reflect(hit.Normal)
		reflectOrigin := offsetOrigin(hit.Point, hit.Normal, reflectDir)
		reflectColor = CastRay(reflectOrigin, reflectDir, world, depth-1)
	}

	refractColor := core.Black
	if mat.IsRefractive() {
		normal := hit.Normal
		eta := 1.0 / mat.RefractiveIndex
		if direction.Dot(hit.Normal) > 0 {
			// Leaving the medium
			normal = normal.Negate()
			eta = mat.RefractiveIndex
		}

		if refractDir, ok := refract(direction, normal, eta); ok {
			refractOrigin := hit.Point.Subtract(normal.Multiply(ShadowBias))
			refractColor = CastRay(refractOrigin, refractDir, world, depth-1)
		}
	}

	kr := mat.Albedo[material.AlbedoReflective]
	if mat.Transparency > 0 {
		kr = fresnel(direction, hit.Normal, mat.RefractiveIndex)
	}

	return color.Multiply(mat.LocalWeight()).
		Add(reflectColor.Multiply(kr)).
		Add(refractColor.Multiply((1 - kr) * mat.Transparency))
}

// localIllumination sums the ambient term and per-light Phong diffuse and
// specular terms, attenuated by shadows
func localIllumination(eye core.Vec3, hit geometry.Intersect, surfaceColor core.Color, world *World) core.Color {
	mat := hit.Material
	color := surfaceColor.Multiply(AmbientFactor)
	viewDir := eye.Subtract(hit.Point).Normalize()

	for _, light := range world.Lights {
		lightDir, _ := light.DirectionFrom(hit.Point)
		reflectDir := lightDir.Negate().Reflect(hit.Normal)

		shadow := shadowIntensity(hit, light, world.Objects)
		intensity := light.Intensity * (1 - shadow)

		diffuse := math.Max(hit.Normal.Dot(lightDir), 0)
		specular := math.Pow(math.Max(viewDir.Dot(reflectDir), 0), mat.Specular)

		color = color.
			Add(surfaceColor.Multiply(mat.Albedo[material.AlbedoDiffuse] * diffuse * intensity)).
			Add(light.Color.Multiply(mat.Albedo[material.AlbedoSpecular] * specular * intensity))
	}

	return color
}

// shadowIntensity returns how strongly light is blocked at hit, in [0,1].
// The first occluder found between the surface and the light decides the
// result: 1 - (t/lightDistance)², so occluders near the surface cast darker
// shadows than ones near the light.
func shadowIntensity(hit geometry.Intersect, light lights.Light, objects []geometry.Object) float64 {
	lightDir, lightDistance := light.DirectionFrom(hit.Point)
	if lightDistance == 0 {
		return 0
	}

	shadowOrigin := offsetOrigin(hit.Point, hit.Normal, lightDir)

	for _, object := range objects {
		occluder := object.RayIntersect(shadowOrigin, lightDir)
		if occluder.Hit && occluder.Distance < lightDistance {
			ratio := occluder.Distance / lightDistance
			return max(0.0, min(1.0, 1-ratio*ratio))
		}
	}

	return 0
}

// offsetOrigin nudges point off the surface onto the side dir points to
func offsetOrigin(point, normal, dir core.Vec3) core.Vec3 {
	offset := normal.Multiply(ShadowBias)
	if dir.Dot(normal) < 0 {
		return point.Subtract(offset)
	}
	return point.Add(offset)
}

// refract bends a unit incident direction through a surface whose normal
// faces the incident side, with eta the ratio of refractive indices.
// It reports false on total internal reflection.
func refract(incident, normal core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := -max(-1.0, min(1.0, incident.Dot(normal)))
	sinT2 := eta * eta * (1 - cosI*cosI)
	if sinT2 > 1 {
		return core.Vec3{}, false
	}

	cosT := math.Sqrt(1 - sinT2)
	return incident.Multiply(eta).Add(normal.Multiply(eta*cosI - cosT)), true
}

// fresnel returns the fraction of light reflected at a dielectric boundary,
// averaging the s and p polarizations. The boundary is always treated as
// air to ior, using the unsigned angle to the normal, so rays leaving the
// medium get the same weight as rays entering it at that angle.
func fresnel(incident, normal core.Vec3, ior float64) float64 {
	cosI := min(1.0, math.Abs(incident.Dot(normal)))
	etaI, etaT := 1.0, ior

	sinT := etaI / etaT * math.Sqrt(math.Max(0, 1-cosI*cosI))
	if sinT >= 1 {
		return 1
	}

	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))

	rs := (etaT*cosI - etaI*cosT) / (etaT*cosI + etaI*cosT)
	rp := (etaI*cosI - etaT*cosT) / (etaI*cosI + etaT*cosT)
	return (rs*rs + rp*rp) / 2
}
