package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Albedo weight indices
const (
	AlbedoDiffuse = iota
	AlbedoSpecular
	AlbedoReflective
	AlbedoRefractive
)

// Material describes how a surface responds to light. It is an immutable
// value; many objects may share one.
type Material struct {
	Diffuse         core.Color // Base surface color
	Specular        float64    // Phong specular exponent (shininess)
	Albedo          [4]float64 // [diffuse, specular, reflective, refractive] weights
	RefractiveIndex float64    // Index of refraction, >= 1
	Transparency    float64    // 0 = opaque, 1 = fully transparent
}

// New creates a material. The refractive index is raised to 1 and the
// transparency clamped to [0,1] so callers cannot build a non-physical medium.
func New(diffuse core.Color, specular float64, albedo [4]float64, refractiveIndex, transparency float64) Material {
	return Material{
		Diffuse:         diffuse,
		Specular:        specular,
		Albedo:          albedo,
		RefractiveIndex: max(1.0, refractiveIndex),
		Transparency:    max(0.0, min(1.0, transparency)),
	}
}

// IsReflective reports whether reflection rays are worth tracing
func (m Material) IsReflective() bool {
	return m.Albedo[AlbedoReflective] > 0.01
}

// IsRefractive reports whether refraction rays are worth tracing
func (m Material) IsRefractive() bool {
	return m.Albedo[AlbedoRefractive] > 0.01 && m.Transparency > 0.01
}

// LocalWeight is the share of the final color taken by local illumination
func (m Material) LocalWeight() float64 {
	return 1.0 - m.Albedo[AlbedoReflective] - m.Albedo[AlbedoRefractive]
}
