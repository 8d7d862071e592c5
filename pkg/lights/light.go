package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is a point light. Intensity is an unclamped weight; values above 1
// make a light brighter than its color alone.
type Light struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewLight creates a point light
func NewLight(position core.Vec3, color core.Color, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit direction from point to the light and the
// distance between them
func (l Light) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	return toLight.Normalize(), distance
}
