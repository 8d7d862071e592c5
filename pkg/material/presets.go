package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Rubber is a dull, fully diffuse dark red
func Rubber() Material {
	return New(core.NewColorRGB8(80, 0, 0), 1.0, [4]float64{0.9, 0.1, 0.0, 0.0}, 1.0, 0.0)
}

// Ivory is mostly diffuse with a faint reflection
func Ivory() Material {
	return New(core.NewColorRGB8(100, 100, 80), 50.0, [4]float64{0.6, 0.3, 0.1, 0.0}, 1.0, 0.0)
}

// Mirror reflects nearly everything. The specular weight is intentionally
// above 1 to give very bright highlights.
func Mirror() Material {
	return New(core.NewColorRGB8(240, 240, 240), 1425.0, [4]float64{0.0, 5.0, 0.9, 0.0}, 1.0, 0.0)
}

// Glass is a clear dielectric with IOR 1.5
func Glass() Material {
	return New(core.NewColorRGB8(200, 220, 240), 125.0, [4]float64{0.0, 0.2, 0.05, 0.9}, 1.5, 0.9)
}

// Water is a tinted dielectric with IOR 1.33
func Water() Material {
	return New(core.NewColorRGB8(100, 150, 200), 80.0, [4]float64{0.1, 0.3, 0.2, 0.6}, 1.33, 0.7)
}

// CrystalGlass has a diamond-like IOR
func CrystalGlass() Material {
	return New(core.NewColorRGB8(220, 240, 255), 300.0, [4]float64{0.1, 0.1, 0.2, 0.8}, 1.8, 0.95)
}

// ChromeMirror is an opaque, highly reflective metal
func ChromeMirror() Material {
	return New(core.NewColorRGB8(250, 250, 250), 1000.0, [4]float64{0.05, 0.1, 0.85, 0.0}, 1.0, 0.0)
}

// ZenWater balances reflection and refraction
func ZenWater() Material {
	return New(core.NewColorRGB8(60, 120, 140), 80.0, [4]float64{0.2, 0.2, 0.3, 0.6}, 1.33, 0.8)
}

// ZenMoss is soft organic green
func ZenMoss() Material {
	return New(core.NewColorRGB8(85, 120, 70), 30.0, [4]float64{0.7, 0.2, 0.1, 0.0}, 1.0, 0.0)
}

// BrushedMetal is a moderately reflective cool gray
func BrushedMetal() Material {
	return New(core.NewColorRGB8(170, 180, 190), 120.0, [4]float64{0.5, 0.3, 0.2, 0.0}, 1.0, 0.0)
}

// Concrete is a neutral, mostly diffuse gray
func Concrete() Material {
	return New(core.NewColorRGB8(180, 180, 175), 25.0, [4]float64{0.8, 0.1, 0.1, 0.0}, 1.0, 0.0)
}

// Presets maps preset names, as used in scene files, to constructors
var Presets = map[string]func() Material{
	"rubber":        Rubber,
	"ivory":         Ivory,
	"mirror":        Mirror,
	"glass":         Glass,
	"water":         Water,
	"crystal-glass": CrystalGlass,
	"chrome-mirror": ChromeMirror,
	"zen-water":     ZenWater,
	"zen-moss":      ZenMoss,
	"brushed-metal": BrushedMetal,
	"concrete":      Concrete,
}
