package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Background colors rays that escape the scene. Implementations must be
// pure functions of the ray direction.
type Background interface {
	Color(direction core.Vec3) core.Color
}

// GradientSky blends from Bottom to Top with the direction's elevation
type GradientSky struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientSky creates a vertical gradient background
func NewGradientSky(top, bottom core.Color) GradientSky {
	return GradientSky{Top: top, Bottom: bottom}
}

// Color returns the gradient color for a direction
func (g GradientSky) Color(direction core.Vec3) core.Color {
	unitDirection := direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// EclipseSky is a dark red banded sky with an eclipsed sun: a black disc
// with a red rim surrounded by an orange corona
type EclipseSky struct {
	Elevation    float64 // Eclipse center elevation in radians
	Azimuth      float64 // Eclipse center azimuth in radians, from +X toward +Z
	DiscRadius   float64 // Angular radius of the dark disc
	CoronaRadius float64 // Angular radius of the corona
}

// eclipseRimRatio is where the red rim starts, as a fraction of DiscRadius
const eclipseRimRatio = 0.8

// NewEclipseSky creates the eclipse sky at its default position
func NewEclipseSky() EclipseSky {
	return EclipseSky{
		Elevation:    0.7,
		Azimuth:      0.2,
		DiscRadius:   0.15,
		CoronaRadius: 0.25,
	}
}

var (
	eclipseRim    = core.NewColorRGB8(80, 20, 10)
	eclipseCenter = core.NewColorRGB8(20, 5, 5)

	skyZenith  = core.NewColorRGB8(20, 5, 5)
	skyUpper   = core.NewColorRGB8(80, 20, 10)
	skyMiddle  = core.NewColorRGB8(120, 30, 15)
	skyHorizon = core.NewColorRGB8(60, 15, 8)
	skyNadir   = core.NewColorRGB8(40, 8, 5)
)

// Color returns the sky color for a direction
func (e EclipseSky) Color(direction core.Vec3) core.Color {
	dir := direction.Normalize()

	theta := math.Asin(max(-1.0, min(1.0, dir.Y))) // Elevation
	phi := math.Atan2(dir.Z, dir.X)                // Azimuth

	dTheta := theta - e.Elevation
	dPhi := phi - e.Azimuth
	angularDist := math.Sqrt(dTheta*dTheta + dPhi*dPhi)

	switch {
	case angularDist < e.DiscRadius*eclipseRimRatio:
		return eclipseCenter
	case angularDist < e.DiscRadius:
		return eclipseRim
	case angularDist < e.CoronaRadius:
		glow := 1.0 - (angularDist-e.DiscRadius)/(e.CoronaRadius-e.DiscRadius)
		return core.NewColor(glow, glow*0.6, glow*0.2)
	}

	// Elevation mapped to [0,1], bottom to top
	elevation := (theta + math.Pi/2) / math.Pi

	switch {
	case elevation > 0.7:
		return skyUpper.Lerp(skyZenith, (elevation-0.7)/0.3)
	case elevation > 0.3:
		return skyMiddle.Lerp(skyUpper, (elevation-0.3)/0.4)
	default:
		return skyNadir.Lerp(skyHorizon, elevation/0.3)
	}
}
