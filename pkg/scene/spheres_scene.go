package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewSpheresScene creates a row of spheres and cubes showing every
// material preset, on a concrete floor under a gradient sky
func NewSpheresScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 2, 9),
		core.NewVec3(0, 0, -3),
		core.NewVec3(0, 1, 0),
	)

	s := New("spheres", camera)
	s.Sky = renderer.NewGradientSky(core.NewColor(0.5, 0.7, 1.0), core.White)

	uvDebug := s.AddTexture(material.NewUVDebugTexture(defaultTextureSize, defaultTextureSize))
	checker := s.AddTexture(material.NewCheckerboardTexture(defaultTextureSize, defaultTextureSize, 8,
		core.NewColorRGB8(40, 90, 40), core.NewColorRGB8(200, 200, 160)))

	// Back row: spheres
	s.Add(
		geometry.NewSphere(core.NewVec3(-4, 0, -5), 1, material.Rubber()),
		geometry.NewSphere(core.NewVec3(-2, 0, -5), 1, material.Ivory()).WithTexture(uvDebug),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.ChromeMirror()),
		geometry.NewSphere(core.NewVec3(2, 0, -5), 1, material.CrystalGlass()),
		geometry.NewSphere(core.NewVec3(4, 0, -5), 1, material.ZenMoss()),
	)

	// Front row: small cubes and a water sphere
	s.Add(
		geometry.NewCube(core.NewVec3(-3, -0.5, -2), 1, material.BrushedMetal()),
		geometry.NewSphere(core.NewVec3(-1, -0.4, -1.5), 0.6, material.Water()),
		geometry.NewCube(core.NewVec3(1, -0.5, -2), 1, material.Glass()),
		geometry.NewSphere(core.NewVec3(3, -0.4, -1.5), 0.6, material.ZenWater()),
		geometry.NewCube(core.NewVec3(0, 1.6, -3), 0.8, material.Mirror()),
	)

	// Floor
	s.Add(geometry.NewCubeFromCorners(
		core.NewVec3(-50, -11, -50),
		core.NewVec3(50, -1, 50),
		material.Concrete(),
	).WithTexture(checker))

	s.AddLight(defaultLights()...)

	s.Preprocess()
	return s
}
