package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const defaultTextureSize = 64

// defaultLights is the three-point rig shared by the built-in scenes
func defaultLights() []lights.Light {
	return []lights.Light{
		// Key light, white, above and in front
		lights.NewLight(core.NewVec3(-3, 4, 1), core.White, 1.5),
		// Warm fill
		lights.NewLight(core.NewVec3(3, 2, -1), core.NewColorRGB8(255, 220, 180), 1.0),
		// Cool back light for edges
		lights.NewLight(core.NewVec3(0, 1, -8), core.NewColorRGB8(200, 200, 255), 0.6),
	}
}

// NewDefaultScene creates four textured cubes standing on a wood floor
// under an eclipse sky
func NewDefaultScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 1, 8),  // Back and slightly raised
		core.NewVec3(0, 0, -4), // Looking at the middle of the group
		core.NewVec3(0, 1, 0),
	)

	s := New("default", camera)
	s.Sky = renderer.NewEclipseSky()

	checkerboard := s.AddTexture(material.NewCheckerboardTexture(defaultTextureSize, defaultTextureSize, 8, core.White, core.Black))
	brick := s.AddTexture(material.NewBrickTexture(defaultTextureSize, defaultTextureSize))
	wood := s.AddTexture(material.NewWoodTexture(defaultTextureSize, defaultTextureSize))
	marble := s.AddTexture(material.NewMarbleTexture(defaultTextureSize, defaultTextureSize))
	metal := s.AddTexture(material.NewMetalTexture(defaultTextureSize, defaultTextureSize))

	brickMaterial := material.New(core.NewColorRGB8(139, 69, 19), 50, [4]float64{0.8, 0.2, 0, 0}, 1, 0)
	woodMaterial := material.New(core.NewColorRGB8(139, 115, 85), 20, [4]float64{0.7, 0.3, 0.1, 0}, 1, 0)

	s.Add(
		geometry.NewCube(core.NewVec3(-3, 0, -5), 2, material.Ivory()).WithTexture(checkerboard),
		geometry.NewCube(core.NewVec3(0, 0, -4), 2, brickMaterial).WithTexture(brick),
		geometry.NewCube(core.NewVec3(3, 0, -5), 2, material.Mirror()).WithTexture(metal),
		geometry.NewCube(core.NewVec3(0, 2.5, -4.5), 2, material.Glass()).WithTexture(marble),
		// Floor: a huge cube whose top face sits at y = -2
		geometry.NewCube(core.NewVec3(0, -1002, -1), 2000, woodMaterial).WithTexture(wood),
	)
	s.AddLight(defaultLights()...)

	s.Preprocess()
	return s
}
