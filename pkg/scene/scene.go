package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. Objects, lights and
// textures are read-only once rendering starts; the camera may be moved
// between render passes.
type Scene struct {
	Name     string
	Camera   *renderer.Camera
	Objects  []geometry.Object
	Lights   []lights.Light
	Textures []*material.Texture
	Sky      renderer.Background // nil selects the default gradient
	Bounds   *core.AABB          // Set by Preprocess
}

// New creates an empty scene viewed from camera
func New(name string, camera *renderer.Camera) *Scene {
	return &Scene{
		Name:     name,
		Camera:   camera,
		Objects:  make([]geometry.Object, 0),
		Lights:   make([]lights.Light, 0),
		Textures: make([]*material.Texture, 0),
	}
}

// AddTexture registers a texture and returns its ID for WithTexture
func (s *Scene) AddTexture(texture *material.Texture) int {
	s.Textures = append(s.Textures, texture)
	return len(s.Textures) - 1
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(sceneLights ...lights.Light) {
	s.Lights = append(s.Lights, sceneLights...)
}

// Preprocess computes the scene bound used to skip the object scan for rays
// that leave the scene. It must be called again after objects change.
func (s *Scene) Preprocess() {
	if len(s.Objects) == 0 {
		s.Bounds = nil
		return
	}

	bounds := s.Objects[0].BoundingBox()
	for _, object := range s.Objects[1:] {
		bounds = bounds.Union(object.BoundingBox())
	}
	bounds = bounds.Expand(renderer.ShadowBias)
	s.Bounds = &bounds
}

// GetWorld returns the shading view of the scene
func (s *Scene) GetWorld() *renderer.World {
	return &renderer.World{
		Objects:    s.Objects,
		Lights:     s.Lights,
		Textures:   s.Textures,
		Background: s.Sky,
		Bounds:     s.Bounds,
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
