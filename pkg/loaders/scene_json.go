package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const defaultTextureSize = 64

// SceneFile is the JSON scene description. Colors are hex strings such as
// "#8b4513" or "777".
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Group       string                  `json:"group"`
	Camera      *CameraSpec             `json:"camera"`
	Sky         *SkySpec                `json:"sky"`
	Textures    []TextureSpec           `json:"textures"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Objects     []ObjectSpec            `json:"objects"`
	Lights      []LightSpec             `json:"lights"`
}

// CameraSpec places the camera
type CameraSpec struct {
	Eye    [3]float64  `json:"eye"`
	Center [3]float64  `json:"center"`
	Up     *[3]float64 `json:"up"` // Defaults to +Y
}

// SkySpec selects the background: "eclipse" or "gradient"
type SkySpec struct {
	Type   string `json:"type"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

// TextureSpec is either a procedural generator or an image file. File paths
// are relative to the scene file.
type TextureSpec struct {
	Name       string `json:"name"`
	Procedural string `json:"procedural"`
	File       string `json:"file"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// MaterialSpec defines a custom material
type MaterialSpec struct {
	Diffuse         string     `json:"diffuse"`
	Specular        float64    `json:"specular"`
	Albedo          [4]float64 `json:"albedo"`
	RefractiveIndex float64    `json:"refractiveIndex"`
	Transparency    float64    `json:"transparency"`
}

// ObjectSpec is a sphere or a cube. Cubes take either center and size or
// min and max corners.
type ObjectSpec struct {
	Type     string      `json:"type"`
	Center   *[3]float64 `json:"center"`
	Size     float64     `json:"size"`
	Min      *[3]float64 `json:"min"`
	Max      *[3]float64 `json:"max"`
	Radius   float64     `json:"radius"`
	Material string      `json:"material"` // Custom material name or preset
	Texture  string      `json:"texture"`  // Texture name, optional
}

// LightSpec is a point light
type LightSpec struct {
	Position  [3]float64 `json:"position"`
	Color     string     `json:"color"`
	Intensity float64    `json:"intensity"`
}

// LoadScene reads a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

// OpenScene resolves a scene ID from the scene list: file scenes are loaded
// from disk, anything else is a built-in
func OpenScene(id string) (*scene.Scene, error) {
	if path, ok := scene.FileScenePath(id); ok {
		return LoadScene(path)
	}
	return scene.Create(id)
}

// ParseScene decodes a JSON scene. baseDir resolves relative texture paths.
func ParseScene(r io.Reader, baseDir string) (*scene.Scene, error) {
	var spec SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	camera := renderer.NewCamera(core.NewVec3(0, 1, 8), core.NewVec3(0, 0, -4), core.NewVec3(0, 1, 0))
	if spec.Camera != nil {
		up := core.NewVec3(0, 1, 0)
		if spec.Camera.Up != nil {
			up = vec3(*spec.Camera.Up)
		}
		camera = renderer.NewCamera(vec3(spec.Camera.Eye), vec3(spec.Camera.Center), up)
		if camera.Distance() == 0 {
			return nil, fmt.Errorf("camera eye and center must differ")
		}
	}

	name := spec.Name
	if name == "" {
		name = "untitled"
	}
	s := scene.New(name, camera)

	sky, err := parseSky(spec.Sky)
	if err != nil {
		return nil, err
	}
	s.Sky = sky

	textureIDs := make(map[string]int, len(spec.Textures))
	for i, textureSpec := range spec.Textures {
		texture, err := buildTexture(textureSpec, baseDir)
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		if textureSpec.Name == "" {
			return nil, fmt.Errorf("texture %d: missing name", i)
		}
		textureIDs[textureSpec.Name] = s.AddTexture(texture)
	}

	materials := make(map[string]material.Material, len(spec.Materials))
	for name, materialSpec := range spec.Materials {
		diffuse, err := parseColor(materialSpec.Diffuse, core.White)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = material.New(diffuse, materialSpec.Specular, materialSpec.Albedo,
			materialSpec.RefractiveIndex, materialSpec.Transparency)
	}

	for i, objectSpec := range spec.Objects {
		object, err := buildObject(objectSpec, materials, textureIDs)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(object)
	}

	for i, lightSpec := range spec.Lights {
		color, err := parseColor(lightSpec.Color, core.White)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		if lightSpec.Intensity < 0 {
			return nil, fmt.Errorf("light %d: intensity must be non-negative, got %g", i, lightSpec.Intensity)
		}
		s.AddLight(lights.NewLight(vec3(lightSpec.Position), color, lightSpec.Intensity))
	}

	s.Preprocess()
	return s, nil
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// parseColor converts a hex color, returning fallback for an empty string
func parseColor(hex string, fallback core.Color) (core.Color, error) {
	if hex == "" {
		return fallback, nil
	}
	digits := strings.TrimPrefix(hex, "#")
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return core.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	if strings.Trim(digits, "0123456789abcdefABCDEF") != "" {
		return core.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	c := fauxgl.HexColor(hex)
	return core.NewColor(c.R, c.G, c.B), nil
}

func parseSky(spec *SkySpec) (renderer.Background, error) {
	if spec == nil {
		return nil, nil
	}

	switch spec.Type {
	case "eclipse":
		return renderer.NewEclipseSky(), nil
	case "gradient", "":
		top, err := parseColor(spec.Top, core.NewColor(0.5, 0.7, 1.0))
		if err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
		bottom, err := parseColor(spec.Bottom, core.White)
		if err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
		return renderer.NewGradientSky(top, bottom), nil
	default:
		return nil, fmt.Errorf("unknown sky type %q", spec.Type)
	}
}

func buildTexture(spec TextureSpec, baseDir string) (*material.Texture, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = defaultTextureSize, defaultTextureSize
	}

	switch {
	case spec.Procedural != "" && spec.File != "":
		return nil, fmt.Errorf("texture %q sets both procedural and file", spec.Name)
	case spec.Procedural != "":
		generate, ok := material.ProceduralTextures[spec.Procedural]
		if !ok {
			return nil, fmt.Errorf("unknown procedural texture %q", spec.Procedural)
		}
		return generate(width, height), nil
	case spec.File != "":
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		// Image files keep their native size unless one is requested
		return LoadTexture(path, spec.Width, spec.Height)
	default:
		return nil, fmt.Errorf("texture %q needs procedural or file", spec.Name)
	}
}

func buildObject(spec ObjectSpec, materials map[string]material.Material, textureIDs map[string]int) (geometry.Object, error) {
	mat, err := resolveMaterial(spec.Material, materials)
	if err != nil {
		return nil, err
	}

	textureID := geometry.NoTexture
	if spec.Texture != "" {
		id, ok := textureIDs[spec.Texture]
		if !ok {
			return nil, fmt.Errorf("unknown texture %q", spec.Texture)
		}
		textureID = id
	}

	switch spec.Type {
	case "sphere":
		if spec.Center == nil {
			return nil, fmt.Errorf("sphere needs a center")
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", spec.Radius)
		}
		return geometry.NewSphere(vec3(*spec.Center), spec.Radius, mat).WithTexture(textureID), nil

	case "cube":
		switch {
		case spec.Min != nil && spec.Max != nil:
			return geometry.NewCubeFromCorners(vec3(*spec.Min), vec3(*spec.Max), mat).WithTexture(textureID), nil
		case spec.Center != nil:
			if spec.Size <= 0 {
				return nil, fmt.Errorf("cube size must be positive, got %g", spec.Size)
			}
			return geometry.NewCube(vec3(*spec.Center), spec.Size, mat).WithTexture(textureID), nil
		default:
			return nil, fmt.Errorf("cube needs center and size or min and max")
		}

	default:
		return nil, fmt.Errorf("unknown object type %q", spec.Type)
	}
}

// resolveMaterial prefers scene-defined materials over presets
func resolveMaterial(name string, materials map[string]material.Material) (material.Material, error) {
	if name == "" {
		return material.Rubber(), nil
	}
	if mat, ok := materials[name]; ok {
		return mat, nil
	}
	if preset, ok := material.Presets[name]; ok {
		return preset(), nil
	}
	return material.Material{}, fmt.Errorf("unknown material %q", name)
}
