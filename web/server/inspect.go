package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Color        string                 `json:"color"` // Shaded pixel color, "#rrggbb"
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the first hit of an inspection ray and the shaded
// color of the pixel
type InspectResult struct {
	Hit    geometry.Intersect
	Object geometry.Object // nil on a miss
	Color  core.Color
}

// inspectPixel casts the primary ray through the pixel and returns the
// nearest hit along with the color a render would produce there
func inspectPixel(sceneObj *scene.Scene, raytracer *renderer.Raytracer, width, height, pixelX, pixelY int) InspectResult {
	world := sceneObj.GetWorld()
	camera := sceneObj.GetCamera()

	direction := raytracer.PrimaryRay(camera, pixelX, pixelY, width, height)
	hit, object := world.NearestHit(camera.Eye, direction)

	return InspectResult{
		Hit:    hit,
		Object: object,
		Color:  renderer.CastRay(camera.Eye, direction, world, raytracer.Config().MaxDepth),
	}
}

// hexColor formats a color as "#rrggbb", saturating out-of-range channels
func hexColor(c core.Color) string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo classifies a material and lists its parameters
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"diffuse":         hexColor(mat.Diffuse),
		"specular":        mat.Specular,
		"albedo":          mat.Albedo,
		"refractiveIndex": mat.RefractiveIndex,
		"transparency":    mat.Transparency,
	}

	switch {
	case mat.IsRefractive():
		return "refractive", properties
	case mat.IsReflective():
		return "reflective", properties
	default:
		return "diffuse", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(object geometry.Object, hit geometry.Intersect) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		properties["textureId"] = geom.TextureID
		u, v := geom.UV(hit.Normal)
		properties["uv"] = [2]float64{u, v}
		return "sphere", properties

	case *geometry.Cube:
		properties["min"] = [3]float64{geom.Min.X, geom.Min.Y, geom.Min.Z}
		properties["max"] = [3]float64{geom.Max.X, geom.Max.Y, geom.Max.Z}
		properties["textureId"] = geom.TextureID
		u, v := geom.UV(hit.Point, hit.Normal)
		properties["uv"] = [2]float64{u, v}
		return "cube", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, inspectReq.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, inspectReq.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer := s.newRaytracer(inspectReq, core.NopLogger{})
	result := inspectPixel(sceneObj, raytracer, inspectReq.Width, inspectReq.Height, pixelX, pixelY)

	if !result.Hit.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(result.Color)})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.Hit.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Object, result.Hit)

	hit := result.Hit
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		Color:        hexColor(result.Color),
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.Distance,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
