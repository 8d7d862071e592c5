package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewClampsPhysicalParameters(t *testing.T) {
	m := New(core.White, 10, [4]float64{1, 0, 0, 0}, 0.5, 1.7)
	if m.RefractiveIndex != 1.0 {
		t.Errorf("RefractiveIndex = %f, want 1.0", m.RefractiveIndex)
	}
	if m.Transparency != 1.0 {
		t.Errorf("Transparency = %f, want 1.0", m.Transparency)
	}

	m = New(core.White, 10, [4]float64{1, 0, 0, 0}, 1.5, -0.2)
	if m.Transparency != 0 {
		t.Errorf("Transparency = %f, want 0", m.Transparency)
	}
}

func TestMaterialFlags(t *testing.T) {
	tests := []struct {
		name       string
		material   Material
		reflective bool
		refractive bool
	}{
		{"rubber", Rubber(), false, false},
		{"ivory", Ivory(), true, false},
		{"mirror", Mirror(), true, false},
		{"glass", Glass(), true, true},
		{"water", Water(), true, true},
		{"opaque with refractive weight", New(core.White, 1, [4]float64{0, 0, 0, 0.9}, 1.5, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.material.IsReflective(); got != tt.reflective {
				t.Errorf("IsReflective() = %v, want %v", got, tt.reflective)
			}
			if got := tt.material.IsRefractive(); got != tt.refractive {
				t.Errorf("IsRefractive() = %v, want %v", got, tt.refractive)
			}
		})
	}
}

func TestPresetsRegistry(t *testing.T) {
	for name, preset := range Presets {
		m := preset()
		if m.RefractiveIndex < 1 {
			t.Errorf("%s: refractive index %f < 1", name, m.RefractiveIndex)
		}
		if m.Transparency < 0 || m.Transparency > 1 {
			t.Errorf("%s: transparency %f out of range", name, m.Transparency)
		}
	}
}
