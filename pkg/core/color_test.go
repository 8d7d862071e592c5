package core

import (
	"image/color"
	"testing"
)

func TestColor_ToRGBASaturates(t *testing.T) {
	tests := []struct {
		name     string
		input    Color
		expected color.RGBA
	}{
		{"black", Black, color.RGBA{0, 0, 0, 255}},
		{"white", White, color.RGBA{255, 255, 255, 255}},
		{"overbright clamps instead of wrapping", NewColor(2.5, 1.01, 300), color.RGBA{255, 255, 255, 255}},
		{"negative clamps to zero", NewColor(-1, -0.2, 0), color.RGBA{0, 0, 0, 255}},
		{"mid gray rounds", NewColor(0.5, 0.5, 0.5), color.RGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.ToRGBA(); got != tt.expected {
				t.Errorf("ToRGBA(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestColor_RGB8RoundTrip(t *testing.T) {
	for _, v := range []uint8{0, 1, 17, 128, 254, 255} {
		c := NewColorRGB8(v, v, v)
		if got := c.ToRGBA(); got.R != v || got.G != v || got.B != v {
			t.Errorf("RGB8 %d round-tripped to %v", v, got)
		}
	}
}

func TestColor_Arithmetic(t *testing.T) {
	a := NewColor(0.2, 0.4, 0.6)
	b := NewColor(0.5, 0.5, 2)

	if got := a.Add(b); !colorApprox(got, NewColor(0.7, 0.9, 2.6)) {
		t.Errorf("Add = %v", got)
	}
	if got := a.MultiplyColor(b); !colorApprox(got, NewColor(0.1, 0.2, 1.2)) {
		t.Errorf("MultiplyColor = %v", got)
	}
	if got := a.Multiply(0); got != Black {
		t.Errorf("Multiply(0) = %v", got)
	}
}

func TestColorFromRGBA(t *testing.T) {
	got := ColorFromRGBA(color.RGBA{255, 0, 255, 255})
	if !colorApprox(got, NewColor(1, 0, 1)) {
		t.Errorf("ColorFromRGBA = %v", got)
	}
}

func colorApprox(a, b Color) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}
