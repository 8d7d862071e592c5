package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	pitchLimit      = math.Pi/2 - 0.1 // Orbit keeps the eye this far from the poles
	MinZoomDistance = 0.5             // Zoom never brings the eye closer than this to the center
)

// Camera looks from Eye toward Center. It is mutated only between render
// passes by Orbit and Zoom, and read concurrently during a pass.
type Camera struct {
	Eye    core.Vec3 // Camera position in world space
	Center core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Approximate up direction
}

// NewCamera creates a camera
func NewCamera(eye, center, up core.Vec3) *Camera {
	return &Camera{
		Eye:    eye,
		Center: center,
		Up:     up,
	}
}

// Basis returns the orthonormal view basis. It is unstable when the view
// direction is parallel to Up.
func (c *Camera) Basis() (right, up, forward core.Vec3) {
	forward = c.Center.Subtract(c.Eye).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// BasisChange transforms a camera-space direction, where -Z looks toward
// Center, into a normalized world-space direction
func (c *Camera) BasisChange(v core.Vec3) core.Vec3 {
	right, up, forward := c.Basis()

	return right.Multiply(v.X).
		Add(up.Multiply(v.Y)).
		Subtract(forward.Multiply(v.Z)).
		Normalize()
}

// Orbit rotates the eye around Center on a sphere of constant radius.
// Yaw is measured in the XZ plane from +X, pitch is positive below the
// horizon. Pitch is clamped short of the poles.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	if deltaYaw == 0 && deltaPitch == 0 {
		return
	}

	radiusVector := c.Eye.Subtract(c.Center)
	radius := radiusVector.Length()

	yaw := math.Atan2(radiusVector.Z, radiusVector.X)
	radiusXZ := math.Sqrt(radiusVector.X*radiusVector.X + radiusVector.Z*radiusVector.Z)
	pitch := math.Atan2(-radiusVector.Y, radiusXZ)

	newYaw := math.Mod(yaw+deltaYaw, 2*math.Pi)
	if newYaw < 0 {
		newYaw += 2 * math.Pi
	}
	newPitch := mgl64.Clamp(pitch+deltaPitch, -pitchLimit, pitchLimit)

	c.Eye = c.Center.Add(core.NewVec3(
		radius*math.Cos(newYaw)*math.Cos(newPitch),
		-radius*math.Sin(newPitch),
		radius*math.Sin(newYaw)*math.Cos(newPitch),
	))
}

// Zoom moves the eye toward Center by step (away for negative step),
// stopping MinZoomDistance short of Center
func (c *Camera) Zoom(step float64) {
	toCenter := c.Center.Subtract(c.Eye)
	distance := toCenter.Length()
	if distance == 0 {
		return
	}

	newDistance := max(MinZoomDistance, distance-step)
	if distance < MinZoomDistance && step > 0 {
		// Already closer than the limit; never move further in
		newDistance = distance
	}

	c.Eye = c.Center.Subtract(toCenter.Multiply(newDistance / distance))
}

// Distance returns the distance from Eye to Center
func (c *Camera) Distance() float64 {
	return c.Center.Subtract(c.Eye).Length()
}
