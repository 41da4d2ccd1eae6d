package geometry

import (
	"math"
	"math/rand"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// JitterSpan is the range [0, JitterSpan) of the random sub-pixel offset.
// It is slightly wider than a pixel so neighbouring samples overlap.
const JitterSpan = 1.1

// CameraConfig contains the view parameters of a scene
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	Angle  float64   // Field of view in degrees, across the whole square image plane
	Hither float64   // Near distance; primary rays start their search here
	Width  int       // Image width in pixels
	Height int       // Image height in pixels

	// Aperture is accepted for completeness but not applied to ray origins
	Aperture float64
}

// Camera generates primary rays
type Camera struct {
	config   CameraConfig
	u, v, w  core.Vec3 // Orthonormal view basis, w points back toward the viewer
	distance float64   // |eye - lookAt|
	halfSize float64   // Half extent of the image plane
}

// NewCamera builds the view basis for config
func NewCamera(config CameraConfig) *Camera {
	w := config.Eye.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	distance := config.Eye.Subtract(config.LookAt).Length()
	halfSize := math.Tan(config.Angle*math.Pi/180.0/2.0) * distance

	return &Camera{
		config:   config,
		u:        u,
		v:        v,
		w:        w,
		distance: distance,
		halfSize: halfSize,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Basis returns the camera's u, v, w vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// HalfSize returns the half extent of the square image plane
func (c *Camera) HalfSize() float64 {
	return c.halfSize
}

// RayThrough returns the normalized primary ray through pixel (i, j) at
// sub-pixel offset (dx, dy). Row 0 is the top of the image.
func (c *Camera) RayThrough(i, j int, dx, dy float64) core.Ray {
	h := c.halfSize
	x := -h + 2*h*(float64(i)+dx)/float64(c.config.Width)
	y := h - 2*h*(float64(j)+dy)/float64(c.config.Height)

	direction := c.w.Multiply(-c.distance).
		Add(c.u.Multiply(x)).
		Add(c.v.Multiply(y))

	return core.NewRay(c.config.Eye, direction).Normalized()
}

// GetRay returns a jittered primary ray for pixel (i, j)
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	dx := JitterSpan * random.Float64()
	dy := JitterSpan * random.Float64()
	return c.RayThrough(i, j, dx, dy)
}
