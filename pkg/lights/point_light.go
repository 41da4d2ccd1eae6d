package lights

import (
	"math"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// PointLight is an infinitely small light at Position
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3 // Intensity per channel
}

// NewPointLight creates a colored point light
func NewPointLight(position, color core.Vec3) PointLight {
	return PointLight{Position: position, Color: color}
}

// DefaultIntensity is the gray level given to each of count uncolored lights
// so that total brightness does not grow with the number of lights.
func DefaultIntensity(count int) float64 {
	if count <= 0 {
		return 0
	}
	return 1.0 / math.Sqrt(float64(count))
}

// NormalizeIntensities sets every light to DefaultIntensity(len(lights)).
// Scene loaders call it when no light declared a color.
func NormalizeIntensities(lights []PointLight) {
	intensity := core.Splat(DefaultIntensity(len(lights)))
	for i := range lights {
		lights[i].Color = intensity
	}
}
