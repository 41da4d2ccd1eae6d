package integrator

import (
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the color seen along ray, searching hits in [tMin, tMax]
	RayColor(ray core.Ray, scene *scene.Scene, tMin, tMax float64) core.Vec3
}
