package material

import "github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"

// SurfaceInteraction is a ray hit together with everything shading needs
type SurfaceInteraction struct {
	core.HitRecord
	Fill     Fill      // Fill of the surface that was hit
	View     core.Vec3 // Unit vector from the hit point back toward the ray origin
	RayDepth int       // Reflection bounces taken by the ray that produced the hit
}

// NewSurfaceInteraction completes a geometric hit made by ray
func NewSurfaceInteraction(hit core.HitRecord, fill Fill, ray core.Ray) SurfaceInteraction {
	return SurfaceInteraction{
		HitRecord: hit,
		Fill:      fill,
		View:      ray.Origin.Subtract(hit.Point).Normalize(),
		RayDepth:  ray.Depth,
	}
}
