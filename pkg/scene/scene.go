package scene

import (
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/geometry"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/lights"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/material"
)

// Object pairs a surface with the fill it was declared with
type Object struct {
	Surface geometry.Surface
	Fill    material.Fill
}

// Scene contains all the elements needed for rendering. Objects and Lights
// must not change once rendering has started.
type Scene struct {
	Objects      []Object             // Surfaces in declaration order
	Lights       []lights.PointLight  // Point lights
	Background   core.Vec3            // Color of rays that hit nothing
	CameraConfig geometry.CameraConfig // View parameters
}

// NewScene creates an empty scene viewed through cameraConfig
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Objects:      make([]Object, 0),
		Lights:       make([]lights.PointLight, 0),
		CameraConfig: cameraConfig,
	}
}

// Add appends surfaces that share one fill
func (s *Scene) Add(fill material.Fill, surfaces ...geometry.Surface) {
	for _, surface := range surfaces {
		s.Objects = append(s.Objects, Object{Surface: surface, Fill: fill})
	}
}

// AddLight appends a point light
func (s *Scene) AddLight(light lights.PointLight) {
	s.Lights = append(s.Lights, light)
}

// Camera builds the camera described by the scene's view parameters
func (s *Scene) Camera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// FindNearest returns the closest hit along ray with t in [tMin, tMax].
// Every accepted hit narrows tMax, so later objects can only replace it
// with a nearer one.
func (s *Scene) FindNearest(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	var closest core.HitRecord
	closestIndex := -1

	for i := range s.Objects {
		if hit, ok := s.Objects[i].Surface.Intersect(ray, tMin, tMax); ok {
			tMax = hit.T
			closest = hit
			closestIndex = i
		}
	}

	if closestIndex < 0 {
		return material.SurfaceInteraction{}, false
	}
	return material.NewSurfaceInteraction(closest, s.Objects[closestIndex].Fill, ray), true
}

// Occluded reports whether anything intersects ray with t in [tMin, tMax]
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	for i := range s.Objects {
		if _, ok := s.Objects[i].Surface.Intersect(ray, tMin, tMax); ok {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// CountByKind returns how many surfaces of each kind the scene holds
func (s *Scene) CountByKind() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for i := range s.Objects {
		counts[s.Objects[i].Surface.Kind]++
	}
	return counts
}
