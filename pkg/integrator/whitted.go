package integrator

import (
	"math"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/material"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

const (
	// AmbientTerm is added for every light that reaches a point
	AmbientTerm = 0.1

	// ShadowEpsilon keeps shadow rays from hitting the surface they start on
	ShadowEpsilon = 1e-5
	// ShadowFar is the far end of the shadow ray search
	ShadowFar = 1e5

	// ReflectionEpsilon keeps reflected rays from hitting the surface they start on
	ReflectionEpsilon = 1e-4

	// DefaultMaxDepth is the reflection depth used when none is configured
	DefaultMaxDepth = 5
)

// WhittedConfig controls the Whitted integrator
type WhittedConfig struct {
	MaxDepth  int  // Reflected hits at this depth or deeper are not shaded
	FlatColor bool // Return fill colors without lighting
}

// DefaultWhittedConfig returns the standard settings
func DefaultWhittedConfig() WhittedConfig {
	return WhittedConfig{MaxDepth: DefaultMaxDepth}
}

// WhittedIntegrator implements Whitted-style ray tracing: Phong direct
// lighting with hard shadows from point lights plus recursive mirror
// reflection scaled by the specular coefficient.
type WhittedIntegrator struct {
	config WhittedConfig
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config WhittedConfig) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// Config returns the integrator's settings
func (wi *WhittedIntegrator) Config() WhittedConfig {
	return wi.config
}

// RayColor returns the shaded nearest hit, or the scene background on a miss
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene, tMin, tMax float64) core.Vec3 {
	hit, isHit := s.FindNearest(ray, tMin, tMax)
	if !isHit {
		return s.Background
	}
	return wi.Shade(hit, s)
}

// Shade returns the unclamped color leaving the hit point toward the viewer
func (wi *WhittedIntegrator) Shade(hit material.SurfaceInteraction, s *scene.Scene) core.Vec3 {
	if wi.config.FlatColor {
		return hit.Fill.Color
	}

	color := wi.directLighting(hit, s)
	return color.Add(wi.reflection(hit, s))
}

// directLighting sums the Phong contribution of every unoccluded light
func (wi *WhittedIntegrator) directLighting(hit material.SurfaceInteraction, s *scene.Scene) core.Vec3 {
	fill := hit.Fill
	normal := hit.Normal
	color := core.Vec3{}

	for _, light := range s.Lights {
		toLight := light.Position.Subtract(hit.Point).Normalize()

		// Any hit along the way blocks the light completely
		shadowRay := core.NewRay(hit.Point, toLight)
		if s.Occluded(shadowRay, ShadowEpsilon, ShadowFar) {
			continue
		}

		diffuse := fill.Kd * math.Max(0, toLight.Dot(normal))

		reflected := toLight.Reflect(normal).Normalize()
		specular := fill.Ks * math.Pow(math.Max(0, reflected.Dot(hit.View)), fill.Shine)

		intensity := diffuse + specular + AmbientTerm
		color = color.Add(light.Color.MultiplyVec(fill.Color).Multiply(intensity))
	}

	return color
}

// reflection traces one mirror bounce of the view direction and shades what
// it finds, scaled by the specular coefficient
func (wi *WhittedIntegrator) reflection(hit material.SurfaceInteraction, s *scene.Scene) core.Vec3 {
	depth := hit.RayDepth + 1
	if depth >= wi.config.MaxDepth || hit.Fill.Ks == 0 {
		return core.Vec3{}
	}

	direction := hit.View.Reflect(hit.Normal).Normalize()
	reflectedRay := core.NewRayWithDepth(hit.Point, direction, depth)

	reflectedHit, isHit := s.FindNearest(reflectedRay, ReflectionEpsilon, math.MaxFloat64)
	if !isHit {
		return core.Vec3{}
	}
	return wi.Shade(reflectedHit, s).Multiply(hit.Fill.Ks)
}
