package integrator

import (
	"math"
	"testing"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/geometry"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/lights"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/material"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

const tolerance = 1e-9

func colorNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() <= tolerance
}

// floorScene has an upward-facing floor triangle around the origin
func floorScene(floorFill material.Fill) *scene.Scene {
	s := scene.NewScene(geometry.CameraConfig{})
	s.Add(floorFill, geometry.TriangleSurface(
		core.NewVec3(-10, 0, 10),
		core.NewVec3(10, 0, 10),
		core.NewVec3(0, 0, -10),
	))
	return s
}

// hitFloorFromAbove returns the hit made by a ray dropping onto the origin
func hitFloorFromAbove(t *testing.T, s *scene.Scene) material.SurfaceInteraction {
	t.Helper()
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit, ok := s.FindNearest(ray, 0, math.MaxFloat64)
	if !ok {
		t.Fatal("Expected to hit the floor")
	}
	if hit.Point.Length() > tolerance {
		t.Fatalf("Expected hit at origin, got %v", hit.Point)
	}
	return hit
}

func TestWhitted_FlatColor(t *testing.T) {
	fill := material.NewFill(core.NewVec3(0.3, 0.6, 0.9), 0.5, 0.5, 10)
	s := floorScene(fill)
	// Would be shadowed and lit without flat mode
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 10, 0), core.Splat(1)))
	s.Add(fill, geometry.SphereSurface(core.NewVec3(0, 5, 0), 1))

	wi := NewWhittedIntegrator(WhittedConfig{MaxDepth: 5, FlatColor: true})
	got := wi.Shade(hitFloorFromAbove(t, s), s)

	if got != fill.Color {
		t.Errorf("Expected flat color %v, got %v", fill.Color, got)
	}
}

func TestWhitted_DirectLighting(t *testing.T) {
	fill := material.NewFill(core.NewVec3(1, 0.5, 0.25), 0.6, 0.4, 8)
	s := floorScene(fill)
	lightPos := core.NewVec3(5, 10, 0)
	lightColor := core.NewVec3(0.5, 1, 1)
	s.AddLight(lights.NewPointLight(lightPos, lightColor))

	wi := NewWhittedIntegrator(DefaultWhittedConfig())
	hit := hitFloorFromAbove(t, s)
	got := wi.Shade(hit, s)

	l := lightPos.Normalize()
	n := core.NewVec3(0, 1, 0)
	v := core.NewVec3(0, 1, 0)
	r := n.Multiply(2 * l.Dot(n)).Subtract(l)
	intensity := fill.Kd*l.Dot(n) + fill.Ks*math.Pow(r.Dot(v), fill.Shine) + AmbientTerm
	expected := lightColor.MultiplyVec(fill.Color).Multiply(intensity)

	// The mirror bounce escapes to the background and adds nothing
	if !colorNear(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWhitted_LightBelowSurface(t *testing.T) {
	fill := material.NewFill(core.NewVec3(1, 1, 1), 1, 0, 1)
	s := scene.NewScene(geometry.CameraConfig{})
	// Single triangle, so the light underneath is not blocked
	s.Add(fill, geometry.TriangleSurface(
		core.NewVec3(-1, 0, 1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(0, 0, -1),
	))
	s.AddLight(lights.NewPointLight(core.NewVec3(3, -3, 0), core.Splat(1)))

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit, ok := s.FindNearest(ray, 0, math.MaxFloat64)
	if !ok {
		t.Fatal("Expected hit")
	}

	// Diffuse clamps to zero; only the ambient term remains
	got := NewWhittedIntegrator(DefaultWhittedConfig()).Shade(hit, s)
	expected := core.Splat(AmbientTerm)
	if !colorNear(got, expected) {
		t.Errorf("Expected ambient only %v, got %v", expected, got)
	}
}

func TestWhitted_ShadowedLightContributesNothing(t *testing.T) {
	floorFill := material.NewFill(core.NewVec3(1, 1, 1), 0.8, 0, 10)
	occluderFill := material.NewFill(core.NewVec3(1, 0, 0), 1, 0, 1)

	s := floorScene(floorFill)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 10, 0), core.Splat(1)))
	s.Add(occluderFill, geometry.SphereSurface(core.NewVec3(0, 5, 0), 1))

	wi := NewWhittedIntegrator(DefaultWhittedConfig())
	got := wi.Shade(hitFloorFromAbove(t, s), s)
	if !got.IsZero() {
		t.Errorf("Expected zero color for shadowed point, got %v", got)
	}

	// A second, visible light contributes exactly its own share
	s.AddLight(lights.NewPointLight(core.NewVec3(10, 10, 0), core.Splat(1)))
	got = wi.Shade(hitFloorFromAbove(t, s), s)

	cosine := core.NewVec3(1, 1, 0).Normalize().Y
	expected := core.Splat(floorFill.Kd*cosine + AmbientTerm)
	if !colorNear(got, expected) {
		t.Errorf("Expected only the visible light %v, got %v", expected, got)
	}
}

func TestWhitted_SphereShadowsItself(t *testing.T) {
	s := scene.NewScene(geometry.CameraConfig{})
	s.Add(material.NewFill(core.NewVec3(1, 1, 1), 0.8, 0.2, 10),
		geometry.SphereSurface(core.NewVec3(0, 0, -10), 1))
	// Light directly behind the sphere as seen from the camera
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 0, -20), core.Splat(1)))

	wi := NewWhittedIntegrator(DefaultWhittedConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := wi.RayColor(ray, s, 1e-3, math.MaxFloat64)
	if !got.IsZero() {
		t.Errorf("Expected front face to be black with the light behind the sphere, got %v", got)
	}

	// The same light moved in front of the sphere lights the face
	s.Lights[0].Position = core.NewVec3(0, 0, 0)
	if got := wi.RayColor(ray, s, 1e-3, math.MaxFloat64); got.IsZero() {
		t.Error("Expected front face to be lit with the light in front")
	}
}

// mirrorScene is a reflective floor under a small green ceiling patch. The
// light sits off to the side so the patch does not shadow the floor.
func mirrorScene() (*scene.Scene, material.Fill) {
	floorFill := material.NewFill(core.NewVec3(1, 1, 1), 0.5, 0.5, 1)
	s := floorScene(floorFill)
	s.Add(material.NewFill(core.NewVec3(0, 1, 0), 1, 0, 1), geometry.TriangleSurface(
		core.NewVec3(-1, 3, 1),
		core.NewVec3(0, 3, -1),
		core.NewVec3(1, 3, 1),
	))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 10, 0), core.Splat(1)))
	return s, floorFill
}

func TestWhitted_ReflectionDepth(t *testing.T) {
	s, floorFill := mirrorScene()

	l := core.NewVec3(5, 10, 0).Normalize()
	direct := core.Splat(floorFill.Kd*l.Y + floorFill.Ks*l.Y + AmbientTerm)
	// The patch faces away from the light, so it only shows its ambient term
	reflected := core.NewVec3(0, AmbientTerm, 0).Multiply(floorFill.Ks)

	tests := []struct {
		maxDepth int
		expected core.Vec3
	}{
		{0, direct},
		{1, direct},
		{2, direct.Add(reflected)},
		{5, direct.Add(reflected)},
	}

	for _, tt := range tests {
		wi := NewWhittedIntegrator(WhittedConfig{MaxDepth: tt.maxDepth})
		got := wi.Shade(hitFloorFromAbove(t, s), s)
		if !colorNear(got, tt.expected) {
			t.Errorf("MaxDepth %d: expected %v, got %v", tt.maxDepth, tt.expected, got)
		}
	}
}

func TestWhitted_ReflectionBetweenMirrors(t *testing.T) {
	// Two facing mirrors with no lights: every bounce adds nothing, and the
	// recursion must still stop
	s := scene.NewScene(geometry.CameraConfig{})
	mirror := material.NewFill(core.NewVec3(1, 1, 1), 0, 1, 1)
	s.Add(mirror, geometry.TriangleSurface(core.NewVec3(-10, 0, 10), core.NewVec3(10, 0, 10), core.NewVec3(0, 0, -10)))
	s.Add(mirror, geometry.TriangleSurface(core.NewVec3(-10, 2, 10), core.NewVec3(0, 2, -10), core.NewVec3(10, 2, 10)))

	wi := NewWhittedIntegrator(WhittedConfig{MaxDepth: 50})
	got := wi.RayColor(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), s, 0, math.MaxFloat64)
	if !got.IsZero() {
		t.Errorf("Expected black without lights, got %v", got)
	}
}

func TestWhitted_RayColorBackground(t *testing.T) {
	s := scene.NewScene(geometry.CameraConfig{})
	s.Background = core.NewVec3(0.2, 0.3, 0.4)

	wi := NewWhittedIntegrator(DefaultWhittedConfig())
	got := wi.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, 0, math.MaxFloat64)
	if got != s.Background {
		t.Errorf("Expected background %v, got %v", s.Background, got)
	}
}

func TestWhitted_ImplementsIntegrator(t *testing.T) {
	var _ Integrator = NewWhittedIntegrator(DefaultWhittedConfig())

	if DefaultWhittedConfig().MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected default depth %d, got %d", DefaultMaxDepth, DefaultWhittedConfig().MaxDepth)
	}
}
