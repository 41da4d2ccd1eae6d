package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:    core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Angle:  90,
		Width:  100,
		Height: 100,
	}
}

func TestCamera_Basis(t *testing.T) {
	camera := NewCamera(testCameraConfig())
	u, v, w := camera.Basis()

	expected := []struct {
		name     string
		got      core.Vec3
		expected core.Vec3
	}{
		{"u", u, core.NewVec3(1, 0, 0)},
		{"v", v, core.NewVec3(0, 1, 0)},
		{"w", w, core.NewVec3(0, 0, 1)},
	}
	for _, e := range expected {
		if e.got.Subtract(e.expected).Length() > 1e-12 {
			t.Errorf("Expected %s=%v, got %v", e.name, e.expected, e.got)
		}
	}

	// 90 degree field of view at distance 1 spans [-1, 1]
	if math.Abs(camera.HalfSize()-1) > 1e-12 {
		t.Errorf("Expected half size 1, got %f", camera.HalfSize())
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	config := testCameraConfig()
	config.Eye = core.NewVec3(3, 4, 5)
	config.LookAt = core.NewVec3(-1, 0, 2)
	config.Up = core.NewVec3(0.2, 1, 0)
	u, v, w := NewCamera(config).Basis()

	for name, vec := range map[string]core.Vec3{"u": u, "v": v, "w": w} {
		if math.Abs(vec.Length()-1) > 1e-12 {
			t.Errorf("%s is not unit length: %v", name, vec)
		}
	}
	if math.Abs(u.Dot(v)) > 1e-12 || math.Abs(u.Dot(w)) > 1e-12 || math.Abs(v.Dot(w)) > 1e-12 {
		t.Errorf("Basis is not orthogonal: u=%v v=%v w=%v", u, v, w)
	}
}

func TestCamera_RayThrough(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	tests := []struct {
		name      string
		i, j      int
		dx, dy    float64
		direction core.Vec3
	}{
		{"image center", 50, 50, 0, 0, core.NewVec3(0, 0, -1)},
		{"top left corner", 0, 0, 0, 0, core.NewVec3(-1, 1, -1).Normalize()},
		{"bottom right corner", 99, 99, 1, 1, core.NewVec3(1, -1, -1).Normalize()},
		{"right edge middle", 100, 50, 0, 0, core.NewVec3(1, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.RayThrough(tt.i, tt.j, tt.dx, tt.dy)

			if ray.Origin != camera.Config().Eye {
				t.Errorf("Expected origin at eye, got %v", ray.Origin)
			}
			if ray.Depth != 0 {
				t.Errorf("Expected primary ray depth 0, got %d", ray.Depth)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_GetRayJitter(t *testing.T) {
	camera := NewCamera(testCameraConfig())
	random := rand.New(rand.NewSource(42))

	// Jittered rays for pixel (10, 20) stay within JitterSpan pixels of its corner
	pixel := 2.0 / 100.0
	for k := 0; k < 200; k++ {
		ray := camera.GetRay(10, 20, random)
		if math.Abs(ray.Direction.Length()-1) > 1e-12 {
			t.Fatalf("Expected unit direction, got %v", ray.Direction)
		}

		// Project back onto the image plane at distance 1
		x := ray.Direction.X / -ray.Direction.Z
		y := ray.Direction.Y / -ray.Direction.Z
		minX := -1 + 10*pixel
		maxY := 1 - 20*pixel
		if x < minX-1e-12 || x > minX+JitterSpan*pixel+1e-12 {
			t.Fatalf("x=%f outside jitter range", x)
		}
		if y > maxY+1e-12 || y < maxY-JitterSpan*pixel-1e-12 {
			t.Fatalf("y=%f outside jitter range", y)
		}
	}
}

func TestCamera_ApertureIsInert(t *testing.T) {
	config := testCameraConfig()
	pinhole := NewCamera(config)
	config.Aperture = 2.5
	wide := NewCamera(config)

	a := pinhole.RayThrough(30, 70, 0.5, 0.5)
	b := wide.RayThrough(30, 70, 0.5, 0.5)
	if a != b {
		t.Errorf("Aperture changed the primary ray: %v vs %v", a, b)
	}
}
