package geometry

import (
	"math"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s Sphere) Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	ec := ray.Origin.Subtract(s.Center)

	// |d|^2 t^2 + 2 (d.(e-c)) t + |e-c|^2 - r^2 = 0
	a := ray.Direction.LengthSquared()
	halfB := ray.Direction.Dot(ec)
	c := ec.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return core.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	root1 := (-halfB + sqrtD) / a
	root2 := (-halfB - sqrtD) / a

	// Nearest intersection in front of the origin. A ray starting on the
	// surface and heading inward has root2 == 0 and reports the far side.
	t := root1
	if root1 < 0 || (root2 > 0 && root2 < root1) {
		t = root2
	}
	if t < tMin || t > tMax {
		return core.HitRecord{}, false
	}

	point := ray.At(t)
	return core.HitRecord{
		T:      t,
		Point:  point,
		Normal: point.Subtract(s.Center).Divide(s.Radius),
	}, true
}
