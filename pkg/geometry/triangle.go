package geometry

import (
	"math"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// determinantEpsilon is the smallest |det| accepted, relative to the product
// of the two edge lengths and the ray direction length. It bounds the sine
// of the angle between the ray and the triangle plane.
const determinantEpsilon = 1e-12

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C core.Vec3 // The three vertices
	normal  core.Vec3 // Cached face normal
}

// NewTriangle creates a new triangle from three vertices.
// The face normal follows the winding: normalize((a-b) x (a-c)).
func NewTriangle(a, b, c core.Vec3) Triangle {
	return Triangle{
		A:      a,
		B:      b,
		C:      c,
		normal: a.Subtract(b).Cross(a.Subtract(c)).Normalize(),
	}
}

// Normal returns the triangle's face normal
func (tr Triangle) Normal() core.Vec3 {
	return tr.normal
}

// Det3 returns the determinant of the 3x3 matrix with columns a, b, c
func Det3(a, b, c core.Vec3) float64 {
	return a.X*(b.Y*c.Z-c.Y*b.Z) +
		b.X*(c.Y*a.Z-a.Y*c.Z) +
		c.X*(a.Y*b.Z-b.Y*a.Z)
}

// Intersect solves e + t*d = a + beta*(b-a) + gamma*(c-a) with Cramer's rule
func (tr Triangle) Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	ba := tr.A.Subtract(tr.B)
	ca := tr.A.Subtract(tr.C)
	ea := tr.A.Subtract(ray.Origin)

	detA := Det3(ba, ca, ray.Direction)
	scale := ba.Length() * ca.Length() * ray.Direction.Length()
	// Ray parallel to the triangle plane, or a degenerate triangle
	if scale == 0 || math.Abs(detA) <= determinantEpsilon*scale {
		return core.HitRecord{}, false
	}

	t := Det3(ba, ca, ea) / detA
	if math.IsNaN(t) || math.IsInf(t, 0) || t < tMin || t > tMax {
		return core.HitRecord{}, false
	}

	beta := Det3(ea, ca, ray.Direction) / detA
	if beta < 0 || beta > 1 {
		return core.HitRecord{}, false
	}

	gamma := Det3(ba, ea, ray.Direction) / detA
	if gamma < 0 || gamma > 1-beta {
		return core.HitRecord{}, false
	}

	return core.HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: tr.normal,
		Alpha:  1 - beta - gamma,
		Beta:   beta,
		Gamma:  gamma,
	}, true
}
