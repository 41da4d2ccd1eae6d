package geometry

import (
	"fmt"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// Kind identifies which primitive a Surface holds
type Kind uint8

const (
	KindTriangle Kind = iota
	KindTrianglePatch
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindTrianglePatch:
		return "patch"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Surface is one of the fixed set of primitives the tracer understands.
// Only the field matching Kind is meaningful.
type Surface struct {
	Kind   Kind
	Patch  TrianglePatch // Triangle data lives in Patch.Triangle for both triangle kinds
	Sphere Sphere
}

// TriangleSurface wraps a triangle
func TriangleSurface(a, b, c core.Vec3) Surface {
	return Surface{Kind: KindTriangle, Patch: TrianglePatch{Triangle: NewTriangle(a, b, c)}}
}

// PatchSurface wraps a triangle patch
func PatchSurface(a, b, c, n1, n2, n3 core.Vec3) Surface {
	return Surface{Kind: KindTrianglePatch, Patch: NewTrianglePatch(a, b, c, n1, n2, n3)}
}

// SphereSurface wraps a sphere
func SphereSurface(center core.Vec3, radius float64) Surface {
	return Surface{Kind: KindSphere, Sphere: NewSphere(center, radius)}
}

// Intersect dispatches to the primitive's intersection routine
func (s *Surface) Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	switch s.Kind {
	case KindTriangle:
		return s.Patch.Triangle.Intersect(ray, tMin, tMax)
	case KindTrianglePatch:
		return s.Patch.Intersect(ray, tMin, tMax)
	case KindSphere:
		return s.Sphere.Intersect(ray, tMin, tMax)
	default:
		return core.HitRecord{}, false
	}
}
