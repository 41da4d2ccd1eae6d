package geometry

import "github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"

// TrianglePatch is a triangle with per-vertex normals for smooth shading
type TrianglePatch struct {
	Triangle
	N1, N2, N3 core.Vec3
}

// NewTrianglePatch creates a triangle patch; n1..n3 belong to a..c
func NewTrianglePatch(a, b, c, n1, n2, n3 core.Vec3) TrianglePatch {
	return TrianglePatch{
		Triangle: NewTriangle(a, b, c),
		N1:       n1,
		N2:       n2,
		N3:       n3,
	}
}

// Intersect hits the underlying triangle and replaces the face normal with
// the barycentric blend of the vertex normals.
func (p TrianglePatch) Intersect(ray core.Ray, tMin, tMax float64) (core.HitRecord, bool) {
	hit, ok := p.Triangle.Intersect(ray, tMin, tMax)
	if !ok {
		return hit, false
	}

	n := p.N1.Multiply(hit.Alpha).
		Add(p.N2.Multiply(hit.Beta)).
		Add(p.N3.Multiply(hit.Gamma)).
		Normalize()
	// Opposing vertex normals can cancel out; keep the face normal then
	if !n.IsZero() {
		hit.Normal = n
	}
	return hit, true
}
