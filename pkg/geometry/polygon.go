package geometry

import (
	"errors"
	"fmt"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

var (
	// ErrNonPlanarPolygon is returned for quads that are not flat and convex
	ErrNonPlanarPolygon = errors.New("polygon is not planar or not convex")
	// ErrUnsupportedPolygon is returned for polygons that are neither triangles nor quads
	ErrUnsupportedPolygon = errors.New("polygon must have 3 or 4 vertices")
)

// TriangulatePolygon turns a triangle or quad into surfaces. Quads split
// along the 0-2 diagonal and are accepted only when the normals at all four
// corners point the same way. When patch is set, normals must hold one
// normal per vertex.
func TriangulatePolygon(vertices, normals []core.Vec3, patch bool) ([]Surface, error) {
	if patch && len(normals) != len(vertices) {
		return nil, fmt.Errorf("patch has %d vertices but %d normals", len(vertices), len(normals))
	}

	makeSurface := func(i, j, k int) Surface {
		if patch {
			return PatchSurface(vertices[i], vertices[j], vertices[k], normals[i], normals[j], normals[k])
		}
		return TriangleSurface(vertices[i], vertices[j], vertices[k])
	}

	switch len(vertices) {
	case 3:
		return []Surface{makeSurface(0, 1, 2)}, nil
	case 4:
		if !isFlatConvexQuad(vertices) {
			return nil, ErrNonPlanarPolygon
		}
		return []Surface{makeSurface(0, 1, 2), makeSurface(0, 2, 3)}, nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedPolygon, len(vertices))
	}
}

func isFlatConvexQuad(v []core.Vec3) bool {
	n0 := v[1].Subtract(v[0]).Cross(v[2].Subtract(v[0]))
	n1 := v[2].Subtract(v[1]).Cross(v[3].Subtract(v[1]))
	n2 := v[3].Subtract(v[2]).Cross(v[0].Subtract(v[2]))
	n3 := v[0].Subtract(v[3]).Cross(v[1].Subtract(v[3]))
	return n0.Dot(n1) > 0 && n0.Dot(n2) > 0 && n0.Dot(n3) > 0
}
