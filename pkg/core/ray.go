package core

// Ray represents a ray with an origin, a direction and the number of
// reflection bounces taken to reach it. Primary rays have depth 0.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Depth     int
}

// NewRay creates a new primary ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayWithDepth creates a ray that has already bounced depth times
func NewRayWithDepth(origin, direction Vec3, depth int) Ray {
	return Ray{Origin: origin, Direction: direction, Depth: depth}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Normalized returns a copy of the ray with a unit-length direction
func (r Ray) Normalized() Ray {
	r.Direction = r.Direction.Normalize()
	return r
}
