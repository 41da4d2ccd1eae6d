package core

// HitRecord contains the geometric result of a ray-surface intersection
type HitRecord struct {
	T      float64 // Parameter t along the ray
	Point  Vec3    // Point of intersection
	Normal Vec3    // Unit surface normal at intersection

	// Barycentric coordinates; only set for triangle hits
	Alpha, Beta, Gamma float64
}
