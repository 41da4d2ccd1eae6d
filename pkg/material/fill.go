package material

import "github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"

// Fill describes how a surface responds to light
type Fill struct {
	Color core.Vec3 // Base color
	Kd    float64   // Diffuse coefficient
	Ks    float64   // Specular coefficient, also scales mirror reflection
	Shine float64   // Phong shininess exponent

	// Transmission and index of refraction are read from scene files but
	// the tracer has no refraction path.
	T   float64
	IOR float64
}

// NewFill creates a fill without transmission
func NewFill(color core.Vec3, kd, ks, shine float64) Fill {
	return Fill{Color: color, Kd: kd, Ks: ks, Shine: shine, IOR: 1}
}
