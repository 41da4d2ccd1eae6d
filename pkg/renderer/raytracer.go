package renderer

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/geometry"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/integrator"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

// Raytracer owns a scene and its output image and drives the per-pixel
// loop: camera ray, nearest hit, shading, accumulation.
type Raytracer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     RenderConfig
	random     *rand.Rand
	image      *Image
	logger     core.Logger
}

// NewRaytracer creates a raytracer for s using the Whitted integrator
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	return NewRaytracerWithIntegrator(s, config, integrator.NewWhittedIntegrator(config.WhittedConfig()), logger)
}

// NewRaytracerWithIntegrator creates a raytracer with a custom integrator
func NewRaytracerWithIntegrator(s *scene.Scene, config RenderConfig, integratorInst integrator.Integrator, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cameraConfig := s.CameraConfig
	if cameraConfig.Width <= 0 || cameraConfig.Height <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %dx%d",
			ErrInvalidConfig, cameraConfig.Width, cameraConfig.Height)
	}
	cameraConfig.Aperture = config.Aperture

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Raytracer{
		scene:      s,
		camera:     geometry.NewCamera(cameraConfig),
		integrator: integratorInst,
		config:     config,
		random:     rand.New(rand.NewSource(seed)),
		image:      NewImage(cameraConfig.Width, cameraConfig.Height),
		logger:     core.LoggerOrNop(logger),
	}, nil
}

// Image returns the output buffer
func (rt *Raytracer) Image() *Image {
	return rt.image
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *geometry.Camera {
	return rt.camera
}

// RenderImage renders every pixel of the image in place
func (rt *Raytracer) RenderImage() RenderStats {
	rt.logger.Printf("Rendering %dx%d, %d primitives, %d lights, %d samples per pixel, max depth %d\n",
		rt.image.Width, rt.image.Height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights),
		rt.config.Samples, rt.config.MaxRayDepth)

	start := time.Now()
	stats := rt.RenderBounds(rt.image.Bounds())
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Elapsed, stats.TotalSamples)
	return stats
}

// RenderBounds renders the pixels within bounds, clipped to the image
func (rt *Raytracer) RenderBounds(bounds image.Rectangle) RenderStats {
	bounds = bounds.Intersect(rt.image.Bounds())
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	tMin := rt.camera.Config().Hither
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			for sample := 0; sample < rt.config.Samples; sample++ {
				ray := rt.camera.GetRay(i, j, rt.random)
				ps.AddSample(rt.integrator.RayColor(ray, rt.scene, tMin, math.MaxFloat64))
			}
			rt.image.Set(i, j, ps.GetColor())
			stats.TotalSamples += ps.SampleCount
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
