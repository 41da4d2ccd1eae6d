package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/integrator"
)

// ErrInvalidConfig is returned when a render configuration cannot be used
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Aperture    float64 `toml:"aperture"`      // Lens aperture; recorded on the camera, has no effect
	Samples     int     `toml:"samples"`       // Jittered rays per pixel
	MaxRayDepth int     `toml:"max_ray_depth"` // Reflection recursion cap
	FlatColor   bool    `toml:"flat_color"`    // Skip lighting and show fill colors
	Seed        int64   `toml:"seed"`          // Jitter seed; 0 picks one from the clock
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Aperture:    0.0,
		Samples:     1,
		MaxRayDepth: integrator.DefaultMaxDepth,
	}
}

// Validate checks that the configuration can drive a render
func (c RenderConfig) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.MaxRayDepth < 0 {
		return fmt.Errorf("%w: max ray depth must not be negative, got %d", ErrInvalidConfig, c.MaxRayDepth)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("%w: aperture must not be negative, got %g", ErrInvalidConfig, c.Aperture)
	}
	return nil
}

// WhittedConfig returns the integrator settings implied by the configuration
func (c RenderConfig) WhittedConfig() integrator.WhittedConfig {
	return integrator.WhittedConfig{
		MaxDepth:  c.MaxRayDepth,
		FlatColor: c.FlatColor,
	}
}

// LoadRenderConfig reads a TOML file on top of base. Keys the file does not
// set keep their value from base; unknown keys are an error.
//
//	samples = 16
//	max_ray_depth = 3
//	flat_color = false
func LoadRenderConfig(path string, base RenderConfig) (RenderConfig, error) {
	config := base
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return base, fmt.Errorf("failed to read render config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return base, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return base, fmt.Errorf("render config %s: %w", path, err)
	}
	return config, nil
}
