package scene

import (
	"fmt"
	"sort"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/geometry"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/lights"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/material"
)

var builtinScenes = map[string]func() *Scene{
	"default": NewDefaultScene,
	"mirror":  NewMirrorScene,
}

// BuiltinSceneNames returns the names accepted by NewBuiltinScene
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a scene that needs no scene file
func NewBuiltinScene(name string) (*Scene, error) {
	create, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", name)
	}
	return create(), nil
}

// NewDefaultScene creates a single red sphere lit from above on black
func NewDefaultScene() *Scene {
	s := NewScene(geometry.CameraConfig{
		Eye:    core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Angle:  30,
		Hither: 1e-3,
		Width:  64,
		Height: 64,
	})

	s.Add(material.NewFill(core.NewVec3(1, 0.2, 0.2), 0.8, 0.2, 20),
		geometry.SphereSurface(core.NewVec3(0, 0, -10), 1))

	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, -10), core.Vec3{}))
	lights.NormalizeIntensities(s.Lights)

	return s
}

// NewMirrorScene creates two shiny spheres over a reflective floor
func NewMirrorScene() *Scene {
	s := NewScene(geometry.CameraConfig{
		Eye:    core.NewVec3(0, 2, 6),
		LookAt: core.NewVec3(0, 0.5, -2),
		Up:     core.NewVec3(0, 1, 0),
		Angle:  45,
		Hither: 1e-3,
		Width:  320,
		Height: 320,
	})
	s.Background = core.NewVec3(0.1, 0.1, 0.2)

	floor := []core.Vec3{
		core.NewVec3(-6, 0, 4),
		core.NewVec3(6, 0, 4),
		core.NewVec3(6, 0, -8),
		core.NewVec3(-6, 0, -8),
	}
	// A flat square always triangulates
	surfaces, _ := geometry.TriangulatePolygon(floor, nil, false)
	s.Add(material.NewFill(core.NewVec3(0.8, 0.8, 0.8), 0.6, 0.3, 10), surfaces...)

	s.Add(material.NewFill(core.NewVec3(0.9, 0.3, 0.2), 0.7, 0.5, 50),
		geometry.SphereSurface(core.NewVec3(-1.2, 1, -2), 1))
	s.Add(material.NewFill(core.NewVec3(0.2, 0.4, 0.9), 0.5, 0.8, 100),
		geometry.SphereSurface(core.NewVec3(1.3, 0.8, -1), 0.8))

	s.AddLight(lights.NewPointLight(core.NewVec3(-4, 8, 4), core.Vec3{}))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 6, 2), core.Vec3{}))
	lights.NormalizeIntensities(s.Lights)

	return s
}
