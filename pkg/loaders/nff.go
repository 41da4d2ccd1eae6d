package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/geometry"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/lights"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/material"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

// DefaultView is used for files without a "v" block
var DefaultView = geometry.CameraConfig{
	Eye:    core.NewVec3(0, 0, 0),
	LookAt: core.NewVec3(0, 0, -1),
	Up:     core.NewVec3(0, 1, 0),
	Angle:  45,
	Hither: 1e-3,
	Width:  512,
	Height: 512,
}

// viewKeys are the lines of a "v" block, each expected exactly once
var viewKeys = []string{"from", "at", "up", "angle", "hither", "resolution"}

// NFFParser holds the state of one NFF parse. The current fill applies to
// every primitive declared after it until the next "f" line.
type NFFParser struct {
	scanner *bufio.Scanner
	lineNum int
	logger  core.Logger

	scene         *scene.Scene
	fill          material.Fill
	coloredLights bool
	uncolored     []int // Indices of lights declared without a color
}

// NewNFFParser creates a parser reading from reader
func NewNFFParser(reader io.Reader, logger core.Logger) *NFFParser {
	return &NFFParser{
		scanner: bufio.NewScanner(reader),
		logger:  core.LoggerOrNop(logger),
		scene:   scene.NewScene(DefaultView),
		fill:    material.Fill{IOR: 1},
	}
}

// ParseNFF parses an NFF scene description
func ParseNFF(reader io.Reader, logger core.Logger) (*scene.Scene, error) {
	return NewNFFParser(reader, logger).Parse()
}

// LoadNFF loads and parses an NFF scene file
func LoadNFF(filename string, logger core.Logger) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open NFF file: %w", err)
	}
	defer file.Close()

	s, err := ParseNFF(file, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return s, nil
}

// Parse reads every directive and returns the finished scene
func (p *NFFParser) Parse() (*scene.Scene, error) {
	for {
		tokens, ok, err := p.nextLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := p.processDirective(tokens); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNum, err)
		}
	}

	p.finishLights()
	return p.scene, nil
}

// nextLine returns the tokens of the next line that is neither blank nor a
// comment. ok is false at end of input.
func (p *NFFParser) nextLine() (tokens []string, ok bool, err error) {
	for p.scanner.Scan() {
		p.lineNum++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := tokenizeNFF(line)
		if err != nil {
			return nil, false, fmt.Errorf("line %d: %w", p.lineNum, err)
		}
		if len(tokens) > 0 {
			return tokens, true, nil
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("error reading input: %w", err)
	}
	return nil, false, nil
}

// requireLine is nextLine for directives that continue on following lines
func (p *NFFParser) requireLine(what string) ([]string, error) {
	tokens, ok, err := p.nextLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unexpected end of input, expected %s", what)
	}
	return tokens, nil
}

func (p *NFFParser) processDirective(tokens []string) error {
	args := tokens[1:]
	switch tokens[0] {
	case "b":
		c, err := parseVec3(args)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		p.scene.Background = c
	case "v":
		return p.parseView()
	case "p":
		return p.parsePolygon(args, false)
	case "pp":
		return p.parsePolygon(args, true)
	case "s":
		return p.parseSphere(args)
	case "f":
		return p.parseFill(args)
	case "l":
		return p.parseLight(args)
	default:
		// Cones, cylinders and other NFF primitives are not supported
		p.logger.Printf("Skipping unsupported NFF directive %q on line %d\n", tokens[0], p.lineNum)
	}
	return nil
}

func (p *NFFParser) parseView() error {
	view := DefaultView
	seen := make(map[string]bool, len(viewKeys))

	for range viewKeys {
		tokens, err := p.requireLine("view parameter")
		if err != nil {
			return err
		}
		key, args := tokens[0], tokens[1:]
		if seen[key] {
			return fmt.Errorf("view: duplicate %q", key)
		}
		seen[key] = true

		switch key {
		case "from", "at", "up":
			v, err := parseVec3(args)
			if err != nil {
				return fmt.Errorf("view %s: %w", key, err)
			}
			switch key {
			case "from":
				view.Eye = v
			case "at":
				view.LookAt = v
			default:
				view.Up = v
			}
		case "angle", "hither":
			values, err := parseFloats(args, 1)
			if err != nil {
				return fmt.Errorf("view %s: %w", key, err)
			}
			if key == "angle" {
				view.Angle = values[0]
			} else {
				view.Hither = values[0]
			}
		case "resolution":
			if len(args) != 2 {
				return fmt.Errorf("view resolution: expected 2 values, got %d", len(args))
			}
			width, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("view resolution: %w", err)
			}
			height, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("view resolution: %w", err)
			}
			view.Width, view.Height = width, height
		default:
			return fmt.Errorf("view: unknown parameter %q", key)
		}
	}

	p.scene.CameraConfig = view
	return nil
}

func (p *NFFParser) parsePolygon(args []string, patch bool) error {
	if len(args) != 1 {
		return fmt.Errorf("polygon: expected vertex count")
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 0 {
		return fmt.Errorf("polygon: invalid vertex count %q", args[0])
	}

	vertices := make([]core.Vec3, 0, count)
	var normals []core.Vec3
	for i := 0; i < count; i++ {
		tokens, err := p.requireLine("polygon vertex")
		if err != nil {
			return err
		}

		if !patch {
			v, err := parseVec3(tokens)
			if err != nil {
				return fmt.Errorf("polygon vertex %d: %w", i, err)
			}
			vertices = append(vertices, v)
			continue
		}

		values, err := parseFloats(tokens, 6)
		if err != nil {
			return fmt.Errorf("patch vertex %d: %w", i, err)
		}
		vertices = append(vertices, core.NewVec3(values[0], values[1], values[2]))
		normals = append(normals, core.NewVec3(values[3], values[4], values[5]))
	}

	surfaces, err := geometry.TriangulatePolygon(vertices, normals, patch)
	if errors.Is(err, geometry.ErrNonPlanarPolygon) || errors.Is(err, geometry.ErrUnsupportedPolygon) {
		p.logger.Printf("Skipping polygon ending on line %d: %v\n", p.lineNum, err)
		return nil
	}
	if err != nil {
		return err
	}

	p.scene.Add(p.fill, surfaces...)
	return nil
}

func (p *NFFParser) parseSphere(args []string) error {
	values, err := parseFloats(args, 4)
	if err != nil {
		return fmt.Errorf("sphere: %w", err)
	}
	center := core.NewVec3(values[0], values[1], values[2])
	p.scene.Add(p.fill, geometry.SphereSurface(center, values[3]))
	return nil
}

// parseFill reads "f r g b kd ks shine [t ior]"
func (p *NFFParser) parseFill(args []string) error {
	if len(args) != 6 && len(args) != 8 {
		return fmt.Errorf("fill: expected 6 or 8 values, got %d", len(args))
	}
	values, err := parseFloats(args, len(args))
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	fill := material.NewFill(core.NewVec3(values[0], values[1], values[2]), values[3], values[4], values[5])
	if len(values) == 8 {
		fill.T = values[6]
		fill.IOR = values[7]
	}
	p.fill = fill
	return nil
}

// parseLight reads "l x y z [r g b]"
func (p *NFFParser) parseLight(args []string) error {
	if len(args) != 3 && len(args) != 6 {
		return fmt.Errorf("light: expected 3 or 6 values, got %d", len(args))
	}
	values, err := parseFloats(args, len(args))
	if err != nil {
		return fmt.Errorf("light: %w", err)
	}

	light := lights.NewPointLight(core.NewVec3(values[0], values[1], values[2]), core.Vec3{})
	if len(values) == 6 {
		light.Color = core.NewVec3(values[3], values[4], values[5])
		p.coloredLights = true
	} else {
		p.uncolored = append(p.uncolored, len(p.scene.Lights))
	}
	p.scene.AddLight(light)
	return nil
}

// finishLights gives uncolored lights their intensity. Without any colored
// light the total brightness is shared; otherwise uncolored lights are white.
func (p *NFFParser) finishLights() {
	if !p.coloredLights {
		lights.NormalizeIntensities(p.scene.Lights)
		return
	}
	for _, i := range p.uncolored {
		p.scene.Lights[i].Color = core.Splat(1)
	}
}

// tokenizeNFF splits a line into fields, honoring shell-style quoting
func tokenizeNFF(line string) ([]string, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %q: %w", line, err)
	}
	return tokens, nil
}

// parseFloats parses exactly n numbers
func parseFloats(tokens []string, n int) ([]float64, error) {
	if len(tokens) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(tokens))
	}
	values := make([]float64, n)
	for i, token := range tokens {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", token, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseVec3(tokens []string) (core.Vec3, error) {
	values, err := parseFloats(tokens, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filepath.Clean(filename)) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
