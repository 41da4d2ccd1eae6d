package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/loaders"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/renderer"
	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/scene"
)

const scenesDir = "scenes"

// options is the parsed command line
type options struct {
	config renderer.RenderConfig
	help   bool
	list   bool
	input  string // Built-in scene name, NFF scene name or NFF path
	output string // Output image path; empty picks one under output/
}

func main() {
	if err := run(os.Args[1:], os.Stdout, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger core.Logger) error {
	fs, values := newFlagSet(stdout)
	opts, err := parseArgs(fs, values, args)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(fs, stdout)
		return nil
	}
	if opts.list {
		return listScenes(stdout)
	}

	logger.Printf("Starting Whitted raytracer...\n")

	selectedScene, err := createScene(opts.input, logger)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		outputDir := createOutputDir(opts.input)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		output = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, opts.config, logger)
	if err != nil {
		return err
	}
	stats := raytracer.RenderImage()
	logger.Printf("Samples per pixel: %.1f\n", stats.AverageSamples)

	if err := raytracer.Image().Save(output); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", output)
	return nil
}

// flagValues holds the flag destinations before they are merged into a config
type flagValues struct {
	aperture   float64
	samples    int
	maxDepth   int
	flatColor  bool
	seed       int64
	configFile string
	help       bool
	list       bool
}

func newFlagSet(output io.Writer) (*flag.FlagSet, *flagValues) {
	values := &flagValues{}
	defaults := renderer.DefaultRenderConfig()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Float64Var(&values.aperture, "a", defaults.Aperture, "Lens aperture (recorded, not applied)")
	fs.IntVar(&values.samples, "s", defaults.Samples, "Jittered samples per pixel")
	fs.IntVar(&values.maxDepth, "d", defaults.MaxRayDepth, "Maximum reflection depth")
	fs.BoolVar(&values.flatColor, "c", defaults.FlatColor, "Flat color mode: show fill colors without lighting")
	fs.Int64Var(&values.seed, "seed", defaults.Seed, "Jitter seed (0 = time based)")
	fs.StringVar(&values.configFile, "config", "", "TOML render config file; flags given on the command line override it")
	fs.BoolVar(&values.help, "help", false, "Show help information")
	fs.BoolVar(&values.list, "list", false, "List available scenes")
	return fs, values
}

// parseArgs parses args into options. Precedence, lowest first: defaults,
// the -config file, flags given explicitly.
func parseArgs(fs *flag.FlagSet, values *flagValues, args []string) (options, error) {
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{help: values.help, list: values.list}
	if opts.help || opts.list {
		return opts, nil
	}

	config := renderer.DefaultRenderConfig()
	if values.configFile != "" {
		loaded, err := renderer.LoadRenderConfig(values.configFile, config)
		if err != nil {
			return options{}, err
		}
		config = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			config.Aperture = values.aperture
		case "s":
			config.Samples = values.samples
		case "d":
			config.MaxRayDepth = values.maxDepth
		case "c":
			config.FlatColor = values.flatColor
		case "seed":
			config.Seed = values.seed
		}
	})
	if err := config.Validate(); err != nil {
		return options{}, err
	}
	opts.config = config

	switch fs.NArg() {
	case 1:
		opts.input = fs.Arg(0)
	case 2:
		opts.input, opts.output = fs.Arg(0), fs.Arg(1)
	default:
		return options{}, errors.New("usage: raytracer [options] <scene> [output.ppm|output.png]")
	}
	return opts, nil
}

// createScene resolves a built-in scene name, an NFF scene name under
// scenes/, or a path to an NFF file
func createScene(sceneType string, logger core.Logger) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("scene name cannot be empty")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".nff") {
		return loaders.LoadNFF(sceneType, logger)
	}

	if s, err := scene.NewBuiltinScene(sceneType); err == nil {
		return s, nil
	}

	nffPath := filepath.Join(scenesDir, sceneType+".nff")
	if _, err := os.Stat(nffPath); err == nil {
		return loaders.LoadNFF(nffPath, logger)
	}

	return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)",
		sceneType, strings.Join(scene.BuiltinSceneNames(), ", "))
}

// createOutputDir returns the default output directory for a scene
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func listScenes(stdout io.Writer) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Fprintf(stdout, "  %-16s %s (%s)\n", info.Name, info.DisplayName, info.Description)
		} else {
			fmt.Fprintf(stdout, "  %-16s %s\n", info.Name, info.DisplayName)
		}
	}
	return nil
}

func printHelp(fs *flag.FlagSet, stdout io.Writer) {
	fmt.Fprintln(stdout, "Whitted Raytracer")
	fmt.Fprintln(stdout, "Usage: raytracer [options] <scene> [output.ppm|output.png]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "<scene> is a built-in scene name, the name of a file in scenes/, or a path to an .nff file.")
	fmt.Fprintln(stdout, "Without an output path the image is saved to output/<scene>/render_<timestamp>.png")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
}
