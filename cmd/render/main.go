package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sw-rasterizer/internal/batch"
	"sw-rasterizer/internal/config"
	"sw-rasterizer/internal/imageio"
	"sw-rasterizer/internal/raster"
	"sw-rasterizer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (.json, .toml, .yaml); default: built-in two triangles")
	angle := flag.Float64("r", 0, "Model rotation about Z in degrees")
	axisAngle := flag.Float64("axis-angle", 0, "Rotation about the scene axis in degrees")
	sweep := flag.String("sweep", "", "Render an angle sweep start:end:step into -outdir")
	outputDir := flag.String("outdir", "", "Output directory for -sweep (default: .)")
	compare := flag.String("compare", "", "Reference image; exit 1 if the render differs")
	tolerance := flag.Int("tolerance", 0, "Per-channel tolerance for -compare")
	width := flag.Int("width", 0, "Image width (default: 700)")
	height := flag.Int("height", 0, "Image height (default: 700)")
	supersample := flag.Int("supersample", 0, "Render at N times the size, then downsample")
	scale := flag.Int("scale", 0, "Enlarge the result N times with nearest-neighbor")
	shading := flag.String("shading", "", "flat or smooth")
	wireframe := flag.Bool("wireframe", false, "Draw triangle outlines instead of filling")
	format := flag.String("format", "", "Sweep frame format: png, webp or tga")
	workers := flag.Int("workers", 0, "Number of worker goroutines for -sweep (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log draw statistics to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [flags] [output]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:       *sceneFile,
		Output:      flag.Arg(0),
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Scale:       *scale,
		Shading:     *shading,
		Format:      *format,
		Workers:     *workers,
		Wireframe:   *wireframe,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		raster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s := scene.Default()
	if cfg.Scene != "" {
		var err error
		s, err = scene.Load(cfg.Scene)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			os.Exit(1)
		}
	}

	opts := batch.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Scale:       cfg.Scale,
		Shading:     cfg.ShadingMode(),
		Primitive:   cfg.Primitive(),
	}

	if *sweep != "" {
		frames, err := parseSweep(*sweep, *axisAngle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(runSweep(cfg, s, opts, frames))
	}

	rd, err := batch.NewRenderer(s, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img, st, err := rd.Frame(scene.Pose{Angle: *angle, AxisAngle: *axisAngle})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	if err := imageio.Save(cfg.Output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %s (%dx%d, %d triangles, %d fragments)\n",
		cfg.Output, img.Bounds().Dx(), img.Bounds().Dy(), st.Triangles, st.Fragments)

	if *compare != "" {
		ref, err := imageio.Load(*compare)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		n, err := imageio.Diff(img, ref, uint8(max(0, min(*tolerance, 255))))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if n > 0 {
			fmt.Fprintf(os.Stderr, "%d pixels differ from %s\n", n, *compare)
			os.Exit(1)
		}
		fmt.Printf("Matches %s\n", *compare)
	}
}

func runSweep(cfg config.Config, s *scene.Scene, opts batch.Options, frames []batch.Frame) int {
	fmt.Printf("Software rasterizer sweep -> %s\n", strings.ToUpper(cfg.Format))
	fmt.Printf("Frames: %d, Workers: %d\n", len(frames), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Scene:     s,
		Options:   opts,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			errors = append(errors, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(errors), len(results))

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Manifest: %s\n", manifestPath)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(errors))
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d (%.1f°): %s\n", e.Index, e.Pose.Angle, e.Error)
		}
		if len(errors) > limit {
			fmt.Printf("  ... and %d more\n", len(errors)-limit)
		}
		return 1
	}
	return 0
}

// parseSweep reads "start:end:step" in degrees.
func parseSweep(arg string, axisAngle float64) ([]batch.Frame, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("sweep %q: want start:end:step", arg)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("sweep %q: %w", arg, err)
		}
		v[i] = f
	}
	frames := batch.Sweep(v[0], v[1], v[2], axisAngle)
	if len(frames) == 0 {
		return nil, fmt.Errorf("sweep %q: no frames", arg)
	}
	return frames, nil
}
