// Command viewer shows the rasterizer output in a window. a/d rotate the
// model by ±10° about Z, q adds 10° about the scene axis, Esc quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sw-rasterizer/internal/batch"
	"sw-rasterizer/internal/config"
	"sw-rasterizer/internal/raster"
	"sw-rasterizer/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene file (.json, .toml, .yaml); default: built-in two triangles")
	watch := flag.Bool("watch", false, "Reload the scene file when it changes")
	width := flag.Int("width", 0, "Window width (default: 700)")
	height := flag.Int("height", 0, "Window height (default: 700)")
	shading := flag.String("shading", "", "flat or smooth")
	wireframe := flag.Bool("wireframe", false, "Draw triangle outlines instead of filling")
	verbose := flag.Bool("v", false, "Log draw statistics to stderr")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Scene:     *sceneFile,
		Width:     *width,
		Height:    *height,
		Shading:   *shading,
		Wireframe: *wireframe,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		raster.SetLogger(logger)
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
		Shading:     cfg.ShadingMode(),
		Primitive:   cfg.Primitive(),
	}
	g, err := newGame(s, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *watch {
		if cfg.Scene == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch needs a scene file")
			os.Exit(1)
		}
		stop, err := watchScene(cfg.Scene, g.reload, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer stop()
	}

	ebiten.SetWindowTitle("sw-rasterizer")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
