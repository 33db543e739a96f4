package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"sw-rasterizer/internal/imageio"
	"sw-rasterizer/internal/raster"
)

// Config holds the scene path, output location and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"-"`
	Scene     string `json:"scene"`
	Output    string `json:"output"`     // single frame
	OutputDir string `json:"output_dir"` // sweep frames and manifest

	// Render settings
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Supersample int    `json:"supersample"`
	Scale       int    `json:"scale"`
	Shading     string `json:"shading"`
	Wireframe   bool   `json:"wireframe"`
	Format      string `json:"format"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. Relative paths in the
// file are later resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Output      string
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Scale       int
	Shading     string
	Format      string
	Workers     int
	Wireframe   bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file. Their paths are relative to the
	// working directory, not BaseDir.
	if flags.Scene != "" {
		c.Scene = flags.Scene
	} else if c.Scene != "" && c.BaseDir != "" && !filepath.IsAbs(c.Scene) {
		c.Scene = filepath.Join(c.BaseDir, c.Scene)
	}
	if flags.Output != "" {
		c.Output = flags.Output
	} else if c.Output != "" && c.BaseDir != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(c.BaseDir, c.Output)
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	} else if c.OutputDir != "" && c.BaseDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Shading != "" {
		c.Shading = flags.Shading
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Wireframe {
		c.Wireframe = true
	}

	if c.Output == "" {
		c.Output = "output.png"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Width <= 0 {
		c.Width = 700
	}
	if c.Height <= 0 {
		c.Height = 700
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Shading == "" {
		c.Shading = raster.Flat.String()
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if _, err := raster.ParseShading(c.Shading); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !imageio.Supported(c.Format) {
		return fmt.Errorf("config: %w: %q", imageio.ErrFormat, c.Format)
	}
	return nil
}

// ShadingMode returns the parsed Shading value.
func (c *Config) ShadingMode() raster.Shading {
	s, _ := raster.ParseShading(c.Shading)
	return s
}

// Primitive returns the primitive the draw calls should use.
func (c *Config) Primitive() raster.Primitive {
	if c.Wireframe {
		return raster.PrimLine
	}
	return raster.PrimTriangle
}
