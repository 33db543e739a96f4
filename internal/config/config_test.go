package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"sw-rasterizer/internal/imageio"
	"sw-rasterizer/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, 700, c.Width)
	assert.Equal(t, 700, c.Height)
	assert.Equal(t, 1, c.Supersample)
	assert.Equal(t, 1, c.Scale)
	assert.Equal(t, "flat", c.Shading)
	assert.Equal(t, "png", c.Format)
	assert.Equal(t, "output.png", c.Output)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Empty(t, c.Scene)
	require.NoError(t, c.Validate())
	assert.Equal(t, raster.PrimTriangle, c.Primitive())
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"scene": "scenes/two.yaml",
		"output": "out/still.webp",
		"output_dir": "frames",
		"width": 320,
		"supersample": 2,
		"shading": "smooth",
		"format": "webp"
	}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{})

	assert.Equal(t, filepath.Join(dir, "scenes", "two.yaml"), c.Scene)
	assert.Equal(t, filepath.Join(dir, "out", "still.webp"), c.Output)
	assert.Equal(t, filepath.Join(dir, "frames"), c.OutputDir)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 700, c.Height)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, raster.Smooth, c.ShadingMode())
	assert.Equal(t, "webp", c.Format)
}

func TestFlagsOverride(t *testing.T) {
	c := Config{BaseDir: "/cfg", Scene: "a.json", Width: 10, Workers: 3}
	c.Resolve(Flags{Scene: "b.toml", Output: "x.tga", Width: 64, Height: 48, Workers: 1, Wireframe: true, Format: "tga", Scale: 4})

	assert.Equal(t, "b.toml", c.Scene)
	assert.Equal(t, "x.tga", c.Output)
	assert.Equal(t, 64, c.Width)
	assert.Equal(t, 48, c.Height)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, 4, c.Scale)
	assert.Equal(t, "tga", c.Format)
	assert.Equal(t, raster.PrimLine, c.Primitive())
}

func TestValidate(t *testing.T) {
	c := Config{Shading: "phong"}
	c.Resolve(Flags{})
	assert.Error(t, c.Validate())

	c = Config{Format: "bmp"}
	c.Resolve(Flags{})
	assert.ErrorIs(t, c.Validate(), imageio.ErrFormat)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": "wide"}`), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
