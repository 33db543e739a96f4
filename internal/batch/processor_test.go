package batch

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"sw-rasterizer/internal/imageio"
	"sw-rasterizer/internal/raster"
	"sw-rasterizer/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	frames := Sweep(0, 360, 10, 0)
	require.Len(t, frames, 36)
	assert.Equal(t, 0.0, frames[0].Pose.Angle)
	assert.Equal(t, 350.0, frames[35].Pose.Angle)
	assert.Equal(t, 35, frames[35].Index)

	frames = Sweep(-45, 45, 30, 15)
	require.Len(t, frames, 3)
	assert.Equal(t, scene.Pose{Angle: 15, AxisAngle: 15}, frames[2].Pose)

	assert.Nil(t, Sweep(0, 10, 0, 0))
	assert.Nil(t, Sweep(10, 10, 1, 0))
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Scene:     scene.Default(),
		Options:   Options{Width: 40, Height: 40},
		OutputDir: dir,
		Format:    "png",
		Workers:   3,
	}
	frames := Sweep(0, 90, 30, 0)

	results := Run(cfg, frames)
	require.Len(t, results, 3)

	rd, err := NewRenderer(cfg.Scene, cfg.Options)
	require.NoError(t, err)
	for i, r := range results {
		require.True(t, r.Success, r.Error)
		assert.Equal(t, i, r.Index)
		assert.Equal(t, FrameName(i, "png"), r.Image)
		assert.Positive(t, r.Fragments)

		got, err := imageio.Load(filepath.Join(dir, r.Image))
		require.NoError(t, err)
		want, _, err := rd.Frame(frames[i].Pose)
		require.NoError(t, err)
		n, err := imageio.Diff(want, got, 0)
		require.NoError(t, err)
		assert.Zero(t, n, "frame %d", i)
	}
}

func TestRunReportsErrors(t *testing.T) {
	s := scene.Default()
	s.Camera.Near, s.Camera.Far = 1, 1

	results := Run(Config{
		Scene:     s,
		Options:   Options{Width: 8, Height: 8},
		OutputDir: t.TempDir(),
		Format:    "png",
		Workers:   2,
	}, Sweep(0, 20, 10, 0))

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "scene")
	}
}

func TestRunBadSize(t *testing.T) {
	results := Run(Config{Scene: scene.Default(), Workers: 1, Format: "png"}, Sweep(0, 10, 10, 0))
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)

	_, err := NewRenderer(scene.Default(), Options{})
	assert.ErrorIs(t, err, raster.ErrBadSize)
}

func TestFrameSupersampleAndScale(t *testing.T) {
	rd, err := NewRenderer(scene.Default(), Options{Width: 20, Height: 10, Supersample: 2, Scale: 3})
	require.NoError(t, err)
	assert.Equal(t, 40, rd.Rasterizer().Width())

	img, st, err := rd.Frame(scene.Pose{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 60, 30), img.Bounds())
	assert.Equal(t, 2, st.Triangles)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Index: 0, Pose: scene.Pose{Angle: 0}, Image: "frame_0000.png", Fragments: 12, Success: true},
		{Index: 1, Pose: scene.Pose{Angle: 10, AxisAngle: 5}, Error: "boom"},
	}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []ManifestEntry{
		{Index: 0, Angle: 0, Image: "frame_0000.png", Fragments: 12},
		{Index: 1, Angle: 10, AxisAngle: 5, Error: "boom"},
	}, got)
}

func TestWriteManifestCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sweep", "manifest.json")
	require.NoError(t, WriteManifest(path, nil))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteManifestReportsDirectoryError(t *testing.T) {
	// The would-be output directory is a regular file.
	blocker := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteManifest(filepath.Join(blocker, "manifest.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch: create")
}
