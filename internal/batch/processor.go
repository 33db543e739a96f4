package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sw-rasterizer/internal/imageio"
	"sw-rasterizer/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Scene     *scene.Scene
	Options   Options
	OutputDir string
	Format    string // png, webp or tga
	Workers   int
	Progress  io.Writer // nil disables progress lines
}

// Frame is one pose of a sweep.
type Frame struct {
	Index int
	Pose  scene.Pose
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index     int
	Pose      scene.Pose
	Image     string
	Fragments int
	Success   bool
	Error     string
}

// Sweep returns frames rotating about Z from start (inclusive) to end
// (exclusive) in increments of step degrees. axisAngle is held constant.
func Sweep(start, end, step, axisAngle float64) []Frame {
	if step <= 0 || end <= start {
		return nil
	}
	frames := make([]Frame, 0, int((end-start)/step)+1)
	for i := 0; start+float64(i)*step < end-1e-9; i++ {
		frames = append(frames, Frame{
			Index: i,
			Pose:  scene.Pose{Angle: start + float64(i)*step, AxisAngle: axisAngle},
		})
	}
	return frames
}

// FrameName is the file name of frame i.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%04d.%s", i, format)
}

// Run renders all frames using a worker pool. Each worker binds the scene
// into its own rasterizer.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rd, err := NewRenderer(cfg.Scene, cfg.Options)
			for idx := range frameChan {
				if err != nil {
					results[idx] = failed(frames[idx], err)
				} else {
					results[idx] = processFrame(cfg, rd, frames[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, rd *Renderer, f Frame) Result {
	img, st, err := rd.Frame(f.Pose)
	if err != nil {
		return failed(f, err)
	}

	name := FrameName(f.Index, cfg.Format)
	if err := imageio.Save(filepath.Join(cfg.OutputDir, name), img); err != nil {
		return failed(f, err)
	}

	return Result{
		Index:     f.Index,
		Pose:      f.Pose,
		Image:     name,
		Fragments: st.Fragments,
		Success:   true,
	}
}

func failed(f Frame, err error) Result {
	return Result{Index: f.Index, Pose: f.Pose, Error: err.Error()}
}
