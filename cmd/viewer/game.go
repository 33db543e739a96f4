package main

import (
	"image"
	"log/slog"

	"sw-rasterizer/internal/batch"
	"sw-rasterizer/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const angleStep = 10

type game struct {
	opts   batch.Options
	logger *slog.Logger

	rd    *batch.Renderer
	pose  scene.Pose
	dirty bool

	img    *image.NRGBA
	frame  *ebiten.Image
	reload chan *scene.Scene
}

func newGame(s *scene.Scene, opts batch.Options, logger *slog.Logger) (*game, error) {
	rd, err := batch.NewRenderer(s, opts)
	if err != nil {
		return nil, err
	}
	return &game{
		opts:   opts,
		logger: logger,
		rd:     rd,
		dirty:  true,
		reload: make(chan *scene.Scene, 1),
	}, nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.pose.Angle += angleStep
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.pose.Angle -= angleStep
		g.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.pose.AxisAngle += angleStep
		g.dirty = true
	}

	select {
	case s := <-g.reload:
		rd, err := batch.NewRenderer(s, g.opts)
		if err != nil {
			g.logger.Error("rebind scene", slog.Any("err", err))
			break
		}
		g.rd = rd
		g.dirty = true
		g.logger.Info("scene reloaded", slog.Int("triangles", len(s.Indices)))
	default:
	}

	if !g.dirty {
		return nil
	}
	g.dirty = false

	img, st, err := g.rd.Frame(g.pose)
	if err != nil {
		// keep showing the last good frame
		g.logger.Error("render", slog.Any("err", err))
		return nil
	}
	g.img = img
	g.logger.Debug("frame",
		slog.Float64("angle", g.pose.Angle),
		slog.Float64("axis_angle", g.pose.AxisAngle),
		slog.Int("fragments", st.Fragments))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		return
	}
	b := g.img.Bounds()
	if g.frame == nil || g.frame.Bounds().Dx() != b.Dx() || g.frame.Bounds().Dy() != b.Dy() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(g.img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}
