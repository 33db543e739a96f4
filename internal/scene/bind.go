package scene

import (
	"fmt"

	"sw-rasterizer/internal/raster"
	"sw-rasterizer/internal/transform"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is the per-frame state the caller varies: degrees about Z, and
// degrees about the scene axis when one is set.
type Pose struct {
	Angle     float64
	AxisAngle float64
}

// Bound is a scene whose buffers are loaded into one rasterizer.
type Bound struct {
	Scene     *Scene
	Primitive raster.Primitive

	r   *raster.Rasterizer
	pos raster.PosBufID
	ind raster.IndBufID
	col raster.ColBufID
}

// Bind uploads the scene's buffers into r and sets its depth range from
// the camera planes.
func Bind(r *raster.Rasterizer, s *Scene) *Bound {
	r.SetDepthRange(raster.DepthRange{Near: s.Camera.Near, Far: s.Camera.Far})
	return &Bound{
		Scene:     s,
		Primitive: raster.PrimTriangle,
		r:         r,
		pos:       r.LoadPositions(s.positions()),
		ind:       r.LoadIndices(s.Indices),
		col:       r.LoadColors(s.colors()),
	}
}

// Matrices builds the model, view and projection matrices for a pose.
func (s *Scene) Matrices(p Pose, width, height int) (model, view, proj mgl64.Mat4, err error) {
	model = transform.Model(p.Angle)
	if s.Axis != nil {
		rot, err := transform.AxisRotation(mgl64.Vec3(*s.Axis), p.AxisAngle)
		if err != nil {
			return model, view, proj, fmt.Errorf("scene: %w", err)
		}
		model = rot.Mul4(model)
	}

	view = transform.View(mgl64.Vec3(s.Camera.Eye))

	aspect := s.Camera.Aspect
	if aspect == 0 {
		aspect = float64(width) / float64(height)
	}
	proj, err = transform.Projection(s.Camera.FOV, aspect, s.Camera.Near, s.Camera.Far)
	if err != nil {
		return model, view, proj, fmt.Errorf("scene: %w", err)
	}
	return model, view, proj, nil
}

// Render clears both buffers, sets the pose's transforms and draws.
func (b *Bound) Render(p Pose) error {
	model, view, proj, err := b.Scene.Matrices(p, b.r.Width(), b.r.Height())
	if err != nil {
		return err
	}
	b.r.Clear(raster.Color | raster.Depth)
	b.r.SetModel(model)
	b.r.SetView(view)
	b.r.SetProjection(proj)
	return b.r.Draw(b.pos, b.ind, b.col, b.Primitive)
}
