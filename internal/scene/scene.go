// Package scene describes what gets rendered: triangle geometry with
// per-vertex colors and the camera looking at it.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("scene: invalid")

// Camera holds the view and projection parameters. Angles are in degrees.
type Camera struct {
	Eye    [3]float64 `json:"eye" toml:"eye" yaml:"eye"`
	FOV    float64    `json:"fov" toml:"fov" yaml:"fov"`
	Aspect float64    `json:"aspect,omitempty" toml:"aspect,omitempty" yaml:"aspect,omitempty"` // 0 = width/height
	Near   float64    `json:"near" toml:"near" yaml:"near"`
	Far    float64    `json:"far" toml:"far" yaml:"far"`
}

// Scene is one geometry set plus its camera.
type Scene struct {
	Positions [][3]float64 `json:"positions" toml:"positions" yaml:"positions"`
	Indices   [][3]int     `json:"indices" toml:"indices" yaml:"indices"`
	Colors    [][3]float64 `json:"colors" toml:"colors" yaml:"colors"`
	Camera    Camera       `json:"camera" toml:"camera" yaml:"camera"`

	// Axis, when set, adds a rotation about this axis (normalized on load)
	// applied after the Z rotation.
	Axis *[3]float64 `json:"axis,omitempty" toml:"axis,omitempty" yaml:"axis,omitempty"`
}

// DefaultCamera sits at z=5 looking down −Z.
func DefaultCamera() Camera {
	return Camera{
		Eye:  [3]float64{0, 0, 5},
		FOV:  45,
		Near: 0.1,
		Far:  50,
	}
}

// Default returns two overlapping triangles at different depths: a pale
// green one at z=−2 in front of a pale blue one at z=−5.
func Default() *Scene {
	return &Scene{
		Positions: [][3]float64{
			{2, 0, -2}, {0, 2, -2}, {-2, 0, -2},
			{3.5, -1, -5}, {2.5, 1.5, -5}, {-1, 0.5, -5},
		},
		Indices: [][3]int{{0, 1, 2}, {3, 4, 5}},
		Colors: [][3]float64{
			{217, 238, 185}, {217, 238, 185}, {217, 238, 185},
			{185, 217, 238}, {185, 217, 238}, {185, 217, 238},
		},
		Camera: DefaultCamera(),
	}
}

// Validate checks what Draw would otherwise reject half-way through a
// frame, and fills zero camera fields with defaults.
func (s *Scene) Validate() error {
	if len(s.Positions) == 0 || len(s.Indices) == 0 {
		return fmt.Errorf("%w: no geometry", ErrInvalid)
	}
	if len(s.Colors) != len(s.Positions) {
		return fmt.Errorf("%w: %d colors for %d positions", ErrInvalid, len(s.Colors), len(s.Positions))
	}
	for n, face := range s.Indices {
		for _, vi := range face {
			if vi < 0 || vi >= len(s.Positions) {
				return fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrInvalid, n, vi, len(s.Positions))
			}
		}
	}
	for i, c := range s.Colors {
		for _, ch := range c {
			if !(ch >= 0 && ch <= 255) {
				return fmt.Errorf("%w: color %d %v outside [0,255]", ErrInvalid, i, c)
			}
		}
	}

	def := DefaultCamera()
	if s.Camera.FOV == 0 {
		s.Camera.FOV = def.FOV
	}
	if s.Camera.Near == 0 {
		s.Camera.Near = def.Near
	}
	if s.Camera.Far == 0 {
		s.Camera.Far = def.Far
	}

	if s.Axis != nil {
		a := mgl64.Vec3(*s.Axis)
		if a.Len() == 0 {
			return fmt.Errorf("%w: zero rotation axis", ErrInvalid)
		}
		n := [3]float64(a.Normalize())
		s.Axis = &n
	}
	return nil
}

func (s *Scene) positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.Positions))
	for i, p := range s.Positions {
		out[i] = mgl64.Vec3(p)
	}
	return out
}

func (s *Scene) colors() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.Colors))
	for i, c := range s.Colors {
		out[i] = mgl64.Vec3(c)
	}
	return out
}
