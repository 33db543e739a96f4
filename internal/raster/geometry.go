package raster

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PosBufID identifies a loaded position buffer.
type PosBufID int

// IndBufID identifies a loaded index buffer.
type IndBufID int

// ColBufID identifies a loaded color buffer.
type ColBufID int

// Geometry stores loaded vertex data. Each buffer kind has its own handle
// space; handles start at 1 and are never reused, so the zero value of a
// handle never resolves.
type Geometry struct {
	positions map[PosBufID][]mgl64.Vec3
	indices   map[IndBufID][][3]int
	colors    map[ColBufID][]mgl64.Vec3

	lastPos PosBufID
	lastInd IndBufID
	lastCol ColBufID
}

// NewGeometry returns an empty store.
func NewGeometry() *Geometry {
	return &Geometry{
		positions: make(map[PosBufID][]mgl64.Vec3),
		indices:   make(map[IndBufID][][3]int),
		colors:    make(map[ColBufID][]mgl64.Vec3),
	}
}

// LoadPositions stores a copy of the object-space positions.
func (g *Geometry) LoadPositions(p []mgl64.Vec3) PosBufID {
	g.lastPos++
	g.positions[g.lastPos] = append([]mgl64.Vec3(nil), p...)
	return g.lastPos
}

// LoadIndices stores a copy of the vertex index triples, one per triangle.
func (g *Geometry) LoadIndices(ind [][3]int) IndBufID {
	g.lastInd++
	g.indices[g.lastInd] = append([][3]int(nil), ind...)
	return g.lastInd
}

// LoadColors stores a copy of the per-vertex colors, channels in [0,255].
func (g *Geometry) LoadColors(c []mgl64.Vec3) ColBufID {
	g.lastCol++
	g.colors[g.lastCol] = append([]mgl64.Vec3(nil), c...)
	return g.lastCol
}

// Positions resolves a position handle.
func (g *Geometry) Positions(id PosBufID) ([]mgl64.Vec3, error) {
	p, ok := g.positions[id]
	if !ok {
		return nil, fmt.Errorf("raster: position buffer %d: %w", id, ErrUnknownBuffer)
	}
	return p, nil
}

// Indices resolves an index handle.
func (g *Geometry) Indices(id IndBufID) ([][3]int, error) {
	ind, ok := g.indices[id]
	if !ok {
		return nil, fmt.Errorf("raster: index buffer %d: %w", id, ErrUnknownBuffer)
	}
	return ind, nil
}

// Colors resolves a color handle.
func (g *Geometry) Colors(id ColBufID) ([]mgl64.Vec3, error) {
	c, ok := g.colors[id]
	if !ok {
		return nil, fmt.Errorf("raster: color buffer %d: %w", id, ErrUnknownBuffer)
	}
	return c, nil
}
