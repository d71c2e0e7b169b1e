package model

import "math"

type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Geometry maps board coordinates to screen pixels. It is a value: the
// engine never reads it, only callers translating input do.
type Geometry struct {
	SquareSize float32
	Origin     Point

	PanelX       float32
	PanelSpacing float32
	PanelPerRow  int
	// PanelTop and PanelBottom are the first-row y offsets of the captured
	// white and captured black blocks, relative to Origin.Y.
	PanelTop    float32
	PanelBottom float32
}

func DefaultGeometry() Geometry {
	return Geometry{
		SquareSize:   100,
		Origin:       Point{X: 0, Y: 0},
		PanelX:       920,
		PanelSpacing: 70,
		PanelPerRow:  5,
		PanelTop:     20,
		PanelBottom:  450,
	}
}

// SquareAt returns the square under a pixel, false outside the board.
func (g Geometry) SquareAt(px, py float32) (Position, bool) {
	if g.SquareSize <= 0 {
		return Position{}, false
	}
	x := math.Floor(float64((px - g.Origin.X) / g.SquareSize))
	y := math.Floor(float64((py - g.Origin.Y) / g.SquareSize))
	pos := Position{X: int(x), Y: int(y)}
	return pos, pos.InBounds()
}

// PixelOf returns the top-left pixel of a square.
func (g Geometry) PixelOf(pos Position) Point {
	return Point{
		X: g.Origin.X + float32(pos.X)*g.SquareSize,
		Y: g.Origin.Y + float32(pos.Y)*g.SquareSize,
	}
}

// Center returns the pixel at the middle of a square.
func (g Geometry) Center(pos Position) Point {
	p := g.PixelOf(pos)
	return Point{X: p.X + g.SquareSize/2, Y: p.Y + g.SquareSize/2}
}

// PanelSlot places the n-th captured piece of color c in the side panel.
// Captured white pieces fill the top block and black ones the bottom block.
func (g Geometry) PanelSlot(c Color, slot int) Point {
	perRow := g.PanelPerRow
	if perRow <= 0 {
		perRow = 1
	}
	row, col := slot/perRow, slot%perRow
	top := g.PanelTop
	if c == Black {
		top = g.PanelBottom
	}
	return Point{
		X: g.PanelX + g.PanelSpacing*float32(col),
		Y: g.Origin.Y + top + g.PanelSpacing*float32(row),
	}
}
