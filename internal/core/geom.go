// Package core provides fundamental types and utilities for the hamster game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// World dimensions. All simulation positions live in this logical space;
// the platform layer projects them onto whatever terminal size is available.
const (
	WorldW = 1280
	WorldH = 720
)

// Vec3 is a position or velocity in world space. Z is carried but unused by
// the simulation.
type Vec3 struct {
	X, Y, Z float64
}

// V creates a Vec3 on the Z=0 plane.
func V(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Rect represents an axis-aligned box, used for button hit tests.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// WorldToCell projects a world position onto a w x h character grid.
func WorldToCell(p Vec3, w, h int) (int, int) {
	x := int(math.Floor(p.X * float64(w) / WorldW))
	y := int(math.Floor(p.Y * float64(h) / WorldH))
	return x, y
}

// CellToWorld maps a character cell back to the world position of its top-left corner.
func CellToWorld(x, y, w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return x * WorldW / w, y * WorldH / h
}

// RectToCells projects a world rectangle onto a w x h character grid.
// The result is at least one cell in each dimension.
func RectToCells(r Rect, w, h int) Rect {
	x0, y0 := WorldToCell(V(float64(r.X), float64(r.Y)), w, h)
	x1, y1 := WorldToCell(V(float64(r.Right()), float64(r.Bottom())), w, h)
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
