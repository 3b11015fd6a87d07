// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no terminal or audio
// dependencies so simulation code stays pure and testable.
package core

// Vec2 is a position or velocity in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Box is an axis-aligned bounding box described by its center and half
// extents. Used for collision detection.
type Box struct {
	Center       Vec2
	HalfW, HalfH float64
}

// NewBox creates a box centered at (x, y).
func NewBox(x, y, halfW, halfH float64) Box {
	return Box{Center: Vec2{X: x, Y: y}, HalfW: halfW, HalfH: halfH}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Center.X - b.HalfW }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Center.X + b.HalfW }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Center.Y - b.HalfH }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y + b.HalfH }

// Intersects returns true if this box overlaps another.
// Touching edges do not count as overlap.
func (b Box) Intersects(other Box) bool {
	// No overlap if one box is completely to the left, right, above, or below
	if b.Left() >= other.Right() || other.Left() >= b.Right() {
		return false
	}
	if b.Top() >= other.Bottom() || other.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left() && x < b.Right() && y >= b.Top() && y < b.Bottom()
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
