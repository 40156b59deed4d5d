// Package core provides the value types shared by the game logic and the
// platform: geometry, colors and the per-frame input snapshot.
// It has no external dependencies so that game logic stays pure and testable.
//
// World space is y-up: a Rectangle's Top is above its Bottom. Screen rows grow
// downwards; the rasterizer is the only place that converts between the two.
package core

import (
	"errors"
	"math"
)

var (
	// ErrNegativeVertex is returned when a rounded rectangle edge is below zero.
	ErrNegativeVertex = errors.New("rectangle with negative vertex")
	// ErrTruncation is returned when an edge cannot be represented exactly as an integer.
	ErrTruncation = errors.New("rectangle vertex cannot be converted to an integer")
)

// Point2D is a pixel-space coordinate.
type Point2D struct {
	X, Y float64
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the point shifted by the given deltas.
func (p Point2D) Add(dx, dy float64) Point2D {
	return Point2D{X: p.X + dx, Y: p.Y + dy}
}

// Rectangle is an axis-aligned box in y-up space.
// Invariant: Top = Bottom + height, Right = Left + width.
type Rectangle struct {
	Top, Left, Bottom, Right float64
}

// NewRect builds a rectangle from its bottom-left corner and size.
func NewRect(bottom, left, height, width float64) Rectangle {
	return Rectangle{
		Top:    bottom + height,
		Left:   left,
		Bottom: bottom,
		Right:  left + width,
	}
}

// Width returns Right - Left.
func (r Rectangle) Width() float64 {
	return r.Right - r.Left
}

// Height returns Top - Bottom.
func (r Rectangle) Height() float64 {
	return r.Top - r.Bottom
}

func (r Rectangle) TopLeft() Point2D     { return Point2D{X: r.Left, Y: r.Top} }
func (r Rectangle) TopRight() Point2D    { return Point2D{X: r.Right, Y: r.Top} }
func (r Rectangle) BottomLeft() Point2D  { return Point2D{X: r.Left, Y: r.Bottom} }
func (r Rectangle) BottomRight() Point2D { return Point2D{X: r.Right, Y: r.Bottom} }

// Corners returns the four corners, bottom-left first, counter-clockwise.
func (r Rectangle) Corners() [4]Point2D {
	return [4]Point2D{r.BottomLeft(), r.BottomRight(), r.TopRight(), r.TopLeft()}
}

// MovedTo places the bottom-left corner at p, keeping the size.
func (r Rectangle) MovedTo(p Point2D) Rectangle {
	return NewRect(p.Y, p.X, r.Height(), r.Width())
}

// Shifted moves the rectangle by the given deltas.
func (r Rectangle) Shifted(dx, dy float64) Rectangle {
	return Rectangle{
		Top:    r.Top + dy,
		Left:   r.Left + dx,
		Bottom: r.Bottom + dy,
		Right:  r.Right + dx,
	}
}

// Resized keeps the bottom-left corner and changes the size.
func (r Rectangle) Resized(height, width float64) Rectangle {
	return NewRect(r.Bottom, r.Left, height, width)
}

// BoundTo clamps each edge independently into the container's range on its axis.
func (r Rectangle) BoundTo(container Rectangle) Rectangle {
	return Rectangle{
		Top:    ClampF(r.Top, container.Bottom, container.Top),
		Left:   ClampF(r.Left, container.Left, container.Right),
		Bottom: ClampF(r.Bottom, container.Bottom, container.Top),
		Right:  ClampF(r.Right, container.Left, container.Right),
	}
}

// Overlaps reports whether the open interiors intersect.
// Rectangles that only share an edge do not overlap.
func (r Rectangle) Overlaps(other Rectangle) bool {
	return other.Left < r.Right &&
		other.Right > r.Left &&
		other.Bottom < r.Top &&
		other.Top > r.Bottom
}

// ContainsPoint is half-open: Left <= x < Right and Bottom <= y < Top.
func (r Rectangle) ContainsPoint(p Point2D) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y < r.Top && p.Y >= r.Bottom
}

// Round converts every edge to the nearest integer.
// It fails with ErrNegativeVertex for an edge below zero and with
// ErrTruncation when the value is not finite or does not fit in an int.
func (r Rectangle) Round() (IntRect, error) {
	top, err := roundEdge(r.Top)
	if err != nil {
		return IntRect{}, err
	}
	left, err := roundEdge(r.Left)
	if err != nil {
		return IntRect{}, err
	}
	bottom, err := roundEdge(r.Bottom)
	if err != nil {
		return IntRect{}, err
	}
	right, err := roundEdge(r.Right)
	if err != nil {
		return IntRect{}, err
	}
	return IntRect{Top: top, Left: left, Bottom: bottom, Right: right}, nil
}

// maxEdge bounds edges to values a float64 represents exactly as integers.
const maxEdge = 1 << 53

func roundEdge(v float64) (int, error) {
	if math.IsNaN(v) {
		return 0, ErrTruncation
	}
	rounded := math.Round(v)
	if rounded < 0 {
		return 0, ErrNegativeVertex
	}
	if rounded > maxEdge {
		return 0, ErrTruncation
	}
	n := int(rounded)
	if float64(n) != rounded {
		return 0, ErrTruncation
	}
	return n, nil
}

// IntRect is a rectangle with integer pixel edges, y-up like Rectangle.
type IntRect struct {
	Top, Left, Bottom, Right int
}

// Width returns Right - Left.
func (r IntRect) Width() int {
	return r.Right - r.Left
}

// Height returns Top - Bottom.
func (r IntRect) Height() int {
	return r.Top - r.Bottom
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
