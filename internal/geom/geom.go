// Package geom holds the point and rectangle types shared by the accessibility
// and window-server layers, plus the conversions between their coordinate
// conventions.
//
// Accessibility space has its origin at the top-left of the primary display
// with y growing downward. Windowing (Cocoa) space has its origin at the
// bottom-left of the primary display with y growing upward. Both are measured
// in points, not pixels.
package geom

import (
	"fmt"
	"strconv"
)

// Point is a location in screen points.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a width and height in screen points.
type Size struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Rect is an origin plus size.
type Rect struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Origin returns the rectangle's origin.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// MaxX is the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY is the far edge along y (bottom in accessibility space).
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. Like CGRectContainsPoint, the
// minimum edges are inclusive and the maximum edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X && r.Y < o.MaxY() && r.MaxY() > o.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Key renders r as a compact "x,y,w,h" string, suitable as a map key.
func (r Rect) Key() string {
	return formatNum(r.X) + "," + formatNum(r.Y) + "," + formatNum(r.W) + "," + formatNum(r.H)
}

// Ints returns r truncated to integer [x, y, w, h].
func (r Rect) Ints() [4]int {
	return [4]int{int(r.X), int(r.Y), int(r.W), int(r.H)}
}

func (p Point) String() string { return fmt.Sprintf("(%s, %s)", formatNum(p.X), formatNum(p.Y)) }

func (s Size) String() string { return formatNum(s.W) + "x" + formatNum(s.H) }

func (r Rect) String() string {
	return fmt.Sprintf("(%s, %s, %sx%s)", formatNum(r.X), formatNum(r.Y), formatNum(r.W), formatNum(r.H))
}

// FormatNum renders a coordinate in its shortest natural form: 10 rather
// than 10.000000, 10.5 rather than 1.05e+01.
func FormatNum(f float64) string { return formatNum(f) }

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
