package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/geom"
)

// Range is a text range attribute value (location and length).
type Range struct {
	Location int
	Length   int
}

// Opaque stands in for an attribute value the backend cannot convert, such
// as a nested element reference. TypeName is the native type's name.
type Opaque struct {
	TypeName string
}

// ListOptions controls window/app listing.
type ListOptions struct {
	Apps bool   // List applications instead of windows
	PID  int    // Filter by PID
	App  string // Filter by app name
}

// ParsePoint parses an "x,y" string into a point.
func ParsePoint(s string) (geom.Point, error) {
	vals, err := parseFloats(s, 2)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geom.Pt(vals[0], vals[1]), nil
}

// ParseBBox parses an "x,y,w,h" string into a rectangle.
func ParseBBox(s string) (geom.Rect, error) {
	vals, err := parseFloats(s, 4)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("invalid bbox %q: %w", s, err)
	}
	if vals[2] < 0 || vals[3] < 0 {
		return geom.Rect{}, fmt.Errorf("invalid bbox %q: negative size", s)
	}
	return geom.R(vals[0], vals[1], vals[2], vals[3]), nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers", n)
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
