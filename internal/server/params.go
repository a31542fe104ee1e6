package server

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/geom"
)

// Parameter extraction helpers for tool argument maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func floatParam(params map[string]interface{}, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// pointParam reads x and y. Both are required.
func pointParam(params map[string]interface{}) (geom.Point, error) {
	x, okX := floatParam(params, "x")
	y, okY := floatParam(params, "y")
	if !okX || !okY {
		return geom.Point{}, fmt.Errorf("x and y are required")
	}
	return geom.Pt(x, y), nil
}

// rectParam reads x, y, w and h. A missing or non-positive size is an error.
func rectParam(params map[string]interface{}) (geom.Rect, error) {
	p, err := pointParam(params)
	if err != nil {
		return geom.Rect{}, err
	}
	w, _ := floatParam(params, "w")
	h, _ := floatParam(params, "h")
	if w <= 0 || h <= 0 {
		return geom.Rect{}, fmt.Errorf("w and h must be positive")
	}
	return geom.R(p.X, p.Y, w, h), nil
}

// rolesParam splits a comma-separated role list.
func rolesParam(params map[string]interface{}) []string {
	raw := stringParam(params, "roles", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// bottomLeft reports whether the caller sent windowing-space coordinates.
func bottomLeft(params map[string]interface{}) (bool, error) {
	switch o := stringParam(params, "origin", "top-left"); o {
	case "top-left", "":
		return false, nil
	case "bottom-left":
		return true, nil
	default:
		return false, fmt.Errorf("unknown origin %q (use top-left or bottom-left)", o)
	}
}
