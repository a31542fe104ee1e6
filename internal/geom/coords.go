package geom

// Screen describes one attached display. Frame is in windowing space, so the
// primary display always has its origin at (0, 0).
type Screen struct {
	ID      int    `yaml:"id"      json:"id"`
	Name    string `yaml:"name"    json:"name,omitempty"`
	Frame   Rect   `yaml:"frame"   json:"frame"`
	Focused bool   `yaml:"focused" json:"focused,omitempty"`
}

// Primary returns the primary display: the screen whose frame origin is
// (0, 0). Accessibility coordinates are anchored to that display no matter
// which screen currently has focus. When no screen sits at the origin the
// first screen is used, matching NSScreen.screens ordering. Returns false
// for an empty list.
func Primary(screens []Screen) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	for _, s := range screens {
		if s.Frame.X == 0 && s.Frame.Y == 0 {
			return s, true
		}
	}
	return screens[0], true
}

// PrimaryHeight returns the height of the primary display, the H in every
// flip between the two conventions.
func PrimaryHeight(screens []Screen) (float64, bool) {
	s, ok := Primary(screens)
	return s.Frame.H, ok
}

// ToWindowing converts an accessibility-space point to windowing space.
// The flip is its own inverse; ToAccessibility is the same operation under
// the name that reads correctly at call sites going the other way.
func ToWindowing(p Point, primaryHeight float64) Point {
	return Point{X: p.X, Y: primaryHeight - p.Y}
}

// ToAccessibility converts a windowing-space point to accessibility space.
func ToAccessibility(p Point, primaryHeight float64) Point {
	return ToWindowing(p, primaryHeight)
}

// RectToWindowing converts an accessibility-space rectangle (top-left origin)
// to windowing space (bottom-left origin). The rectangle's origin moves to the
// opposite edge, so the size takes part in the flip.
func RectToWindowing(r Rect, primaryHeight float64) Rect {
	return Rect{X: r.X, Y: primaryHeight - r.Y - r.H, W: r.W, H: r.H}
}

// RectToAccessibility converts a windowing-space rectangle to accessibility space.
func RectToAccessibility(r Rect, primaryHeight float64) Rect {
	return RectToWindowing(r, primaryHeight)
}

// ToOverlayLocal converts an accessibility-space rectangle to the local
// coordinates of an overlay window whose frame origin (windowing space) is
// overlayOrigin.
func ToOverlayLocal(r Rect, primaryHeight float64, overlayOrigin Point) Rect {
	w := RectToWindowing(r, primaryHeight)
	w.X -= overlayOrigin.X
	w.Y -= overlayOrigin.Y
	return w
}

// FromOverlayLocal is the inverse of ToOverlayLocal.
func FromOverlayLocal(local Rect, primaryHeight float64, overlayOrigin Point) Rect {
	local.X += overlayOrigin.X
	local.Y += overlayOrigin.Y
	return RectToAccessibility(local, primaryHeight)
}

// PointFromOverlayLocal converts a point in overlay-local coordinates (for
// example a mouse event location) to accessibility space.
func PointFromOverlayLocal(p Point, primaryHeight float64, overlayOrigin Point) Point {
	return ToAccessibility(Point{X: p.X + overlayOrigin.X, Y: p.Y + overlayOrigin.Y}, primaryHeight)
}
