package platform

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
)

// Node is an opaque handle to one element in another process's
// accessibility tree. Handles have no stable identity: two queries that
// reach the same on-screen element may return values that compare unequal.
type Node interface {
	// Attribute reads one attribute. Values arrive as Go types: string,
	// bool, integer and float kinds, geom.Point, geom.Size, geom.Rect,
	// Range, []any, or Opaque. A missing or unreadable attribute reports false.
	Attribute(name string) (any, bool)

	// AttributeNames lists every attribute the element exposes.
	AttributeNames() []string

	// Parent returns the element's parent, or false at the root.
	Parent() (Node, bool)

	// Children returns the element's children in native order.
	Children() []Node
}

// Application is the accessibility root of one running process.
type Application interface {
	PID() int

	// ElementAt hit-tests a point in accessibility space and returns the
	// deepest element there.
	ElementAt(p geom.Point) (Node, bool)
}

// Accessibility opens accessibility roots for processes.
type Accessibility interface {
	Application(pid int) (Application, error)

	// Trusted reports whether this process holds the accessibility permission.
	Trusted() bool
}

// WindowServer enumerates windows.
type WindowServer interface {
	// OnScreenWindows returns every on-screen window in front-to-back order,
	// including non-application layers and this process's own windows.
	OnScreenWindows() ([]model.WindowInfo, error)

	// ListWindows returns application windows (layer 0), optionally filtered.
	ListWindows(opts ListOptions) ([]model.Window, error)
}

// ScreenLister enumerates attached displays.
type ScreenLister interface {
	Screens() ([]geom.Screen, error)
}

// WindowManager reports application focus.
type WindowManager interface {
	GetFrontmostApp() (string, int, error)

	// AppInfo returns the localized name and bundle identifier for pid.
	AppInfo(pid int) (name, bundleID string, err error)
}
