// Package fake provides an in-memory platform for tests and demos: synthetic
// accessibility trees, window lists and displays.
package fake

import (
	"fmt"
	"sort"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// Element is a synthetic accessibility element.
type Element struct {
	attrs    map[string]any
	parent   *Element
	children []*Element

	// ParentOverride, when set, replaces the structural parent. Tests use it
	// to build cycles that a real tree would never expose directly.
	ParentOverride func() (platform.Node, bool)
}

// Attr is one attribute name/value pair.
type Attr struct {
	Name  string
	Value any
}

// Title, Identifier and the other helpers build common attributes.
func Title(s string) Attr      { return Attr{platform.AttrTitle, s} }
func Identifier(s string) Attr { return Attr{platform.AttrIdentifier, s} }
func Value(v any) Attr         { return Attr{platform.AttrValue, v} }
func Subrole(s string) Attr    { return Attr{platform.AttrSubrole, s} }
func Desc(s string) Attr       { return Attr{platform.AttrDescription, s} }
func Enabled(b bool) Attr      { return Attr{platform.AttrEnabled, b} }
func Focused(b bool) Attr      { return Attr{platform.AttrFocused, b} }

// NewElement creates an element. An empty role leaves AXRole unset.
func NewElement(role string, frame geom.Rect, attrs ...Attr) *Element {
	e := &Element{attrs: map[string]any{platform.AttrFrame: frame}}
	if role != "" {
		e.attrs[platform.AttrRole] = role
	}
	for _, a := range attrs {
		e.attrs[a.Name] = a.Value
	}
	return e
}

// Set writes an attribute, returning e for chaining.
func (e *Element) Set(name string, v any) *Element {
	e.attrs[name] = v
	return e
}

// Unset removes an attribute.
func (e *Element) Unset(name string) *Element {
	delete(e.attrs, name)
	return e
}

// Add appends children, returning e for chaining.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Attribute implements platform.Node.
func (e *Element) Attribute(name string) (any, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttributeNames implements platform.Node. Names are sorted for determinism.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Parent implements platform.Node.
func (e *Element) Parent() (platform.Node, bool) {
	if e.ParentOverride != nil {
		return e.ParentOverride()
	}
	if e.parent == nil {
		return nil, false
	}
	return e.parent, true
}

// Children implements platform.Node.
func (e *Element) Children() []platform.Node {
	out := make([]platform.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *Element) frame() (geom.Rect, bool) {
	f, ok := e.attrs[platform.AttrFrame].(geom.Rect)
	return f, ok
}

// Chain builds a linear ancestor chain of n elements and returns the leaf.
// The root is named "node-0" and the leaf "node-<n-1>".
func Chain(n int) *Element {
	var parent, leaf *Element
	for i := 0; i < n; i++ {
		e := NewElement("AXGroup", geom.R(0, 0, 100, 100), Title(fmt.Sprintf("node-%d", i)))
		if parent != nil {
			parent.Add(e)
		}
		parent = e
		leaf = e
	}
	return leaf
}

// App is a synthetic application root.
type App struct {
	Pid  int
	Root *Element
}

// PID implements platform.Application.
func (a *App) PID() int { return a.Pid }

// ElementAt returns the deepest element whose frame contains p. Later
// siblings are on top of earlier ones.
func (a *App) ElementAt(p geom.Point) (platform.Node, bool) {
	if a.Root == nil {
		return nil, false
	}
	hit := hitTest(a.Root, p)
	if hit == nil {
		return nil, false
	}
	return hit, true
}

func hitTest(e *Element, p geom.Point) *Element {
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := hitTest(e.children[i], p); hit != nil {
			return hit
		}
	}
	if f, ok := e.frame(); ok && f.Contains(p) {
		return e
	}
	return nil
}

// Accessibility is a synthetic accessibility backend.
type Accessibility struct {
	Apps      map[int]*App
	Untrusted bool
}

// Application implements platform.Accessibility.
func (a *Accessibility) Application(pid int) (platform.Application, error) {
	app, ok := a.Apps[pid]
	if !ok {
		return nil, fmt.Errorf("no application with PID %d", pid)
	}
	return app, nil
}

// Trusted implements platform.Accessibility.
func (a *Accessibility) Trusted() bool { return !a.Untrusted }

// WindowServer returns a fixed front-to-back window list.
type WindowServer struct {
	Windows []model.WindowInfo
	Err     error
}

// OnScreenWindows implements platform.WindowServer.
func (w *WindowServer) OnScreenWindows() ([]model.WindowInfo, error) {
	if w.Err != nil {
		return nil, w.Err
	}
	return append([]model.WindowInfo(nil), w.Windows...), nil
}

// ListWindows implements platform.WindowServer.
func (w *WindowServer) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	if w.Err != nil {
		return nil, w.Err
	}
	out := []model.Window{}
	for _, info := range w.Windows {
		if info.Layer != 0 {
			continue
		}
		if opts.PID != 0 && info.OwnerPID != opts.PID {
			continue
		}
		if opts.App != "" && info.OwnerName != opts.App {
			continue
		}
		out = append(out, info.ToWindow())
	}
	return out, nil
}

// Screens is a fixed display list.
type Screens struct {
	List []geom.Screen
}

// Screens implements platform.ScreenLister.
func (s *Screens) Screens() ([]geom.Screen, error) {
	return s.List, nil
}

// WindowManager reports a fixed frontmost application.
type WindowManager struct {
	FrontName string
	FrontPID  int
	Bundles   map[int]string
	Names     map[int]string
}

// GetFrontmostApp implements platform.WindowManager.
func (m *WindowManager) GetFrontmostApp() (string, int, error) {
	if m.FrontPID == 0 {
		return "", 0, fmt.Errorf("failed to get frontmost app")
	}
	return m.FrontName, m.FrontPID, nil
}

// AppInfo implements platform.WindowManager.
func (m *WindowManager) AppInfo(pid int) (string, string, error) {
	name, ok := m.Names[pid]
	if !ok {
		return "", "", fmt.Errorf("no application with PID %d", pid)
	}
	return name, m.Bundles[pid], nil
}
