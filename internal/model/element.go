package model

import "github.com/mj1618/desktop-annotator/internal/geom"

// HierarchyDepthCap bounds ancestor walks. It counts traversal steps, so
// role-less ancestors that were skipped still use up the budget.
const HierarchyDepthCap = 20

// DefaultSiblingCount is how many neighbours a descriptor carries.
const DefaultSiblingCount = 4

// ElementDescriptor is a snapshot of one accessibility element: its own
// attributes, where it sits in the tree, and what surrounds it. A descriptor
// is only ever built with a non-empty Role; "no element" is represented by
// the absence of a descriptor.
type ElementDescriptor struct {
	Role            string              `yaml:"role"                       json:"role"`
	Subrole         string              `yaml:"subrole,omitempty"          json:"subrole,omitempty"`
	Identifier      string              `yaml:"identifier,omitempty"       json:"identifier,omitempty"`
	Title           string              `yaml:"title,omitempty"            json:"title,omitempty"`
	Value           string              `yaml:"value,omitempty"            json:"value,omitempty"`
	Description     string              `yaml:"description,omitempty"      json:"description,omitempty"`
	HelpText        string              `yaml:"help,omitempty"             json:"help,omitempty"`
	RoleDescription string              `yaml:"role_description,omitempty" json:"role_description,omitempty"`
	Frame           geom.Rect           `yaml:"frame"                      json:"frame"`
	Enabled         *bool               `yaml:"enabled,omitempty"          json:"enabled,omitempty"`
	Focused         *bool               `yaml:"focused,omitempty"          json:"focused,omitempty"`
	HierarchyPath   []HierarchyNode     `yaml:"path,omitempty"             json:"path,omitempty"`
	Siblings        []SiblingDescriptor `yaml:"siblings,omitempty"         json:"siblings,omitempty"`
	WindowFrame     *geom.Rect          `yaml:"window_frame,omitempty"     json:"window_frame,omitempty"`
	WindowTitle     string              `yaml:"window_title,omitempty"     json:"window_title,omitempty"`
	WindowLevel     *int                `yaml:"window_level,omitempty"     json:"window_level,omitempty"`
	AllAttributes   map[string]string   `yaml:"attributes,omitempty"       json:"attributes,omitempty"`

	// PID and Generation identify the target the descriptor was built for.
	// A descriptor from an older generation is stale.
	PID        int    `yaml:"pid,omitempty" json:"pid,omitempty"`
	Generation uint64 `yaml:"-"             json:"-"`
}

// Clone returns a deep copy of d.
func (d ElementDescriptor) Clone() ElementDescriptor {
	c := d
	c.HierarchyPath = append([]HierarchyNode(nil), d.HierarchyPath...)
	c.Siblings = append([]SiblingDescriptor(nil), d.Siblings...)
	if d.AllAttributes != nil {
		c.AllAttributes = make(map[string]string, len(d.AllAttributes))
		for k, v := range d.AllAttributes {
			c.AllAttributes[k] = v
		}
	}
	if d.Enabled != nil {
		v := *d.Enabled
		c.Enabled = &v
	}
	if d.Focused != nil {
		v := *d.Focused
		c.Focused = &v
	}
	if d.WindowFrame != nil {
		v := *d.WindowFrame
		c.WindowFrame = &v
	}
	if d.WindowLevel != nil {
		v := *d.WindowLevel
		c.WindowLevel = &v
	}
	return c
}

// Node returns the descriptor reduced to a hierarchy node.
func (d ElementDescriptor) Node() HierarchyNode {
	return HierarchyNode{Role: d.Role, Subrole: d.Subrole, Identifier: d.Identifier, Title: d.Title}
}

// Label returns the best human label for the element: title, then
// identifier, then description.
func (d ElementDescriptor) Label() string {
	switch {
	case d.Title != "":
		return d.Title
	case d.Identifier != "":
		return d.Identifier
	default:
		return d.Description
	}
}

// HierarchyNode is one step of a hierarchy path.
type HierarchyNode struct {
	Role       string `yaml:"role"                 json:"role"`
	Subrole    string `yaml:"subrole,omitempty"    json:"subrole,omitempty"`
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Title      string `yaml:"title,omitempty"      json:"title,omitempty"`
}

// RelativePosition places a sibling relative to the reference element.
type RelativePosition string

const (
	PositionBefore RelativePosition = "before"
	PositionAfter  RelativePosition = "after"
	PositionAbove  RelativePosition = "above"
	PositionBelow  RelativePosition = "below"
)

// SiblingDescriptor is a lightweight description of a neighbouring element
// under the same parent.
type SiblingDescriptor struct {
	Role       string           `yaml:"role"                 json:"role"`
	Identifier string           `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Title      string           `yaml:"title,omitempty"      json:"title,omitempty"`
	Position   RelativePosition `yaml:"position"             json:"position"`
}
