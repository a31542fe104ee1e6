package inspector

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// ExtractStandard reads the fixed attribute set. Each attribute is optional
// and read independently. It reports false when the element has no
// readable role, which is the minimum for an inspectable element.
func ExtractStandard(node platform.Node) (model.ElementDescriptor, bool) {
	if node == nil {
		return model.ElementDescriptor{}, false
	}
	role := readString(node, platform.AttrRole)
	if role == "" {
		return model.ElementDescriptor{}, false
	}
	d := model.ElementDescriptor{
		Role:            role,
		Subrole:         readString(node, platform.AttrSubrole),
		Identifier:      readString(node, platform.AttrIdentifier),
		Title:           readString(node, platform.AttrTitle),
		Value:           readText(node, platform.AttrValue),
		Description:     readString(node, platform.AttrDescription),
		HelpText:        readString(node, platform.AttrHelp),
		RoleDescription: readString(node, platform.AttrRoleDescription),
		Enabled:         readBool(node, platform.AttrEnabled),
		Focused:         readBool(node, platform.AttrFocused),
	}
	if f, ok := readFrame(node); ok {
		d.Frame = f
	}
	return d, true
}

// ExtractAllAttributes enumerates every attribute the element exposes and
// stringifies each value. Attributes that fail to read are left out.
func ExtractAllAttributes(node platform.Node) map[string]string {
	if node == nil {
		return nil
	}
	names := node.AttributeNames()
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := node.Attribute(name)
		if !ok {
			continue
		}
		out[name] = StringifyValue(v)
	}
	return out
}

// readString returns a string attribute, or "" when it is absent or not a
// string.
func readString(node platform.Node, name string) string {
	v, ok := node.Attribute(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// readText is like readString but renders scalar values (slider positions,
// checkbox states) as text.
func readText(node platform.Node, name string) string {
	v, ok := node.Attribute(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return StringifyValue(v)
}

func readBool(node platform.Node, name string) *bool {
	v, ok := node.Attribute(name)
	if !ok {
		return nil
	}
	switch b := v.(type) {
	case bool:
		return &b
	case int:
		r := b != 0
		return &r
	case int64:
		r := b != 0
		return &r
	case int32:
		r := b != 0
		return &r
	case float64:
		r := b != 0
		return &r
	}
	return nil
}

// readFrame reads AXFrame, falling back to AXPosition plus AXSize for
// elements that only expose the pair.
func readFrame(node platform.Node) (geom.Rect, bool) {
	if v, ok := node.Attribute(platform.AttrFrame); ok {
		if r, ok := v.(geom.Rect); ok {
			return r, true
		}
	}
	pv, ok := node.Attribute(platform.AttrPosition)
	if !ok {
		return geom.Rect{}, false
	}
	sv, ok := node.Attribute(platform.AttrSize)
	if !ok {
		return geom.Rect{}, false
	}
	p, ok1 := pv.(geom.Point)
	s, ok2 := sv.(geom.Size)
	if !ok1 || !ok2 {
		return geom.Rect{}, false
	}
	return geom.R(p.X, p.Y, s.W, s.H), true
}
