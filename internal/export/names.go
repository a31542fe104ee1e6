package export

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-annotator/internal/model"
)

// ElementName renders a role with its identifying attributes, e.g.
// Button[id="save-button", title="Save"], or just the role when it has none.
func ElementName(role, identifier, title string) string {
	r := model.DisplayRole(role)
	var attrs []string
	if identifier != "" {
		attrs = append(attrs, fmt.Sprintf("id=%q", identifier))
	}
	if title != "" {
		attrs = append(attrs, fmt.Sprintf("title=%q", title))
	}
	if len(attrs) == 0 {
		return r
	}
	return r + "[" + strings.Join(attrs, ", ") + "]"
}

// PathString joins a hierarchy path with " > ".
func PathString(path []model.HierarchyNode) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = ElementName(n.Role, n.Identifier, n.Title)
	}
	return strings.Join(parts, " > ")
}

// SiblingName renders a sibling with its relative position.
func SiblingName(s model.SiblingDescriptor) string {
	return fmt.Sprintf("%s (%s)", ElementName(s.Role, s.Identifier, s.Title), s.Position)
}
