package model

import "strings"

// Accessibility roles the core looks for by name.
const (
	RoleWindow      = "AXWindow"
	RoleApplication = "AXApplication"
	RoleStaticText  = "AXStaticText"
	RoleButton      = "AXButton"
	RoleGroup       = "AXGroup"
)

// MetaRoles maps meta-role names to the concrete accessibility roles they
// expand to. Region scans use them to keep only controls a user would
// annotate.
var MetaRoles = map[string][]string{
	"interactive": {
		"AXButton", "AXCheckBox", "AXRadioButton", "AXPopUpButton", "AXMenuButton",
		"AXTextField", "AXTextArea", "AXSlider", "AXLink", "AXComboBox", "AXSwitch",
		"AXDisclosureTriangle", "AXIncrementor", "AXSegmentedControl",
	},
	"text":      {"AXStaticText", "AXTextField", "AXTextArea", "AXHeading"},
	"container": {"AXGroup", "AXSplitGroup", "AXScrollArea", "AXToolbar", "AXTabGroup", "AXList", "AXOutline", "AXTable"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Plain role names are normalised to their AX form. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				add(c)
			}
			continue
		}
		add(AXRole(r))
	}
	return expanded
}

// DisplayRole strips the "AX" prefix from an accessibility role, so
// "AXButton" reads as "Button". Roles without the prefix pass through.
func DisplayRole(role string) string {
	if len(role) > 2 && strings.HasPrefix(role, "AX") {
		return role[2:]
	}
	return role
}

// AXRole is the inverse of DisplayRole: "Button" becomes "AXButton".
func AXRole(role string) string {
	if role == "" || strings.HasPrefix(role, "AX") {
		return role
	}
	return "AX" + role
}

// IsWindowRole reports whether role names a window.
func IsWindowRole(role string) bool {
	return role == RoleWindow || role == "Window"
}
