package platform

// Accessibility attribute names read by the core.
const (
	AttrRole            = "AXRole"
	AttrSubrole         = "AXSubrole"
	AttrIdentifier      = "AXIdentifier"
	AttrTitle           = "AXTitle"
	AttrValue           = "AXValue"
	AttrDescription     = "AXDescription"
	AttrHelp            = "AXHelp"
	AttrRoleDescription = "AXRoleDescription"
	AttrFrame           = "AXFrame"
	AttrPosition        = "AXPosition"
	AttrSize            = "AXSize"
	AttrEnabled         = "AXEnabled"
	AttrFocused         = "AXFocused"
	AttrParent          = "AXParent"
	AttrChildren        = "AXChildren"
)
