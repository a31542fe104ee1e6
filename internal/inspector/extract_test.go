package inspector

import (
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/mj1618/desktop-annotator/internal/platform/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStandard_AllFields(t *testing.T) {
	el := fake.NewElement("AXButton", geom.R(10, 10, 80, 30),
		fake.Title("Save"), fake.Identifier("save-button"), fake.Subrole("AXDefaultButton"),
		fake.Desc("save document"), fake.Enabled(true), fake.Focused(false),
	).Set(platform.AttrHelp, "Saves").Set(platform.AttrRoleDescription, "button")

	d, ok := ExtractStandard(el)
	require.True(t, ok)
	assert.Equal(t, "AXButton", d.Role)
	assert.Equal(t, "AXDefaultButton", d.Subrole)
	assert.Equal(t, "save-button", d.Identifier)
	assert.Equal(t, "Save", d.Title)
	assert.Equal(t, "save document", d.Description)
	assert.Equal(t, "Saves", d.HelpText)
	assert.Equal(t, "button", d.RoleDescription)
	assert.Equal(t, geom.R(10, 10, 80, 30), d.Frame)
	require.NotNil(t, d.Enabled)
	assert.True(t, *d.Enabled)
	require.NotNil(t, d.Focused)
	assert.False(t, *d.Focused)
	assert.Nil(t, d.AllAttributes)
}

func TestExtractStandard_NoRoleIsNothing(t *testing.T) {
	el := fake.NewElement("", geom.R(0, 0, 10, 10), fake.Title("orphan"))
	_, ok := ExtractStandard(el)
	assert.False(t, ok)

	el = fake.NewElement("", geom.R(0, 0, 10, 10)).Set(platform.AttrRole, 12)
	_, ok = ExtractStandard(el)
	assert.False(t, ok, "a non-string role is not readable")

	_, ok = ExtractStandard(nil)
	assert.False(t, ok)
}

func TestExtractStandard_MissingAttributesDegrade(t *testing.T) {
	el := fake.NewElement("AXGroup", geom.Rect{}).Unset(platform.AttrFrame).Set(platform.AttrTitle, 99)
	d, ok := ExtractStandard(el)
	require.True(t, ok)
	assert.Empty(t, d.Title, "wrongly typed title degrades to absent")
	assert.Equal(t, geom.Rect{}, d.Frame)
	assert.Nil(t, d.Enabled)
	assert.Nil(t, d.Focused)
}

func TestExtractStandard_ScalarValueRendered(t *testing.T) {
	el := fake.NewElement("AXSlider", geom.R(0, 0, 100, 20), fake.Value(0.75))
	d, ok := ExtractStandard(el)
	require.True(t, ok)
	assert.Equal(t, "0.75", d.Value)
}

func TestExtractStandard_PositionSizeFallback(t *testing.T) {
	el := fake.NewElement("AXButton", geom.Rect{}).
		Unset(platform.AttrFrame).
		Set(platform.AttrPosition, geom.Pt(5, 6)).
		Set(platform.AttrSize, geom.Size{W: 7, H: 8})
	d, ok := ExtractStandard(el)
	require.True(t, ok)
	assert.Equal(t, geom.R(5, 6, 7, 8), d.Frame)
}

func TestExtractAllAttributes(t *testing.T) {
	el := fake.NewElement("AXTextField", geom.R(1, 2, 3, 4), fake.Value("hi")).
		Set("AXSelectedTextRange", platform.Range{Location: 0, Length: 2}).
		Set(platform.AttrChildren, []any{}).
		Set(platform.AttrParent, platform.Opaque{TypeName: "AXUIElement"})
	attrs := ExtractAllAttributes(el)
	assert.Equal(t, map[string]string{
		"AXRole":              "AXTextField",
		"AXFrame":             "(1, 2, 3x4)",
		"AXValue":             "hi",
		"AXSelectedTextRange": "range(0, 2)",
		"AXChildren":          "[0 items]",
		"AXParent":            "<AXUIElement>",
	}, attrs)
}

// flakyNode lists an attribute it then fails to read.
type flakyNode struct{ *fake.Element }

func (f flakyNode) AttributeNames() []string {
	return append(f.Element.AttributeNames(), "AXBroken")
}

func TestExtractAllAttributes_SkipsUnreadable(t *testing.T) {
	el := flakyNode{fake.NewElement("AXButton", geom.R(0, 0, 1, 1))}
	attrs := ExtractAllAttributes(el)
	assert.NotContains(t, attrs, "AXBroken")
	assert.Equal(t, "AXButton", attrs["AXRole"])
}

func TestExtractStandard_NumericBooleans(t *testing.T) {
	el := fake.NewElement("AXCheckBox", geom.R(0, 0, 20, 20)).
		Set(platform.AttrEnabled, int64(1)).
		Set(platform.AttrFocused, int64(0))

	d, ok := ExtractStandard(el)
	require.True(t, ok)
	require.NotNil(t, d.Enabled)
	assert.True(t, *d.Enabled)
	require.NotNil(t, d.Focused)
	assert.False(t, *d.Focused)
}
