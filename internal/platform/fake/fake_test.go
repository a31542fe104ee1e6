package fake

import (
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_ElementAtReturnsDeepest(t *testing.T) {
	p := DemoProvider()
	app, err := p.Accessibility.Application(DemoEditorPID)
	require.NoError(t, err)

	node, ok := app.ElementAt(geom.Pt(745, 670))
	require.True(t, ok)
	title, _ := node.Attribute(platform.AttrTitle)
	assert.Equal(t, "Save", title)
}

func TestApp_ElementAtMiss(t *testing.T) {
	p := DemoProvider()
	app, _ := p.Accessibility.Application(DemoEditorPID)
	_, ok := app.ElementAt(geom.Pt(1200, 800))
	assert.False(t, ok)
}

func TestChain_Depth(t *testing.T) {
	leaf := Chain(5)
	depth := 0
	var n platform.Node = leaf
	for {
		depth++
		parent, ok := n.Parent()
		if !ok {
			break
		}
		n = parent
	}
	assert.Equal(t, 5, depth)
	title, _ := n.Attribute(platform.AttrTitle)
	assert.Equal(t, "node-0", title)
}

func TestWindowServer_ListWindowsSkipsNonZeroLayers(t *testing.T) {
	p := DemoProvider()
	windows, err := p.Windows.ListWindows(platform.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, windows, 2)

	windows, err = p.Windows.ListWindows(platform.ListOptions{App: "Notes"})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, DemoNotesPID, windows[0].PID)
}

func TestAccessibility_UnknownPID(t *testing.T) {
	p := DemoProvider()
	_, err := p.Accessibility.Application(9999)
	assert.Error(t, err)
	assert.True(t, p.Accessibility.Trusted())
}
