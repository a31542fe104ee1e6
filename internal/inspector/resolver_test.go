package inspector

import (
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoApp(t *testing.T) *fake.App {
	t.Helper()
	p := fake.DemoProvider()
	app, err := p.Accessibility.Application(fake.DemoEditorPID)
	require.NoError(t, err)
	return app.(*fake.App)
}

func TestResolver_ResolveBuildsFullDescriptor(t *testing.T) {
	r := NewResolver(DefaultConfig())
	d, ok := r.Resolve(demoApp(t), geom.Pt(745, 670))
	require.True(t, ok)

	assert.Equal(t, "AXButton", d.Role)
	assert.Equal(t, "Save", d.Title)
	assert.Equal(t, "save-button", d.Identifier)
	assert.Equal(t, fake.DemoEditorPID, d.PID)
	assert.Equal(t, "Untitled", d.WindowTitle)
	require.NotNil(t, d.WindowFrame)
	assert.Equal(t, geom.R(100, 100, 800, 600), *d.WindowFrame)

	var roles []string
	for _, n := range d.HierarchyPath {
		roles = append(roles, n.Role)
	}
	assert.Equal(t, []string{"AXApplication", "AXWindow", "AXGroup", "AXButton"}, roles)

	require.Len(t, d.Siblings, 2)
	assert.Equal(t, "AXStaticText", d.Siblings[0].Role)
	assert.Equal(t, model.PositionBefore, d.Siblings[0].Position)
	assert.Equal(t, "Cancel", d.Siblings[1].Title)
	assert.Equal(t, model.PositionBefore, d.Siblings[1].Position)
	assert.Nil(t, d.AllAttributes)
}

func TestResolver_EmptyPointIsNothing(t *testing.T) {
	r := NewResolver(DefaultConfig())
	for _, p := range []geom.Point{geom.Pt(1300, 850), geom.Pt(-5, -5)} {
		d, ok := r.Resolve(demoApp(t), p)
		assert.False(t, ok)
		assert.Empty(t, d.Role, "never a descriptor with an empty role")
	}
}

func TestResolver_RolelessHitIsNothing(t *testing.T) {
	root := fake.NewElement("", geom.R(0, 0, 100, 100))
	app := &fake.App{Pid: 1, Root: root}
	_, ok := NewResolver(DefaultConfig()).Resolve(app, geom.Pt(10, 10))
	assert.False(t, ok)
}

func TestResolver_NilApp(t *testing.T) {
	_, ok := NewResolver(DefaultConfig()).Resolve(nil, geom.Pt(1, 1))
	assert.False(t, ok)
}

func TestResolver_ForensicAddsAttributes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forensic = true
	d, ok := NewResolver(cfg).Resolve(demoApp(t), geom.Pt(745, 670))
	require.True(t, ok)
	assert.Equal(t, "Save", d.AllAttributes["AXTitle"])
	assert.Equal(t, "(700, 658, 90x30)", d.AllAttributes["AXFrame"])
	assert.Equal(t, "true", d.AllAttributes["AXEnabled"])
}
