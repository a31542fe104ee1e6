package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-annotator/internal/inspector"
	"github.com/mj1618/desktop-annotator/internal/platform/fake"
	"github.com/mj1618/desktop-annotator/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, sessions *session.Repository) *Server {
	t.Helper()
	return New(fake.DemoProvider(), Config{Inspector: inspector.DefaultConfig(), Sessions: sessions})
}

func call(t *testing.T, h handler, args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func target(t *testing.T, s *Server) {
	t.Helper()
	out, isErr := call(t, s.handleSetTarget, map[string]interface{}{"pid": float64(fake.DemoEditorPID)})
	require.False(t, isErr, out)
	assert.Contains(t, out, "app: TextEdit")
	assert.Contains(t, out, "bundle_id: com.apple.TextEdit")
}

func TestSetTarget(t *testing.T) {
	s := newTestServer(t, nil)

	out, isErr := call(t, s.handleSetTarget, map[string]interface{}{})
	assert.True(t, isErr)
	assert.Contains(t, out, "provide pid or frontmost")

	out, isErr = call(t, s.handleSetTarget, map[string]interface{}{"frontmost": true})
	require.False(t, isErr, out)
	assert.Contains(t, out, "pid: 501")

	_, isErr = call(t, s.handleSetTarget, map[string]interface{}{"pid": float64(9999)})
	assert.True(t, isErr)
}

func TestElementAt_RequiresTarget(t *testing.T) {
	s := newTestServer(t, nil)
	out, isErr := call(t, s.handleElementAt, map[string]interface{}{"x": 745.0, "y": 673.0})
	assert.True(t, isErr)
	assert.Contains(t, out, "set_target")
}

func TestElementAt(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleElementAt, map[string]interface{}{"x": 745.0, "y": 673.0})
	require.False(t, isErr, out)
	assert.Contains(t, out, "frontmost: true")
	assert.Contains(t, out, "identifier: save-button")

	// Same point in the bottom-left convention.
	out, isErr = call(t, s.handleElementAt, map[string]interface{}{"x": 745.0, "y": 227.0, "origin": "bottom-left"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "identifier: save-button")

	_, isErr = call(t, s.handleElementAt, map[string]interface{}{"x": 745.0, "y": 227.0, "origin": "center"})
	assert.True(t, isErr)

	_, isErr = call(t, s.handleElementAt, map[string]interface{}{"x": 745.0})
	assert.True(t, isErr)
}

func TestIsFrontmost(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleIsFrontmost, map[string]interface{}{"x": 745.0, "y": 673.0})
	require.False(t, isErr, out)
	assert.Contains(t, out, "frontmost: true")

	// The notes window covers the editor's top-left corner.
	out, isErr = call(t, s.handleIsFrontmost, map[string]interface{}{"x": 150.0, "y": 150.0})
	require.False(t, isErr, out)
	assert.Contains(t, out, "frontmost: false")
	assert.Contains(t, out, "Notes")
}

func TestAnnotate_RefusesCoveredPoint(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleAnnotate, map[string]interface{}{"x": 150.0, "y": 150.0, "text": "hidden"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not frontmost")
	assert.Equal(t, 0, s.Inspector().Store().Len())
}

func TestAnnotateListRemoveExport(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleAnnotate, map[string]interface{}{"x": 745.0, "y": 673.0, "text": "make this red"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "badge: 1")
	assert.Contains(t, out, "next_badge: 2")

	out, isErr = call(t, s.handleAnnotate, map[string]interface{}{"x": 645.0, "y": 673.0, "text": "drop this"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "badge: 2")

	out, isErr = call(t, s.handleRemoveAnnotation, map[string]interface{}{"badge": float64(2)})
	require.False(t, isErr, out)

	_, isErr = call(t, s.handleRemoveAnnotation, map[string]interface{}{"badge": float64(2)})
	assert.True(t, isErr, "badge 2 is gone")

	out, isErr = call(t, s.handleUpdateAnnotation, map[string]interface{}{"badge": float64(1), "text": "make this blue"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "text: make this blue")

	out, isErr = call(t, s.handleListAnnotations, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "next_badge: 3")

	out, isErr = call(t, s.handleExport, map[string]interface{}{})
	require.False(t, isErr, out)
	assert.Contains(t, out, "# UI Feedback: TextEdit\n")
	assert.Contains(t, out, "**Bundle ID:** com.apple.TextEdit\n**Window:** Untitled\n**Screen:** 1440x900\n")
	assert.Contains(t, out, "## 1. Button[id=\"save-button\", title=\"Save\"]\n")
	assert.Contains(t, out, "**Feedback:** make this blue\n")
	assert.NotContains(t, out, "drop this")

	out, isErr = call(t, s.handleExport, map[string]interface{}{"format": "forensic"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "**Frame:** x=700 y=658 w=90 h=30\n")

	out, isErr = call(t, s.handleExport, map[string]interface{}{"html": true})
	require.False(t, isErr, out)
	assert.Contains(t, out, "<h1>UI Feedback: TextEdit</h1>")

	_, isErr = call(t, s.handleExport, map[string]interface{}{"format": "brief"})
	assert.True(t, isErr)

	out, isErr = call(t, s.handleClearAnnotations, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "cleared 1 annotations")
	assert.Equal(t, 1, s.Inspector().Store().NextBadge())
}

func TestAnnotateRegion(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleAnnotate, map[string]interface{}{
		"x": 590.0, "y": 650.0, "w": 210.0, "h": 45.0,
		"text": "align these", "roles": "interactive",
	})
	require.False(t, isErr, out)
	all := s.Inspector().Store().All()
	require.Len(t, all, 2)
	assert.Equal(t, "Cancel", all[0].Element.Title)
	assert.Equal(t, "Save", all[1].Element.Title)
	assert.NotEmpty(t, all[0].RegionID)
	assert.Equal(t, all[0].RegionID, all[1].RegionID)
}

func TestScanRegion(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)

	out, isErr := call(t, s.handleScanRegion, map[string]interface{}{"x": 590.0, "y": 650.0, "w": 210.0, "h": 45.0, "roles": "AXButton"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "identifier: save-button")
	assert.Contains(t, out, "title: Cancel")

	// The toolbar sits under the notes window, so nothing there is reachable.
	out, isErr = call(t, s.handleScanRegion, map[string]interface{}{"x": 100.0, "y": 128.0, "w": 180.0, "h": 40.0, "roles": "AXButton"})
	require.False(t, isErr, out)
	assert.NotContains(t, out, "bold-button")

	_, isErr = call(t, s.handleScanRegion, map[string]interface{}{"x": 100.0, "y": 128.0, "w": 0.0, "h": 40.0})
	assert.True(t, isErr)
}

func TestLocate(t *testing.T) {
	s := newTestServer(t, nil)
	target(t, s)
	_, isErr := call(t, s.handleAnnotate, map[string]interface{}{"x": 745.0, "y": 673.0, "text": "rename"})
	require.False(t, isErr)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Footer.swift"), []byte("Button(\"Save\") { save() }\n"), 0o644))

	out, isErr := call(t, s.handleLocate, map[string]interface{}{"root": root, "badge": float64(1)})
	require.False(t, isErr, out)
	assert.Contains(t, out, "file: Footer.swift")
	assert.Contains(t, out, "line: 1")

	out, isErr = call(t, s.handleLocate, map[string]interface{}{"root": root, "title": "Save", "role": "AXButton"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Footer.swift")

	_, isErr = call(t, s.handleLocate, map[string]interface{}{"root": root, "badge": float64(7)})
	assert.True(t, isErr)

	_, isErr = call(t, s.handleLocate, map[string]interface{}{"root": root})
	assert.True(t, isErr)
}

func TestPersistSavesSession(t *testing.T) {
	repo := session.NewRepository(t.TempDir())
	s := newTestServer(t, repo)
	target(t, s)

	_, isErr := call(t, s.handleAnnotate, map[string]interface{}{"x": 745.0, "y": 673.0, "text": "make this red"})
	require.False(t, isErr)

	sess, err := repo.Load(context.Background(), "TextEdit")
	require.NoError(t, err)
	require.Len(t, sess.Annotations, 1)
	assert.Equal(t, "make this red", sess.Annotations[0].Text)
	assert.Equal(t, 2, sess.NextBadge)
	assert.Equal(t, "Untitled", sess.WindowTitle)
}

func TestToolsRegistered(t *testing.T) {
	s := newTestServer(t, nil)
	tools := s.MCP().ListTools()
	for _, name := range []string{
		"set_target", "element_at", "is_frontmost", "scan_region", "annotate",
		"list_annotations", "update_annotation", "remove_annotation", "clear_annotations",
		"export", "locate",
	} {
		assert.Contains(t, tools, name)
	}
}
