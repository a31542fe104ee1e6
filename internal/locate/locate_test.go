package locate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func sourceTree(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, root, "Sources/Editor/Footer.swift", `struct Footer: View {
    var body: some View {
        HStack {
            Button("Cancel") { dismiss() }
            Button("Save") { save() }
                .accessibilityIdentifier("save-button")
        }
    }
}
`)
	writeFile(t, root, "Sources/Editor/Labels.swift", `let title = Text("Save")
`)
	writeFile(t, root, "README.md", `Button("Save") is documented here`)
	writeFile(t, root, "node_modules/pkg/index.js", `Button("Save")`)
	return root
}

func TestSearch_OrdersByPatternPriority(t *testing.T) {
	root := sourceTree(t)
	patterns := export.SearchPatterns("save-button", "Save", "AXButton")

	res, err := New().Search(context.Background(), root, patterns, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Invalid)
	assert.Equal(t, 2, res.Files, "README and node_modules are not searched")
	require.Len(t, res.Matches, 3)

	first := res.Matches[0]
	assert.Equal(t, 1, first.PatternIndex)
	assert.Equal(t, `"save-button"`, first.Pattern)
	assert.Equal(t, "Sources/Editor/Footer.swift", first.File)
	assert.Equal(t, 6, first.Line)
	assert.Equal(t, `.accessibilityIdentifier("save-button")`, first.Text)

	assert.Equal(t, "Sources/Editor/Labels.swift", res.Matches[1].File)
	assert.Equal(t, `Text\("Save"\)`, res.Matches[1].Pattern)

	assert.Equal(t, "Sources/Editor/Footer.swift", res.Matches[2].File)
	assert.Equal(t, 5, res.Matches[2].Line)
	assert.Equal(t, `Button\("Save"\)`, res.Matches[2].Pattern)
}

func TestSearch_InvalidPatternsSkipped(t *testing.T) {
	root := sourceTree(t)
	res, err := New().Search(context.Background(), root, []string{`Button\("Save`, `(`}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{`(`}, res.Invalid)
	require.NotEmpty(t, res.Matches)
	assert.Equal(t, 0, res.Matches[0].PatternIndex)
}

func TestSearch_NoValidPatterns(t *testing.T) {
	res, err := New().Search(context.Background(), t.TempDir(), []string{`[`}, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Equal(t, 0, res.Files)
}

func TestSearch_MaxMatchesAndExtensions(t *testing.T) {
	root := sourceTree(t)
	res, err := New().Search(context.Background(), root, []string{`Save`}, Options{MaxMatches: 1})
	require.NoError(t, err)
	assert.Len(t, res.Matches, 1)

	res, err = New().Search(context.Background(), root, []string{`Save`}, Options{Extensions: []string{".md"}})
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "README.md", res.Matches[0].File)
}

func TestSkipped(t *testing.T) {
	assert.True(t, skipped("web/node_modules/pkg"))
	assert.True(t, skipped(".git"))
	assert.False(t, skipped("Sources/Editor"))
	assert.False(t, skipped(""))
}

func TestHasExtension(t *testing.T) {
	assert.True(t, hasExtension("View.SWIFT", []string{".swift"}))
	assert.False(t, hasExtension("Makefile", []string{".swift"}))
}

func TestSearch_LongLineMarksFilePartial(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "web/app.js", "Button(\"Save\")\n"+strings.Repeat("x", maxLine+10)+"\nButton(\"Save\")\n")
	writeFile(t, root, "web/ok.js", "Button(\"Save\")\n")

	res, err := New().Search(context.Background(), root, []string{`Button\("Save"\)`}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"web/app.js"}, res.Partial)
	require.Len(t, res.Matches, 2, "the match after the long line is not reached")
	assert.Equal(t, "web/app.js", res.Matches[0].File)
	assert.Equal(t, 1, res.Matches[0].Line)
	assert.Equal(t, "web/ok.js", res.Matches[1].File)
}
