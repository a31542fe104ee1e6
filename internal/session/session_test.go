package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func button(title string) model.ElementDescriptor {
	return model.ElementDescriptor{
		Role:  "AXButton",
		Title: title,
		Frame: geom.R(700, 658, 90, 30),
		HierarchyPath: []model.HierarchyNode{
			{Role: "AXWindow", Title: "Untitled"},
			{Role: "AXButton", Title: title},
		},
	}
}

func TestRepository_SaveLoadKeepsBadges(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(t.TempDir())

	store := model.NewAnnotationStore()
	store.Add(model.NewAnnotation(button("Save"), "make this red", "Untitled", "TextEdit", "com.apple.TextEdit"))
	store.Add(model.NewAnnotation(button("Cancel"), "remove", "Untitled", "TextEdit", "com.apple.TextEdit"))
	require.NoError(t, store.Remove(2))

	s := &Session{App: "TextEdit", BundleID: "com.apple.TextEdit", PID: 501}
	s.Capture(store)
	require.NoError(t, repo.Save(ctx, s))

	loaded, err := repo.Load(ctx, "TextEdit")
	require.NoError(t, err)
	assert.Equal(t, "com.apple.TextEdit", loaded.BundleID)
	assert.Equal(t, 3, loaded.NextBadge)
	require.Len(t, loaded.Annotations, 1)
	a := loaded.Annotations[0]
	assert.Equal(t, 1, a.Badge)
	assert.Equal(t, "make this red", a.Text)
	assert.Equal(t, geom.R(700, 658, 90, 30), a.Element.Frame)
	assert.Len(t, a.Element.HierarchyPath, 2)

	restored := loaded.Store()
	next := restored.Add(model.NewAnnotation(button("Other"), "x", "", "", ""))
	assert.Equal(t, 3, next.Badge, "removed badge 2 must not come back")
}

func TestRepository_LoadMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(t.TempDir())

	_, err := repo.Load(ctx, "Nothing")
	assert.True(t, errors.Is(err, ErrNoSession))

	s, err := repo.LoadOrNew(ctx, "Nothing")
	require.NoError(t, err)
	assert.Equal(t, "Nothing", s.App)
	assert.Equal(t, 1, s.NextBadge)
	assert.Empty(t, s.Annotations)
}

func TestRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(t.TempDir())

	require.NoError(t, repo.Remove(ctx, "Notes"), "removing a missing session is fine")

	require.NoError(t, repo.Save(ctx, &Session{App: "Notes", NextBadge: 1}))
	_, err := repo.Load(ctx, "Notes")
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, "Notes"))
	_, err = repo.Load(ctx, "Notes")
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestRepository_URLIsPerApp(t *testing.T) {
	repo := NewRepository("/tmp/sessions")
	a := repo.URL("Visual Studio Code")
	b := repo.URL("TextEdit")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "desktop-annotator-session-Visual_Studio_Code.yaml"), a)
	assert.Contains(t, repo.URL("a/b"), "session-a_b.yaml")
	assert.Contains(t, repo.URL(""), "session-default.yaml")
}
