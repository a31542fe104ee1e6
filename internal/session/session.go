// Package session persists an annotation session between CLI invocations.
// Sessions are YAML documents stored through viant/afs, one per target
// application, so a session location can be a local path or any afs URL.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// filePrefix is the filename prefix for session files.
const filePrefix = "desktop-annotator-session-"

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("no saved session")

// Session is the saved state of one annotation session.
type Session struct {
	App         string             `yaml:"app"`
	BundleID    string             `yaml:"bundle_id,omitempty"`
	PID         int                `yaml:"pid,omitempty"`
	WindowTitle string             `yaml:"window_title,omitempty"`
	NextBadge   int                `yaml:"next_badge"`
	Annotations []model.Annotation `yaml:"annotations"`
	SavedAt     time.Time          `yaml:"saved_at"`
}

// Store returns the session's annotations as a live store.
func (s *Session) Store() *model.AnnotationStore {
	return model.RestoreAnnotationStore(s.Annotations, s.NextBadge)
}

// Capture copies the current contents of store into the session.
func (s *Session) Capture(store *model.AnnotationStore) {
	s.Annotations = store.All()
	s.NextBadge = store.NextBadge()
}

// Repository reads and writes session files under one base location.
type Repository struct {
	fs      afs.Service
	baseURL string
}

// NewRepository returns a repository rooted at baseURL. An empty baseURL
// means the system temp directory.
func NewRepository(baseURL string) *Repository {
	if baseURL == "" {
		baseURL = os.TempDir()
	}
	return &Repository{fs: afs.New(), baseURL: baseURL}
}

// URL returns the location of the session file for app.
func (r *Repository) URL(app string) string {
	return url.Join(r.baseURL, filePrefix+safeName(app)+".yaml")
}

// Save writes s, replacing any earlier session for the same app.
func (r *Repository) Save(ctx context.Context, s *Session) error {
	return SaveTo(ctx, r.fs, r.URL(s.App), s)
}

// Load reads the session for app. It returns ErrNoSession when none exists.
func (r *Repository) Load(ctx context.Context, app string) (*Session, error) {
	return LoadFrom(ctx, r.fs, r.URL(app))
}

// LoadOrNew reads the session for app, starting an empty one when none
// exists yet.
func (r *Repository) LoadOrNew(ctx context.Context, app string) (*Session, error) {
	s, err := r.Load(ctx, app)
	if errors.Is(err, ErrNoSession) {
		return &Session{App: app, NextBadge: 1}, nil
	}
	return s, err
}

// Remove deletes the session for app. Removing a missing session is not an
// error.
func (r *Repository) Remove(ctx context.Context, app string) error {
	URL := r.URL(app)
	ok, err := r.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("check session %s: %w", URL, err)
	}
	if !ok {
		return nil
	}
	if err := r.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("remove session %s: %w", URL, err)
	}
	return nil
}

// SaveTo writes s as YAML to URL.
func SaveTo(ctx context.Context, fs afs.Service, URL string, s *Session) error {
	s.SavedAt = time.Now().UTC()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write session %s: %w", URL, err)
	}
	return nil
}

// LoadFrom reads a session previously written with SaveTo.
func LoadFrom(ctx context.Context, fs afs.Service, URL string) (*Session, error) {
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("check session %s: %w", URL, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", URL, ErrNoSession)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if s.NextBadge < 1 {
		s.NextBadge = 1
	}
	return &s, nil
}

func safeName(app string) string {
	if app == "" {
		return "default"
	}
	r := strings.NewReplacer("/", "_", " ", "_", ":", "_", "\\", "_")
	return r.Replace(app)
}
