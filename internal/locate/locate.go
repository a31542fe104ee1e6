// Package locate searches a source tree for the patterns the exporter
// derives from an element, so the element's definition can be found again.
package locate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultExtensions are the source files searched when Options.Extensions
// is empty.
var DefaultExtensions = []string{".swift", ".m", ".mm", ".h", ".xib", ".storyboard", ".go", ".ts", ".tsx", ".js", ".jsx", ".rs", ".py", ".cs", ".kt", ".java"}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "build": true,
	"DerivedData": true, "Pods": true, ".build": true, "dist": true,
}

// Options controls a search.
type Options struct {
	Extensions  []string
	MaxMatches  int // 0 means unlimited
	MaxFileSize int64
}

// Match is one line matching one pattern.
type Match struct {
	Pattern      string `yaml:"pattern"       json:"pattern"`
	PatternIndex int    `yaml:"pattern_index" json:"pattern_index"`
	File         string `yaml:"file"          json:"file"`
	Line         int    `yaml:"line"          json:"line"`
	Text         string `yaml:"text"          json:"text"`
}

// Result holds the matches of a search, the patterns that did not compile,
// and the files whose scan stopped early (a line longer than maxLine).
type Result struct {
	Root    string   `yaml:"root"                json:"root"`
	Files   int      `yaml:"files"               json:"files"`
	Matches []Match  `yaml:"matches"             json:"matches"`
	Invalid []string `yaml:"invalid,omitempty"   json:"invalid,omitempty"`
	Partial []string `yaml:"partial,omitempty"   json:"partial,omitempty"`
}

// maxLine is the longest line scan accepts.
const maxLine = 1 << 20

// Searcher walks source trees through afs.
type Searcher struct {
	fs afs.Service
}

// New returns a Searcher over the default afs service.
func New() *Searcher {
	return &Searcher{fs: afs.New()}
}

type compiled struct {
	index int
	src   string
	re    *regexp.Regexp
}

// Search walks root and returns every line matching one of patterns.
// Matches are ordered by pattern priority (earlier patterns first), then by
// file and line, so the most specific hits lead.
func (s *Searcher) Search(ctx context.Context, root string, patterns []string, opts Options) (*Result, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 2 << 20
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	result := &Result{Root: root}

	var res []compiled
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Debug("skipping invalid pattern", "pattern", p, "error", err)
			result.Invalid = append(result.Invalid, p)
			continue
		}
		res = append(res, compiled{index: i, src: p, re: re})
	}
	if len(res) == 0 {
		return result, nil
	}

	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || skipped(parent) {
			return true, nil
		}
		if info.Size() > opts.MaxFileSize || !hasExtension(info.Name(), exts) {
			return true, nil
		}
		files = append(files, url.Join(baseURL, path.Join(parent, info.Name())))
		return true, nil
	}
	if err := s.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	result.Files = len(files)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.fs.DownloadWithURL(ctx, file)
		if err != nil {
			slog.Debug("skipping unreadable file", "file", file, "error", err)
			continue
		}
		name := displayPath(root, file)
		matches, err := scan(data, name, res)
		if err != nil {
			slog.Debug("file scan stopped early", "file", file, "error", err)
			result.Partial = append(result.Partial, name)
		}
		result.Matches = append(result.Matches, matches...)
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		a, b := result.Matches[i], result.Matches[j]
		if a.PatternIndex != b.PatternIndex {
			return a.PatternIndex < b.PatternIndex
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	if opts.MaxMatches > 0 && len(result.Matches) > opts.MaxMatches {
		result.Matches = result.Matches[:opts.MaxMatches]
	}
	slog.Debug("locate finished", "root", root, "files", result.Files, "matches", len(result.Matches))
	return result, nil
}

// scan reports, per line, the first pattern (in priority order) that matches.
// The matches found before a scanner error are returned with the error.
func scan(data []byte, file string, res []compiled) ([]Match, error) {
	var out []Match
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		for _, c := range res {
			if c.re.MatchString(text) {
				out = append(out, Match{
					Pattern:      c.src,
					PatternIndex: c.index,
					File:         file,
					Line:         line,
					Text:         strings.TrimSpace(text),
				})
				break
			}
		}
	}
	return out, sc.Err()
}

// skipped reports whether a walk-relative directory lies inside one of
// skipDirs.
func skipped(parent string) bool {
	for _, part := range strings.Split(parent, "/") {
		if skipDirs[part] {
			return true
		}
	}
	return false
}

func hasExtension(name string, exts []string) bool {
	ext := path.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// displayPath makes file relative to root when it lies under it.
func displayPath(root, file string) string {
	rootPath := url.Path(root)
	filePath := url.Path(file)
	if rel := strings.TrimPrefix(filePath, strings.TrimSuffix(rootPath, "/")+"/"); rel != filePath {
		return rel
	}
	return filePath
}
