package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-annotator/internal/export"
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/inspector"
	"github.com/mj1618/desktop-annotator/internal/locate"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/output"
	"github.com/mj1618/desktop-annotator/internal/session"
	"gopkg.in/yaml.v3"
)

var errNoTarget = errors.New("no target selected; call set_target first")

// TargetInfo describes the current target.
type TargetInfo struct {
	PID        int    `yaml:"pid"                 json:"pid"`
	App        string `yaml:"app,omitempty"       json:"app,omitempty"`
	BundleID   string `yaml:"bundle_id,omitempty" json:"bundle_id,omitempty"`
	Generation uint64 `yaml:"generation"          json:"generation"`
}

// AnnotateResult is returned by the annotate tool.
type AnnotateResult struct {
	Added     []model.Annotation `yaml:"added"      json:"added"`
	NextBadge int                `yaml:"next_badge" json:"next_badge"`
}

// yamlResult serializes v to YAML for an MCP response.
func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// accessibilityPoint reads x/y and converts them to accessibility space when
// the caller used the bottom-left convention.
func (s *Server) accessibilityPoint(params map[string]interface{}) (geom.Point, error) {
	p, err := pointParam(params)
	if err != nil {
		return geom.Point{}, err
	}
	flip, err := bottomLeft(params)
	if err != nil || !flip {
		return p, err
	}
	h, ok := s.inspector.PrimaryHeight()
	if !ok {
		return geom.Point{}, errors.New("display list unavailable")
	}
	return geom.ToAccessibility(p, h), nil
}

func (s *Server) accessibilityRect(params map[string]interface{}) (geom.Rect, error) {
	r, err := rectParam(params)
	if err != nil {
		return geom.Rect{}, err
	}
	flip, err := bottomLeft(params)
	if err != nil || !flip {
		return r, err
	}
	h, ok := s.inspector.PrimaryHeight()
	if !ok {
		return geom.Rect{}, errors.New("display list unavailable")
	}
	return geom.RectToAccessibility(r, h), nil
}

func (s *Server) handleSetTarget(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pid := intParam(params, "pid", 0)
	frontmost := boolParam(params, "frontmost", false)

	var (
		t   *inspector.Target
		err error
	)
	switch {
	case pid > 0:
		t, err = s.inspector.SetTarget(pid)
	case frontmost:
		t, err = s.inspector.SetFrontmostTarget()
	default:
		return mcp.NewToolResultError("provide pid or frontmost"), nil
	}
	if err != nil {
		return errorResult(err)
	}
	return yamlResult(TargetInfo{PID: t.PID, App: t.AppName, BundleID: t.BundleID, Generation: t.Generation})
}

func (s *Server) handleElementAt(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.inspector.Target()
	if t == nil {
		return errorResult(errNoTarget)
	}
	p, err := s.accessibilityPoint(request.GetArguments())
	if err != nil {
		return errorResult(err)
	}
	result := s.inspect(t, p)
	return yamlResult(result)
}

// inspect resolves p for t and records the gate decision alongside.
func (s *Server) inspect(t *inspector.Target, p geom.Point) output.InspectResult {
	decision := s.inspector.GateAt(p)
	result := output.InspectResult{App: t.AppName, PID: t.PID, Point: p, Frontmost: decision.Frontmost}
	if !decision.Frontmost && decision.Window != nil {
		result.Occluder = decision.Window.OwnerName
	}
	if desc, ok := s.inspector.ResolveAtAccessibility(p); ok {
		result.Element = &desc
	}
	return result
}

func (s *Server) handleIsFrontmost(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.inspector.Target()
	if t == nil {
		return errorResult(errNoTarget)
	}
	p, err := s.accessibilityPoint(request.GetArguments())
	if err != nil {
		return errorResult(err)
	}
	decision := s.inspector.GateAt(p)
	out := struct {
		Frontmost bool   `yaml:"frontmost"`
		Reason    string `yaml:"reason,omitempty"`
		Window    string `yaml:"window,omitempty"`
	}{Frontmost: decision.Frontmost, Reason: decision.Reason}
	if decision.Window != nil {
		out.Window = decision.Window.OwnerName
		if decision.Window.Title != "" {
			out.Window += " - " + decision.Window.Title
		}
	}
	return yamlResult(out)
}

func (s *Server) handleScanRegion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.inspector.Target()
	if t == nil {
		return errorResult(errNoTarget)
	}
	params := request.GetArguments()
	rect, err := rectParam(params)
	if err != nil {
		return errorResult(err)
	}
	elements := s.inspector.ScanRegion(rect, rolesParam(params))
	return yamlResult(output.ScanResult{App: t.AppName, PID: t.PID, Region: rect, Elements: elements})
}

func (s *Server) handleAnnotate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.inspector.Target()
	if t == nil {
		return errorResult(errNoTarget)
	}
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	window := stringParam(params, "window", "")

	var added []model.Annotation
	if _, hasW := params["w"]; hasW {
		rect, err := s.accessibilityRect(params)
		if err != nil {
			return errorResult(err)
		}
		descs := s.inspector.ScanRegion(rect, rolesParam(params))
		if len(descs) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("no elements of %s found in %s", t.AppName, rect)), nil
		}
		added = s.inspector.BuildRegionAnnotations(descs, text, window, "", "")
	} else {
		p, err := s.accessibilityPoint(params)
		if err != nil {
			return errorResult(err)
		}
		result := s.inspect(t, p)
		if !result.Frontmost {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not frontmost at %s (covered by %q)", t.AppName, p, result.Occluder)), nil
		}
		if result.Element == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no element at %s", p)), nil
		}
		added = append(added, s.inspector.BuildAnnotation(*result.Element, text, window, "", ""))
	}
	s.persist()
	return yamlResult(AnnotateResult{Added: added, NextBadge: s.inspector.Store().NextBadge()})
}

func (s *Server) handleListAnnotations(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := s.inspector.Store()
	result := output.AnnotationsResult{NextBadge: store.NextBadge(), Annotations: store.All()}
	if t := s.inspector.Target(); t != nil {
		result.App = t.AppName
	}
	return yamlResult(result)
}

func (s *Server) handleUpdateAnnotation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	badge := intParam(params, "badge", 0)
	text := stringParam(params, "text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	if err := s.inspector.Store().UpdateText(badge, text); err != nil {
		return errorResult(err)
	}
	s.persist()
	a, _ := s.inspector.Store().Get(badge)
	return yamlResult(a)
}

func (s *Server) handleRemoveAnnotation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	badge := intParam(request.GetArguments(), "badge", 0)
	if err := s.inspector.Store().Remove(badge); err != nil {
		return errorResult(err)
	}
	s.persist()
	return mcp.NewToolResultText(fmt.Sprintf("removed annotation %d", badge)), nil
}

func (s *Server) handleClearAnnotations(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := s.inspector.Store().Len()
	s.inspector.Store().Clear()
	s.persist()
	return mcp.NewToolResultText(fmt.Sprintf("cleared %d annotations", n)), nil
}

func (s *Server) handleExport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format, err := export.ParseFormat(stringParam(params, "format", ""))
	if err != nil {
		return errorResult(err)
	}
	doc := export.GenerateOutput(s.inspector.Store().All(), s.exportOptions(format))
	if boolParam(params, "html", false) {
		html, err := export.HTML(doc)
		if err != nil {
			return errorResult(err)
		}
		return mcp.NewToolResultText(html), nil
	}
	return mcp.NewToolResultText(doc), nil
}

// exportOptions fills the document header from the target, falling back to
// the first annotation when no target is selected.
func (s *Server) exportOptions(format export.Format) export.Options {
	opts := export.Options{
		Format:      format,
		WindowTitle: export.SessionWindow(s.inspector.Store().All()),
	}
	if t := s.inspector.Target(); t != nil {
		opts.AppName, opts.BundleID = t.AppName, t.BundleID
	} else if all := s.inspector.Store().All(); len(all) > 0 {
		opts.AppName, opts.BundleID = all[0].AppName, all[0].BundleID
	}
	if screen, ok := s.inspector.PrimaryScreen(); ok {
		size := screen.Frame.Size()
		opts.Screen = &size
	}
	return opts
}

func (s *Server) handleLocate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	root := stringParam(params, "root", "")
	if root == "" {
		return mcp.NewToolResultError("root is required"), nil
	}
	var patterns []string
	if badge := intParam(params, "badge", 0); badge > 0 {
		a, ok := s.inspector.Store().Get(badge)
		if !ok {
			return errorResult(fmt.Errorf("badge %d: %w", badge, model.ErrAnnotationNotFound))
		}
		patterns = export.SearchPatterns(a.Element.Identifier, a.Element.Title, a.Element.Role)
	} else {
		patterns = export.SearchPatterns(
			stringParam(params, "identifier", ""),
			stringParam(params, "title", ""),
			stringParam(params, "role", ""),
		)
	}
	if len(patterns) == 0 {
		return mcp.NewToolResultError("element has no identifier or title to search for"), nil
	}
	res, err := s.searcher.Search(ctx, root, patterns, locate.Options{MaxMatches: intParam(params, "max-matches", 20)})
	if err != nil {
		return errorResult(err)
	}
	return yamlResult(res)
}

// persist saves the session when a repository is configured. Failures are
// logged; the in-memory session stays authoritative.
func (s *Server) persist() {
	if s.sessions == nil {
		return
	}
	sess := &session.Session{}
	if t := s.inspector.Target(); t != nil {
		sess.App, sess.BundleID, sess.PID = t.AppName, t.BundleID, t.PID
	}
	sess.Capture(s.inspector.Store())
	sess.WindowTitle = export.SessionWindow(sess.Annotations)
	if err := s.sessions.Save(context.Background(), sess); err != nil {
		s.log.Warn("session save failed", "error", err)
	}
}
