package inspector

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// Target is the process being inspected. It is replaced as a whole when the
// user switches targets; descriptors built for an older generation are stale.
type Target struct {
	PID        int
	AppName    string
	BundleID   string
	App        platform.Application
	Generation uint64
}

// Inspector is the entry point the UI layer and the MCP server use: point
// resolution, the z-order gate, region scans and annotation building.
type Inspector struct {
	provider *platform.Provider
	cfg      Config
	resolver *Resolver
	gate     *ZOrderGate
	store    *model.AnnotationStore
	cache    *pointCache
	log      *slog.Logger

	target     atomic.Pointer[Target]
	generation atomic.Uint64
}

// New creates an inspector over provider. A nil store starts a fresh session.
func New(provider *platform.Provider, cfg Config, store *model.AnnotationStore) *Inspector {
	cfg = cfg.withDefaults()
	if store == nil {
		store = model.NewAnnotationStore()
	}
	return &Inspector{
		provider: provider,
		cfg:      cfg,
		resolver: NewResolver(cfg),
		gate:     NewZOrderGate(cfg),
		store:    store,
		cache:    newPointCache(cfg.CacheTTL),
		log:      cfg.Logger,
	}
}

// Store returns the session's annotation store.
func (i *Inspector) Store() *model.AnnotationStore { return i.store }

// Target returns the current target, or nil if none is selected.
func (i *Inspector) Target() *Target { return i.target.Load() }

// SetTarget opens pid's accessibility root and makes it the current target.
func (i *Inspector) SetTarget(pid int) (*Target, error) {
	if i.provider == nil || i.provider.Accessibility == nil {
		return nil, platform.ErrUnsupported
	}
	app, err := i.provider.Accessibility.Application(pid)
	if err != nil {
		return nil, fmt.Errorf("open target %d: %w", pid, err)
	}
	t := &Target{PID: pid, App: app, Generation: i.generation.Add(1)}
	if i.provider.WindowManager != nil {
		if name, bundle, err := i.provider.WindowManager.AppInfo(pid); err == nil {
			t.AppName, t.BundleID = name, bundle
		} else {
			i.log.Debug("app info unavailable", "pid", pid, "error", err)
		}
	}
	i.target.Store(t)
	i.cache.invalidateAll()
	i.log.Debug("target selected", "pid", pid, "app", t.AppName, "generation", t.Generation)
	return t, nil
}

// SetFrontmostTarget targets whichever application currently has focus.
func (i *Inspector) SetFrontmostTarget() (*Target, error) {
	if i.provider == nil || i.provider.WindowManager == nil {
		return nil, platform.ErrUnsupported
	}
	_, pid, err := i.provider.WindowManager.GetFrontmostApp()
	if err != nil {
		return nil, err
	}
	return i.SetTarget(pid)
}

// ClearTarget drops the current target. Every outstanding descriptor
// becomes stale.
func (i *Inspector) ClearTarget() {
	i.generation.Add(1)
	i.target.Store(nil)
	i.cache.invalidateAll()
}

// IsStale reports whether desc was built for a target that is no longer
// current. Callers must not keep descriptors across a target switch.
func (i *Inspector) IsStale(desc model.ElementDescriptor) bool {
	t := i.target.Load()
	return t == nil || desc.Generation != t.Generation
}

// PrimaryScreen returns the primary display.
func (i *Inspector) PrimaryScreen() (geom.Screen, bool) {
	if i.provider == nil || i.provider.Screens == nil {
		return geom.Screen{}, false
	}
	screens, err := i.provider.Screens.Screens()
	if err != nil {
		i.log.Debug("screen list unavailable", "error", err)
		return geom.Screen{}, false
	}
	return geom.Primary(screens)
}

// PrimaryHeight returns the primary display height used for coordinate
// conversion.
func (i *Inspector) PrimaryHeight() (float64, bool) {
	s, ok := i.PrimaryScreen()
	return s.Frame.H, ok
}

// ResolveAt resolves the element under a windowing-space point (the
// convention mouse events arrive in). It reports false when nothing is there.
func (i *Inspector) ResolveAt(screenPoint geom.Point) (model.ElementDescriptor, bool) {
	h, ok := i.PrimaryHeight()
	if !ok {
		return model.ElementDescriptor{}, false
	}
	return i.ResolveAtAccessibility(geom.ToAccessibility(screenPoint, h))
}

// ResolveAtAccessibility resolves the element under an accessibility-space
// point.
func (i *Inspector) ResolveAtAccessibility(p geom.Point) (model.ElementDescriptor, bool) {
	t := i.target.Load()
	if t == nil {
		return model.ElementDescriptor{}, false
	}
	return i.cache.resolve(t.Generation, p, func() (model.ElementDescriptor, bool) {
		desc, ok := i.resolver.Resolve(t.App, p)
		if !ok {
			return model.ElementDescriptor{}, false
		}
		desc.Generation = t.Generation
		if i.cfg.Forensic {
			desc.WindowLevel = i.windowLevelAt(p, t.PID)
		}
		return desc, true
	})
}

// IsFrontmostAt reports whether the target's window is the topmost window at
// a windowing-space point. The UI must check it before trusting a hover or
// click.
func (i *Inspector) IsFrontmostAt(screenPoint geom.Point) bool {
	h, ok := i.PrimaryHeight()
	if !ok {
		return false
	}
	return i.IsFrontmostAtAccessibility(geom.ToAccessibility(screenPoint, h))
}

// IsFrontmostAtAccessibility is IsFrontmostAt for a top-left-anchored point.
func (i *Inspector) IsFrontmostAtAccessibility(p geom.Point) bool {
	return i.GateAt(p).Frontmost
}

// GateAt runs the z-order gate at a top-left-anchored point and returns the
// full decision.
func (i *Inspector) GateAt(p geom.Point) GateDecision {
	t := i.target.Load()
	if t == nil {
		return GateDecision{Reason: "no target"}
	}
	windows, ok := i.onScreenWindows()
	if !ok {
		return GateDecision{Reason: "window list unavailable"}
	}
	return i.gate.Decide(windows, p, t.PID)
}

func (i *Inspector) onScreenWindows() ([]model.WindowInfo, bool) {
	if i.provider == nil || i.provider.Windows == nil {
		return nil, false
	}
	windows, err := i.provider.Windows.OnScreenWindows()
	if err != nil {
		i.log.Debug("window list unavailable", "error", err)
		return nil, false
	}
	return windows, true
}

// windowLevelAt returns the layer of the frontmost target window containing p.
func (i *Inspector) windowLevelAt(p geom.Point, pid int) *int {
	windows, ok := i.onScreenWindows()
	if !ok {
		return nil
	}
	for _, w := range windows {
		if w.OwnerPID == pid && w.Bounds.Contains(p) {
			level := w.Layer
			return &level
		}
	}
	return nil
}

// ScanRegion samples a grid of points across rect (accessibility space) and
// returns each distinct element found, in scan order. Points where another
// window covers the target are skipped. roles, when non-empty, keeps only
// matching elements and may contain meta-roles such as "interactive".
func (i *Inspector) ScanRegion(rect geom.Rect, roles []string) []model.ElementDescriptor {
	t := i.target.Load()
	if t == nil || rect.Empty() {
		return nil
	}
	windows, _ := i.onScreenWindows()

	keep := map[string]bool{}
	for _, r := range model.ExpandRoles(roles) {
		keep[r] = true
	}

	step := i.cfg.ScanStep
	if n := (rect.W / step) * (rect.H / step); n > float64(i.cfg.ScanMaxPoints) {
		step = math.Sqrt(rect.W * rect.H / float64(i.cfg.ScanMaxPoints))
	}
	// Each axis gets at least one sample, at the centre when the side is
	// shorter than the step.
	stepX, stepY := math.Min(step, rect.W), math.Min(step, rect.H)

	seen := map[string]bool{}
	var out []model.ElementDescriptor
	points, occluded := 0, 0
	for y := rect.Y + stepY/2; y < rect.MaxY() && points < i.cfg.ScanMaxPoints; y += stepY {
		for x := rect.X + stepX/2; x < rect.MaxX() && points < i.cfg.ScanMaxPoints; x += stepX {
			points++
			p := geom.Pt(x, y)
			if windows != nil && !i.gate.IsTargetFrontmost(windows, p, t.PID) {
				occluded++
				continue
			}
			desc, ok := i.resolver.Resolve(t.App, p)
			if !ok {
				continue
			}
			key := desc.Frame.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			if len(keep) > 0 && !keep[desc.Role] {
				continue
			}
			desc.Generation = t.Generation
			out = append(out, desc)
		}
	}
	i.log.Debug("region scanned", "rect", rect.String(), "points", points, "occluded", occluded, "elements", len(out))
	return out
}

// BuildAnnotation attaches text to desc, assigns the next badge number and
// stores the result. Empty appName and bundleID default to the current
// target's.
func (i *Inspector) BuildAnnotation(desc model.ElementDescriptor, text, windowTitle, appName, bundleID string) model.Annotation {
	appName, bundleID = i.appDefaults(appName, bundleID)
	return i.store.Add(model.NewAnnotation(desc, text, windowTitle, appName, bundleID))
}

// BuildRegionAnnotations annotates every element of a region selection with
// the same text and a shared region id.
func (i *Inspector) BuildRegionAnnotations(descs []model.ElementDescriptor, text, windowTitle, appName, bundleID string) []model.Annotation {
	if len(descs) == 0 {
		return nil
	}
	appName, bundleID = i.appDefaults(appName, bundleID)
	region := model.NewID()
	out := make([]model.Annotation, 0, len(descs))
	for _, d := range descs {
		a := model.NewAnnotation(d, text, windowTitle, appName, bundleID)
		a.RegionID = region
		out = append(out, i.store.Add(a))
	}
	return out
}

func (i *Inspector) appDefaults(appName, bundleID string) (string, string) {
	t := i.target.Load()
	if t == nil {
		return appName, bundleID
	}
	if appName == "" {
		appName = t.AppName
	}
	if bundleID == "" {
		bundleID = t.BundleID
	}
	return appName, bundleID
}
